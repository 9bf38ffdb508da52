package rescue

import "time"

// Location es la ubicación resuelta de la IP del reportante.
type Location struct {
	Lat     float64
	Lng     float64
	City    string
	Region  string
	Country string
}

// LostReport es el registro de "alguien marcó esta mascota como perdida".
// Hijo del Pet; inmutable salvo el attach posterior de Location.
type LostReport struct {
	ID    string
	PetID string

	By string // uid del reportante
	At time.Time

	IP        string
	UserAgent string
	Device    string // resumen parseado del user-agent

	Location *Location
}

// AlertType distingue el destinatario del fan-out.
// @Enum clinic, user
type AlertType string

const (
	AlertClinic AlertType = "clinic"
	AlertUser   AlertType = "user"
)

// LostAlert es el registro write-only del fan-out. Nadie lo consume acá:
// es el hand-off hacia el despachador de notificaciones externo.
type LostAlert struct {
	ID string

	Type     AlertType
	TargetID string

	Microchip string
	PetID     string
	At        time.Time
}

// WaClick registra un clic de contacto por WhatsApp desde el perfil público.
type WaClick struct {
	ID        string
	UserID    string
	Microchip string
	Origin    string
	UserAgent string
	At        time.Time
}
