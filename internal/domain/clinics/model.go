package clinics

import "time"

// Clinic es una clínica veterinaria auto-registrada desde el directorio.
// Nace con Verified=false; un administrador la verifica por fuera de este
// backend. El reporter de mascotas perdidas solo la lee.
type Clinic struct {
	ID          string
	OwnerUserID string

	Name  string
	Phone string
	Email string
	State string
	City  string
	Lat   float64
	Lng   float64

	Verified bool

	CreatedAt time.Time
}
