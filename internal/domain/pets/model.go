package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// RecordStatus es el estado de un registro de vacuna/desparasitación.
// @Enum programada, aplicada
type RecordStatus string

const (
	StatusScheduled RecordStatus = "programada"
	StatusApplied   RecordStatus = "aplicada"
)

// CareRecord es una vacuna o desparasitación embebida en el documento de la
// mascota (mismo shape que guardaba la SPA: arrays en el propio doc).
type CareRecord struct {
	ID     string
	Name   string
	Date   string // YYYY-MM-DD
	Batch  string // lote o producto
	Status RecordStatus
}

// Pet es el perfil de una mascota registrada.
// El microchip es el identificador público de rescate (lookup del QR).
type Pet struct {
	ID          string
	OwnerUserID string

	Name      string
	Species   string // ver Species
	Breed     string
	Age       string
	Microchip string
	PhotoURL  string
	WhatsApp  string // número de contacto que muestra el perfil público

	// Estado de pérdida. Lost y el último LostReport no van en transacción:
	// pueden quedar inconsistentes si falla el segundo write.
	Lost       bool
	LastLostAt *time.Time
	LastLostBy string

	// Última ubicación conocida (la adjunta el reporte geolocalizado).
	LastKnownLat *float64
	LastKnownLng *float64

	Vaccines []CareRecord
	Deworm   []CareRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}
