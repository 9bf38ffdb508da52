package users

import "time"

// Plan define los planes soportados.
// @Enum free, premium
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// User es el documento de perfil asociado a un uid del proveedor de identidad.
// Se crea on-demand en la primera acción autenticada del usuario.
// El campo Plan es la única autoridad para features premium y solo lo muta
// el webhook de pagos.
type User struct {
	ID    string // uid del proveedor de identidad
	Email string

	Plan   Plan
	Phone  string
	Notify bool // opt-in a alertas de mascotas perdidas

	CreatedAt time.Time
	UpdatedAt time.Time
}
