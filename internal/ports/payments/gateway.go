package payments

import "context"

// CheckoutInput es lo mínimo que el gateway necesita para armar una sesión.
// Metadata viaja opaca por el gateway y vuelve en el webhook (correlación).
type CheckoutInput struct {
	PriceID    string
	Quantity   int64
	Mode       string // "payment" | "subscription"
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutEvent es la vista normalizada de un evento verificado del gateway.
type CheckoutEvent struct {
	Type     string // p.ej. "checkout.session.completed"
	Metadata map[string]string
}

// Gateway abstrae el procesador de pagos hospedado.
type Gateway interface {
	// CreateCheckoutSession devuelve la URL de redirección de la sesión.
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error)

	// VerifyWebhook valida la firma sobre el body crudo y devuelve el evento.
	// El body debe llegar sin re-encodear o la firma no cierra.
	VerifyWebhook(payload []byte, signatureHeader string) (CheckoutEvent, error)
}
