package ai

import "context"

// Completer abstrae el proveedor de completions hospedado.
// Una llamada = un texto generado; sin streaming, sin reintentos.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}
