package users

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (User, error)
	Upsert(ctx context.Context, u User) error

	// SetPlan hace merge solo del plan (crea el doc si no existe).
	SetPlan(ctx context.Context, id string, plan Plan) error

	// ListNotifyOptIn devuelve los usuarios con notify=true.
	ListNotifyOptIn(ctx context.Context) ([]User, error)
}
