package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// FindByMicrochip devuelve la primera mascota cuyo microchip coincide.
	// No hay unicidad garantizada en datos viejos; primera = la que sea.
	FindByMicrochip(ctx context.Context, microchip string) (Pet, error)

	// MarkLost hace merge de lost=true + timestamp + reporter sobre el doc.
	MarkLost(ctx context.Context, id string, at time.Time, by string) error

	// SetLastKnownLocation hace merge de la última ubicación conocida.
	SetLastKnownLocation(ctx context.Context, id string, lat, lng float64) error
}
