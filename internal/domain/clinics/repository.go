package clinics

import "context"

type Repository interface {
	Create(ctx context.Context, c Clinic) error
	List(ctx context.Context) ([]Clinic, error)
}
