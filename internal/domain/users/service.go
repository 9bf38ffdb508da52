package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Ensure devuelve el perfil del uid, creándolo con plan free si no existe.
func (s *Service) Ensure(ctx context.Context, id, email string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.Get(ctx, id)
	if err == nil {
		return u, nil
	}

	now := s.now()
	u = User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Plan:      PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Phone  *string
	Notify *bool
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	u, err := s.Ensure(ctx, id, "")
	if err != nil {
		return User{}, err
	}

	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Notify != nil {
		u.Notify = *in.Notify
	}
	u.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetPlan es la única vía de mutación del plan. La llama el webhook de pagos;
// ningún handler expuesto al usuario debe llegar acá.
func (s *Service) SetPlan(ctx context.Context, id string, plan Plan) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if plan != PlanFree && plan != PlanPremium {
		return ErrInvalidInput
	}
	return s.repo.SetPlan(ctx, id, plan)
}

// IsPremium responde si el uid tiene plan premium. Doc ausente = no premium.
func (s *Service) IsPremium(ctx context.Context, id string) (bool, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, nil
	}
	return u.Plan == PlanPremium, nil
}

func (s *Service) ListNotifyOptIn(ctx context.Context) ([]User, error) {
	return s.repo.ListNotifyOptIn(ctx)
}
