package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pet-rescue-registry/internal/domain/users"
)

type userRepo struct {
	client *fs.Client
}

func NewUserRepo(client *fs.Client) users.Repository {
	return &userRepo{client: client}
}

type userDoc struct {
	Email     string    `firestore:"email"`
	Plan      string    `firestore:"plan"`
	Phone     string    `firestore:"phone"`
	Notify    bool      `firestore:"notify"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func (d userDoc) toDomain(id string) users.User {
	return users.User{
		ID:        id,
		Email:     d.Email,
		Plan:      users.Plan(d.Plan),
		Phone:     d.Phone,
		Notify:    d.Notify,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toUserDoc(u users.User) userDoc {
	return userDoc{
		Email:     u.Email,
		Plan:      string(u.Plan),
		Phone:     u.Phone,
		Notify:    u.Notify,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *userRepo) Get(ctx context.Context, id string) (users.User, error) {
	snap, err := r.client.Collection(colUsers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("get user: %w", err)
	}

	var d userDoc
	if err := snap.DataTo(&d); err != nil {
		return users.User{}, fmt.Errorf("decode user: %w", err)
	}
	return d.toDomain(snap.Ref.ID), nil
}

func (r *userRepo) Upsert(ctx context.Context, u users.User) error {
	_, err := r.client.Collection(colUsers).Doc(u.ID).Set(ctx, toUserDoc(u))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *userRepo) SetPlan(ctx context.Context, id string, plan users.Plan) error {
	// Merge sobre el doc: lo crea si el webhook llega antes que el primer
	// request autenticado del usuario.
	_, err := r.client.Collection(colUsers).Doc(id).Set(ctx, map[string]any{
		"plan":      string(plan),
		"updatedAt": time.Now(),
	}, fs.MergeAll)
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	return nil
}

func (r *userRepo) ListNotifyOptIn(ctx context.Context) ([]users.User, error) {
	iter := r.client.Collection(colUsers).Where("notify", "==", true).Documents(ctx)
	defer iter.Stop()

	out := make([]users.User, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list notify opt-in: %w", err)
		}
		var d userDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, d.toDomain(snap.Ref.ID))
	}
	return out, nil
}
