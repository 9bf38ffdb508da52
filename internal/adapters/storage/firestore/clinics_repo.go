package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"pet-rescue-registry/internal/domain/clinics"
)

type clinicRepo struct {
	client *fs.Client
}

func NewClinicRepo(client *fs.Client) clinics.Repository {
	return &clinicRepo{client: client}
}

type clinicDoc struct {
	OwnerUserID string    `firestore:"ownerUserId"`
	Name        string    `firestore:"name"`
	Phone       string    `firestore:"phone"`
	Email       string    `firestore:"email"`
	State       string    `firestore:"state"`
	City        string    `firestore:"city"`
	Lat         float64   `firestore:"lat"`
	Lng         float64   `firestore:"lng"`
	Verified    bool      `firestore:"verified"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func (r *clinicRepo) Create(ctx context.Context, c clinics.Clinic) error {
	doc := clinicDoc{
		OwnerUserID: c.OwnerUserID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		State:       c.State,
		City:        c.City,
		Lat:         c.Lat,
		Lng:         c.Lng,
		Verified:    c.Verified,
		CreatedAt:   c.CreatedAt,
	}
	_, err := r.client.Collection(colClinics).Doc(c.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("create clinic: %w", err)
	}
	return nil
}

func (r *clinicRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	iter := r.client.Collection(colClinics).Documents(ctx)
	defer iter.Stop()

	out := make([]clinics.Clinic, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list clinics: %w", err)
		}
		var d clinicDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode clinic: %w", err)
		}
		out = append(out, clinics.Clinic{
			ID:          snap.Ref.ID,
			OwnerUserID: d.OwnerUserID,
			Name:        d.Name,
			Phone:       d.Phone,
			Email:       d.Email,
			State:       d.State,
			City:        d.City,
			Lat:         d.Lat,
			Lng:         d.Lng,
			Verified:    d.Verified,
			CreatedAt:   d.CreatedAt,
		})
	}
	return out, nil
}
