package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pet-rescue-registry/internal/domain/pets"
)

type petRepo struct {
	client *fs.Client
}

func NewPetRepo(client *fs.Client) pets.Repository {
	return &petRepo{client: client}
}

type careRecordDoc struct {
	ID     string `firestore:"id"`
	Name   string `firestore:"name"`
	Date   string `firestore:"date"`
	Batch  string `firestore:"batch"`
	Status string `firestore:"status"`
}

type petDoc struct {
	OwnerUserID string `firestore:"ownerUserId"`

	Name      string `firestore:"name"`
	Species   string `firestore:"species"`
	Breed     string `firestore:"breed"`
	Age       string `firestore:"age"`
	Microchip string `firestore:"microchip"`
	PhotoURL  string `firestore:"photoUrl"`
	WhatsApp  string `firestore:"whatsapp"`

	Lost       bool       `firestore:"lost"`
	LastLostAt *time.Time `firestore:"lastLostAt"`
	LastLostBy string     `firestore:"lastLostBy"`

	LastKnownLat *float64 `firestore:"lastKnownLat"`
	LastKnownLng *float64 `firestore:"lastKnownLng"`

	Vaccines []careRecordDoc `firestore:"vaccines"`
	Deworm   []careRecordDoc `firestore:"deworm"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func toRecordDocs(recs []pets.CareRecord) []careRecordDoc {
	out := make([]careRecordDoc, 0, len(recs))
	for _, rec := range recs {
		out = append(out, careRecordDoc{
			ID:     rec.ID,
			Name:   rec.Name,
			Date:   rec.Date,
			Batch:  rec.Batch,
			Status: string(rec.Status),
		})
	}
	return out
}

func fromRecordDocs(docs []careRecordDoc) []pets.CareRecord {
	out := make([]pets.CareRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, pets.CareRecord{
			ID:     d.ID,
			Name:   d.Name,
			Date:   d.Date,
			Batch:  d.Batch,
			Status: pets.RecordStatus(d.Status),
		})
	}
	return out
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		OwnerUserID:  p.OwnerUserID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Age:          p.Age,
		Microchip:    p.Microchip,
		PhotoURL:     p.PhotoURL,
		WhatsApp:     p.WhatsApp,
		Lost:         p.Lost,
		LastLostAt:   p.LastLostAt,
		LastLostBy:   p.LastLostBy,
		LastKnownLat: p.LastKnownLat,
		LastKnownLng: p.LastKnownLng,
		Vaccines:     toRecordDocs(p.Vaccines),
		Deworm:       toRecordDocs(p.Deworm),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d petDoc) toDomain(id string) pets.Pet {
	return pets.Pet{
		ID:           id,
		OwnerUserID:  d.OwnerUserID,
		Name:         d.Name,
		Species:      d.Species,
		Breed:        d.Breed,
		Age:          d.Age,
		Microchip:    d.Microchip,
		PhotoURL:     d.PhotoURL,
		WhatsApp:     d.WhatsApp,
		Lost:         d.Lost,
		LastLostAt:   d.LastLostAt,
		LastLostBy:   d.LastLostBy,
		LastKnownLat: d.LastKnownLat,
		LastKnownLng: d.LastKnownLng,
		Vaccines:     fromRecordDocs(d.Vaccines),
		Deworm:       fromRecordDocs(d.Deworm),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.client.Collection(colPets).Doc(p.ID).Create(ctx, toPetDoc(p))
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	_, err := r.client.Collection(colPets).Doc(p.ID).Set(ctx, toPetDoc(p))
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	snap, err := r.client.Collection(colPets).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}

	var d petDoc
	if err := snap.DataTo(&d); err != nil {
		return pets.Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return d.toDomain(snap.Ref.ID), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	iter := r.client.Collection(colPets).Where("ownerUserId", "==", ownerUserID).Documents(ctx)
	defer iter.Stop()

	out := make([]pets.Pet, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list pets: %w", err)
		}
		var d petDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode pet: %w", err)
		}
		out = append(out, d.toDomain(snap.Ref.ID))
	}
	return out, nil
}

func (r *petRepo) FindByMicrochip(ctx context.Context, microchip string) (pets.Pet, error) {
	iter := r.client.Collection(colPets).Where("microchip", "==", microchip).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, fmt.Errorf("find by microchip: %w", err)
	}

	var d petDoc
	if err := snap.DataTo(&d); err != nil {
		return pets.Pet{}, fmt.Errorf("decode pet: %w", err)
	}
	return d.toDomain(snap.Ref.ID), nil
}

func (r *petRepo) MarkLost(ctx context.Context, id string, at time.Time, by string) error {
	_, err := r.client.Collection(colPets).Doc(id).Set(ctx, map[string]any{
		"lost":       true,
		"lastLostAt": at,
		"lastLostBy": by,
		"updatedAt":  at,
	}, fs.MergeAll)
	if err != nil {
		return fmt.Errorf("mark lost: %w", err)
	}
	return nil
}

func (r *petRepo) SetLastKnownLocation(ctx context.Context, id string, lat, lng float64) error {
	_, err := r.client.Collection(colPets).Doc(id).Set(ctx, map[string]any{
		"lastKnownLat": lat,
		"lastKnownLng": lng,
	}, fs.MergeAll)
	if err != nil {
		return fmt.Errorf("set last known location: %w", err)
	}
	return nil
}
