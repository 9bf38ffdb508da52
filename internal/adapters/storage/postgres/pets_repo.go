package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"pet-rescue-registry/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// Los arrays de vacunas/desparasitaciones van embebidos como JSONB,
// mismo shape que el documento original.
type careRecordJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Batch  string `json:"batch"`
	Status string `json:"status"`
}

func recordsToJSON(recs []pets.CareRecord) ([]byte, error) {
	out := make([]careRecordJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, careRecordJSON{
			ID:     rec.ID,
			Name:   rec.Name,
			Date:   rec.Date,
			Batch:  rec.Batch,
			Status: string(rec.Status),
		})
	}
	return json.Marshal(out)
}

func recordsFromJSON(raw []byte) ([]pets.CareRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var docs []careRecordJSON
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
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
	return out, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	vaccines, err := recordsToJSON(p.Vaccines)
	if err != nil {
		return err
	}
	deworm, err := recordsToJSON(p.Deworm)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, species, breed, age, microchip, photo_url, whatsapp,
			lost, last_lost_at, last_lost_by,
			last_known_lat, last_known_lng,
			vaccines, deworm,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Microchip,
		p.PhotoURL,
		p.WhatsApp,
		p.Lost,
		toNullTime(p.LastLostAt),
		p.LastLostBy,
		toNullFloat(p.LastKnownLat),
		toNullFloat(p.LastKnownLng),
		vaccines,
		deworm,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	vaccines, err := recordsToJSON(p.Vaccines)
	if err != nil {
		return err
	}
	deworm, err := recordsToJSON(p.Deworm)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			age = $5,
			microchip = $6,
			photo_url = $7,
			whatsapp = $8,
			lost = $9,
			last_lost_at = $10,
			last_lost_by = $11,
			last_known_lat = $12,
			last_known_lng = $13,
			vaccines = $14,
			deworm = $15,
			updated_at = $16
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Microchip,
		p.PhotoURL,
		p.WhatsApp,
		p.Lost,
		toNullTime(p.LastLostAt),
		p.LastLostBy,
		toNullFloat(p.LastKnownLat),
		toNullFloat(p.LastKnownLng),
		vaccines,
		deworm,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, age, microchip, photo_url, whatsapp,
	lost, last_lost_at, last_lost_by,
	last_known_lat, last_known_lng,
	vaccines, deworm,
	created_at, updated_at
`

func scanPet(row interface{ Scan(...any) error }) (pets.Pet, error) {
	var p pets.Pet
	var lostAt sql.NullTime
	var lat, lng sql.NullFloat64
	var vaccines, deworm []byte

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Age,
		&p.Microchip,
		&p.PhotoURL,
		&p.WhatsApp,
		&p.Lost,
		&lostAt,
		&p.LastLostBy,
		&lat,
		&lng,
		&vaccines,
		&deworm,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if lostAt.Valid {
		t := lostAt.Time
		p.LastLostAt = &t
	}
	if lat.Valid {
		v := lat.Float64
		p.LastKnownLat = &v
	}
	if lng.Valid {
		v := lng.Float64
		p.LastKnownLng = &v
	}

	var err error
	if p.Vaccines, err = recordsFromJSON(vaccines); err != nil {
		return pets.Pet{}, err
	}
	if p.Deworm, err = recordsFromJSON(deworm); err != nil {
		return pets.Pet{}, err
	}

	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) FindByMicrochip(ctx context.Context, microchip string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE microchip = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, microchip)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) MarkLost(ctx context.Context, id string, at time.Time, by string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET lost = true, last_lost_at = $2, last_lost_by = $3, updated_at = $2
		WHERE id = $1
	`, id, at, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) SetLastKnownLocation(ctx context.Context, id string, lat, lng float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET last_known_lat = $2, last_known_lng = $3
		WHERE id = $1
	`, id, lat, lng)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
