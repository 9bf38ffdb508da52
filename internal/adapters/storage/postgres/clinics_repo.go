package postgres

import (
	"context"
	"database/sql"

	"pet-rescue-registry/internal/domain/clinics"
)

type ClinicsRepo struct {
	db *sql.DB
}

func NewClinicsRepo(db *sql.DB) *ClinicsRepo {
	return &ClinicsRepo{db: db}
}

func (r *ClinicsRepo) Create(ctx context.Context, c clinics.Clinic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinics (
			id, owner_user_id, name, phone, email, state, city, lat, lng, verified, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Phone,
		c.Email,
		c.State,
		c.City,
		c.Lat,
		c.Lng,
		c.Verified,
		c.CreatedAt,
	)
	return err
}

func (r *ClinicsRepo) List(ctx context.Context) ([]clinics.Clinic, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, phone, email, state, city, lat, lng, verified, created_at
		FROM clinics
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clinics.Clinic, 0)
	for rows.Next() {
		var c clinics.Clinic
		if err := rows.Scan(
			&c.ID,
			&c.OwnerUserID,
			&c.Name,
			&c.Phone,
			&c.Email,
			&c.State,
			&c.City,
			&c.Lat,
			&c.Lng,
			&c.Verified,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
