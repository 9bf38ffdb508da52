package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"pet-rescue-registry/internal/domain/rescue"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

type locationJSON struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
}

func (r *ReportsRepo) Create(ctx context.Context, rep rescue.LostReport) error {
	var loc []byte
	if rep.Location != nil {
		var err error
		loc, err = json.Marshal(locationJSON{
			Lat:     rep.Location.Lat,
			Lng:     rep.Location.Lng,
			City:    rep.Location.City,
			Region:  rep.Location.Region,
			Country: rep.Location.Country,
		})
		if err != nil {
			return err
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lost_reports (id, pet_id, by_user, at, ip, user_agent, device, location)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		rep.ID,
		rep.PetID,
		rep.By,
		rep.At,
		rep.IP,
		rep.UserAgent,
		rep.Device,
		nullBytes(loc),
	)
	return err
}

func (r *ReportsRepo) AttachLocation(ctx context.Context, petID, reportID string, loc rescue.Location) error {
	raw, err := json.Marshal(locationJSON{
		Lat:     loc.Lat,
		Lng:     loc.Lng,
		City:    loc.City,
		Region:  loc.Region,
		Country: loc.Country,
	})
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE lost_reports
		SET location = $3
		WHERE id = $2 AND pet_id = $1
	`, petID, reportID, raw)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type AlertsRepo struct {
	db *sql.DB
}

func NewAlertsRepo(db *sql.DB) *AlertsRepo {
	return &AlertsRepo{db: db}
}

func (r *AlertsRepo) Create(ctx context.Context, a rescue.LostAlert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lost_alerts (id, type, target_id, microchip, pet_id, at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.ID,
		string(a.Type),
		a.TargetID,
		a.Microchip,
		a.PetID,
		a.At,
	)
	return err
}

type ClicksRepo struct {
	db *sql.DB
}

func NewClicksRepo(db *sql.DB) *ClicksRepo {
	return &ClicksRepo{db: db}
}

func (r *ClicksRepo) Create(ctx context.Context, c rescue.WaClick) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wa_clicks (id, user_id, microchip, origin, user_agent, at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID,
		c.UserID,
		c.Microchip,
		c.Origin,
		c.UserAgent,
		c.At,
	)
	return err
}

// nullBytes deja NULL en vez de jsonb vacío cuando no hay payload.
func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
