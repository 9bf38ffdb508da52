// Package postgres implementa los repositorios sobre Postgres vía pgx
// (database/sql). Backend alternativo a Firestore para self-hosting.
//
// Esquema esperado:
//
//	users        (id text pk, email text, plan text, phone text, notify bool, created_at, updated_at)
//	pets         (id uuid pk, owner_user_id text, name, species, breed, age, microchip, photo_url,
//	              whatsapp, lost bool, last_lost_at timestamptz null, last_lost_by text,
//	              last_known_lat double precision null, last_known_lng double precision null,
//	              vaccines jsonb, deworm jsonb, created_at, updated_at)
//	clinics      (id uuid pk, owner_user_id text, name, phone, email, state, city,
//	              lat double precision, lng double precision, verified bool, created_at)
//	lost_reports (id uuid pk, pet_id uuid, by_user text, at timestamptz, ip text, user_agent text,
//	              device text, location jsonb null)
//	lost_alerts  (id uuid pk, type text, target_id text, microchip text, pet_id uuid, at timestamptz)
//	wa_clicks    (id uuid pk, user_id text, microchip text, origin text, user_agent text, at timestamptz)
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = errors.New("not found")
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
