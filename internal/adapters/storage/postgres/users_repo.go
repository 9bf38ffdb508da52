package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-rescue-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Get(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, plan, phone, notify, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Plan,
		&u.Phone,
		&u.Notify,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Upsert(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, plan, phone, notify, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			plan = EXCLUDED.plan,
			phone = EXCLUDED.phone,
			notify = EXCLUDED.notify,
			updated_at = EXCLUDED.updated_at
	`,
		u.ID,
		u.Email,
		string(u.Plan),
		u.Phone,
		u.Notify,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) SetPlan(ctx context.Context, id string, plan users.Plan) error {
	// Upsert solo del plan: el webhook puede llegar antes que el primer
	// request autenticado del usuario.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, plan, phone, notify, created_at, updated_at)
		VALUES ($1, '', $2, '', false, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			plan = EXCLUDED.plan,
			updated_at = now()
	`, id, string(plan))
	return err
}

func (r *UsersRepo) ListNotifyOptIn(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, plan, phone, notify, created_at, updated_at
		FROM users
		WHERE notify = true
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Plan,
			&u.Phone,
			&u.Notify,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}
