package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"livestock-breeding/internal/domain/herds"
)

type HerdsRepo struct {
	db *sql.DB
}

func NewHerdsRepo(db *sql.DB) *HerdsRepo {
	return &HerdsRepo{db: db}
}

func (r *HerdsRepo) Create(ctx context.Context, h herds.Herd) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO herds (id, name, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		h.ID,
		h.Name,
		h.Description,
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *HerdsRepo) Update(ctx context.Context, h herds.Herd) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE herds
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`,
		h.ID,
		h.Name,
		h.Description,
		h.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return herds.ErrNotFound
	}
	return nil
}

func (r *HerdsRepo) GetByID(ctx context.Context, id string) (herds.Herd, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return herds.Herd{}, herds.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM herds
		WHERE id = $1
	`, id)

	var h herds.Herd
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return herds.Herd{}, herds.ErrNotFound
		}
		return herds.Herd{}, err
	}
	return h, nil
}

func (r *HerdsRepo) ListAll(ctx context.Context) ([]herds.Herd, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM herds
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]herds.Herd, 0)
	for rows.Next() {
		var h herds.Herd
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HerdsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM herds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return herds.ErrNotFound
	}
	return nil
}
