package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"livestock-breeding/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name, species, sex,
			horn_size, health_notes,
			sire_id, dam_id, herd_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.Name,
		a.Species,
		string(a.Sex),
		toNullFloat(a.HornSize),
		a.HealthNotes,
		toNullString(a.SireID),
		toNullString(a.DamID),
		toNullString(a.HerdID),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			sex = $4,
			horn_size = $5,
			health_notes = $6,
			sire_id = $7,
			dam_id = $8,
			herd_id = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Species,
		string(a.Sex),
		toNullFloat(a.HornSize),
		a.HealthNotes,
		toNullString(a.SireID),
		toNullString(a.DamID),
		toNullString(a.HerdID),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, species, sex,
			horn_size, health_notes,
			sire_id, dam_id, herd_id,
			created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListAll(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, species, sex,
			horn_size, health_notes,
			sire_id, dam_id, herd_id,
			created_at, updated_at
		FROM animals
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) DetachHerd(ctx context.Context, herdID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE animals SET herd_id = NULL WHERE herd_id = $1
	`, herdID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var sex string
	var horn sql.NullFloat64
	var sire, dam, herd sql.NullString

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&sex,
		&horn,
		&a.HealthNotes,
		&sire,
		&dam,
		&herd,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Sex = animals.Sex(sex)
	if horn.Valid {
		v := horn.Float64
		a.HornSize = &v
	}
	a.SireID = sire.String
	a.DamID = dam.String
	a.HerdID = herd.String

	return a, nil
}

// Las referencias opcionales viajan como "" en el dominio y NULL en la tabla.
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
