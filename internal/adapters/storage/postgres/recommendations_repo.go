package postgres

import (
	"context"
	"database/sql"

	"livestock-breeding/internal/domain/breeding"
)

type RecommendationsRepo struct {
	db *sql.DB
}

func NewRecommendationsRepo(db *sql.DB) *RecommendationsRepo {
	return &RecommendationsRepo{db: db}
}

func (r *RecommendationsRepo) Save(ctx context.Context, rec breeding.SavedRecommendation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeding_recommendations (
			id, parent1_id, parent2_id,
			compatibility_score, confidence, explanation,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		rec.ID,
		rec.Parent1ID,
		rec.Parent2ID,
		rec.CompatibilityScore,
		rec.Confidence,
		rec.Explanation,
		rec.CreatedAt,
	)
	return err
}

func (r *RecommendationsRepo) ListRecent(ctx context.Context, limit int) ([]breeding.SavedRecommendation, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, parent1_id, parent2_id,
			compatibility_score, confidence, explanation,
			created_at
		FROM breeding_recommendations
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeding.SavedRecommendation, 0)
	for rows.Next() {
		var rec breeding.SavedRecommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.Parent1ID,
			&rec.Parent2ID,
			&rec.CompatibilityScore,
			&rec.Confidence,
			&rec.Explanation,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
