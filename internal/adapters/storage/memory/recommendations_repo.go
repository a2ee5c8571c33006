package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"livestock-breeding/internal/domain/breeding"
)

type recommendationsRepo struct {
	mu    sync.RWMutex
	items []breeding.SavedRecommendation // orden de inserción
}

func NewRecommendationsRepo() breeding.Repository {
	return &recommendationsRepo{}
}

func (r *recommendationsRepo) Save(ctx context.Context, rec breeding.SavedRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("recommendation id required")
	}
	r.items = append(r.items, rec)
	return nil
}

func (r *recommendationsRepo) ListRecent(ctx context.Context, limit int) ([]breeding.SavedRecommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.items) {
		limit = len(r.items)
	}

	// más recientes primero
	out := make([]breeding.SavedRecommendation, 0, limit)
	for i := len(r.items) - 1; i >= len(r.items)-limit; i-- {
		out = append(out, r.items[i])
	}
	return out, nil
}
