package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-breeding/internal/domain/herds"
)

type herdsRepo struct {
	mu   sync.RWMutex
	byID map[string]herds.Herd
}

func NewHerdsRepo() herds.Repository {
	return &herdsRepo{
		byID: make(map[string]herds.Herd),
	}
}

func (r *herdsRepo) Create(ctx context.Context, h herds.Herd) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("herd id required")
	}
	if _, exists := r.byID[h.ID]; exists {
		return errors.New("herd already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *herdsRepo) Update(ctx context.Context, h herds.Herd) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("herd id required")
	}
	if _, exists := r.byID[h.ID]; !exists {
		return herds.ErrNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *herdsRepo) GetByID(ctx context.Context, id string) (herds.Herd, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return herds.Herd{}, herds.ErrNotFound
	}
	return h, nil
}

func (r *herdsRepo) ListAll(ctx context.Context) ([]herds.Herd, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]herds.Herd, 0, len(r.byID))
	for _, h := range r.byID {
		out = append(out, h)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *herdsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return herds.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
