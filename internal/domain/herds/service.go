package herds

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-breeding/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("herd not found")
)

type Service struct {
	repo    Repository
	animals animals.Repository
	now     func() time.Time
}

func NewService(repo Repository, animalRepo animals.Repository) *Service {
	return &Service{
		repo:    repo,
		animals: animalRepo,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name        string
	Description string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Herd, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Herd{}, ErrInvalidInput
	}

	now := s.now()
	h := Herd{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Herd{}, err
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Herd, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(in.Name) == "" {
		return Herd{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Herd{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Description = strings.TrimSpace(in.Description)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Herd{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Herd, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Herd{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Herd, error) {
	return s.repo.ListAll(ctx)
}

// Delete borra el rebaño y desasocia a sus animales (quedan sin HerdID).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.animals.DetachHerd(ctx, id)
}
