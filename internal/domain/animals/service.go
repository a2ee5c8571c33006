package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Sex         string
	HornSize    *float64
	HealthNotes string
	SireID      string
	DamID       string
	HerdID      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if err := validate(in); err != nil {
		return Animal{}, err
	}

	now := s.now()
	a := Animal{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Sex:         Sex(strings.TrimSpace(in.Sex)),
		HornSize:    in.HornSize,
		HealthNotes: strings.TrimSpace(in.HealthNotes),
		SireID:      strings.TrimSpace(in.SireID),
		DamID:       strings.TrimSpace(in.DamID),
		HerdID:      strings.TrimSpace(in.HerdID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Update es PUT semántico: reemplaza el registro completo salvo ID/CreatedAt.
func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	if err := validate(in); err != nil {
		return Animal{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Species = strings.TrimSpace(in.Species)
	current.Sex = Sex(strings.TrimSpace(in.Sex))
	current.HornSize = in.HornSize
	current.HealthNotes = strings.TrimSpace(in.HealthNotes)
	current.SireID = strings.TrimSpace(in.SireID)
	current.DamID = strings.TrimSpace(in.DamID)
	current.HerdID = strings.TrimSpace(in.HerdID)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Animal{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Animal, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func validate(in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return ErrInvalidInput
	}
	switch Sex(strings.TrimSpace(in.Sex)) {
	case SexMale, SexFemale:
	default:
		return ErrInvalidInput
	}
	if in.HornSize != nil && *in.HornSize < 0 {
		return ErrInvalidInput
	}
	return nil
}
