package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	ListAll(ctx context.Context) ([]Animal, error)
	Delete(ctx context.Context, id string) error

	// DetachHerd limpia HerdID en todos los animales de un rebaño.
	// Se usa al borrar el rebaño: los animales quedan, sueltos.
	DetachHerd(ctx context.Context, herdID string) error
}
