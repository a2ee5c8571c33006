package herds

import "context"

type Repository interface {
	Create(ctx context.Context, h Herd) error
	Update(ctx context.Context, h Herd) error
	GetByID(ctx context.Context, id string) (Herd, error)
	ListAll(ctx context.Context) ([]Herd, error)
	Delete(ctx context.Context, id string) error
}
