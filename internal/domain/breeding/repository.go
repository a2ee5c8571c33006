package breeding

import "context"

// Repository guarda el historial de recomendaciones de parejas.
// La escritura es best-effort: un fallo acá no voltea el request.
type Repository interface {
	Save(ctx context.Context, rec SavedRecommendation) error
	ListRecent(ctx context.Context, limit int) ([]SavedRecommendation, error)
}
