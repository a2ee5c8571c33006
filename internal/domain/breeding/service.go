package breeding

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"livestock-breeding/internal/domain/animals"
	"livestock-breeding/internal/platform/logger"
	"livestock-breeding/internal/ports/prediction"

	"github.com/google/uuid"
)

// Tope duro del modo parejas: nunca se devuelven más de 5
// recomendaciones por request, sin importar el tamaño del plantel.
const maxPairRecommendations = 5

const defaultHistoryLimit = 50

type Service struct {
	animals   animals.Repository
	history   Repository // puede ser nil (sin historial)
	predictor prediction.Predictor
	log       logger.Logger
	now       func() time.Time
}

func NewService(animalRepo animals.Repository, history Repository, p prediction.Predictor, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewFromEnv()
	}
	return &Service{
		animals:   animalRepo,
		history:   history,
		predictor: p,
		log:       log,
		now:       time.Now,
	}
}

// candidate es el valor efímero del pipeline: pareja + puntaje.
type candidate struct {
	parent1 animals.Animal // macho
	parent2 animals.Animal // hembra
	score   float64
}

// GeneratePairRecommendations corre el pipeline completo del modo
// parejas sobre todo el plantel: enumerar machos×hembras, descartar
// parientes, puntuar, rankear top 5 y enriquecer cada sobreviviente.
// El único error posible es de storage; el enriquecimiento nunca falla
// hacia afuera (cae al respaldo local).
func (s *Service) GeneratePairRecommendations(ctx context.Context) ([]PairRecommendation, error) {
	roster, err := s.animals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	recs := s.recommendPairs(ctx, roster)
	s.saveHistory(ctx, recs)
	return recs, nil
}

func (s *Service) recommendPairs(ctx context.Context, roster []animals.Animal) []PairRecommendation {
	var males, females []animals.Animal
	for _, a := range roster {
		switch a.Sex {
		case animals.SexMale:
			males = append(males, a)
		case animals.SexFemale:
			females = append(females, a)
		}
	}

	// Sin diversidad de sexos no hay candidatos: vacío inmediato,
	// cero llamadas al predictor.
	if len(males) == 0 || len(females) == 0 {
		return []PairRecommendation{}
	}

	var pool []candidate
	for _, m := range males {
		for _, f := range females {
			if AreRelated(m, f) {
				// Exclusión dura: una pareja emparentada jamás
				// llega al ranking del modo parejas.
				continue
			}
			pool = append(pool, candidate{parent1: m, parent2: f, score: PairScore(m, f)})
		}
	}

	// Puntaje descendente; los empates conservan el orden de
	// enumeración (macho visto primero, luego hembra).
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].score > pool[j].score
	})
	if len(pool) > maxPairRecommendations {
		pool = pool[:maxPairRecommendations]
	}

	// Enriquecimiento en paralelo, una goroutine por candidato.
	// Cada resultado se escribe en su slot por índice: el orden de
	// salida lo fija el ranking, no el orden de término, y el fallo
	// de un candidato no toca a los demás.
	out := make([]PairRecommendation, len(pool))
	var wg sync.WaitGroup
	for i := range pool {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			out[i] = PairRecommendation{
				Parent1:            c.parent1,
				Parent2:            c.parent2,
				CompatibilityScore: c.score,
				Prediction:         s.predictPair(ctx, c),
			}
		}(i, pool[i])
	}
	wg.Wait()

	return out
}

// AnalyzeHerd corre el modo rebaño sobre el subconjunto seleccionado.
// Devuelve 0 o 1 resultados: vacío si el subconjunto no da para cruza
// (menos de 2 animales resueltos, o falta un sexo). Los parentescos
// dentro del rebaño generan advertencia pero no excluyen animales.
func (s *Service) AnalyzeHerd(ctx context.Context, animalIDs []string) ([]HerdRecommendation, error) {
	all, err := s.animals.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(animalIDs))
	for _, id := range animalIDs {
		want[strings.TrimSpace(id)] = struct{}{}
	}

	var herd []animals.Animal
	var males, females int
	for _, a := range all {
		if _, ok := want[a.ID]; !ok {
			continue
		}
		herd = append(herd, a)
		switch a.Sex {
		case animals.SexMale:
			males++
		case animals.SexFemale:
			females++
		}
	}

	out := make([]HerdRecommendation, 0, 1)
	if len(herd) < 2 || males == 0 || females == 0 {
		return out, nil
	}

	related := RelatedPairsIn(herd)
	out = append(out, HerdRecommendation{
		HerdAnimals: herd,
		HerdScore:   HerdScore(herd),
		Analysis:    s.analyzeHerd(ctx, herd, related),
	})
	return out, nil
}

// History lista el historial persistido de recomendaciones de parejas.
func (s *Service) History(ctx context.Context, limit int) ([]SavedRecommendation, error) {
	if s.history == nil {
		return []SavedRecommendation{}, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.history.ListRecent(ctx, limit)
}

// predictPair enriquece un candidato. Cualquier error del predictor,
// o una respuesta que no cumpla el contrato de forma, termina en el
// respaldo local: este método no tiene camino de fallo.
func (s *Service) predictPair(ctx context.Context, c candidate) OffspringPrediction {
	res, err := s.predictor.PredictPair(ctx, prediction.PairRequest{
		Parent1:            snapshot(c.parent1),
		Parent2:            snapshot(c.parent2),
		CompatibilityScore: c.score,
	})
	if err != nil {
		s.log.Warn("pair prediction failed, using local fallback", map[string]any{
			"parent1": c.parent1.Name,
			"parent2": c.parent2.Name,
			"error":   err.Error(),
		})
		return fallbackPairPrediction(c.parent1, c.parent2, c.score)
	}
	if !validPairResult(res) {
		s.log.Warn("pair prediction malformed, using local fallback", map[string]any{
			"parent1": c.parent1.Name,
			"parent2": c.parent2.Name,
		})
		return fallbackPairPrediction(c.parent1, c.parent2, c.score)
	}

	return OffspringPrediction{
		PredictedTraits: PredictedTraits{
			EstimatedHornSize: res.PredictedTraits.EstimatedHornSize,
			BreedStrength:     res.PredictedTraits.BreedStrength,
		},
		Confidence:  clamp(res.Confidence, 0, 1),
		Explanation: res.Explanation,
	}
}

func (s *Service) analyzeHerd(ctx context.Context, herd []animals.Animal, related []RelatedPair) HerdAnalysis {
	req := prediction.HerdRequest{
		HasRelatedAnimals: len(related) > 0,
	}
	for _, a := range herd {
		req.Animals = append(req.Animals, snapshot(a))
	}
	for _, p := range related {
		req.RelatedPairs = append(req.RelatedPairs, prediction.RelatedPairSnapshot{
			Animal1:      p.Animal1,
			Animal2:      p.Animal2,
			Relationship: p.Relationship,
		})
	}

	res, err := s.predictor.AnalyzeHerd(ctx, req)
	if err != nil {
		s.log.Warn("herd analysis failed, using local fallback", map[string]any{
			"herd_size": len(herd),
			"error":     err.Error(),
		})
		return fallbackHerdAnalysis(herd, related)
	}
	if !validHerdResult(res) {
		s.log.Warn("herd analysis malformed, using local fallback", map[string]any{
			"herd_size": len(herd),
		})
		return fallbackHerdAnalysis(herd, related)
	}

	return HerdAnalysis{
		PredictedOutcomes: PredictedOutcomes{
			EstimatedOffspringCount: res.PredictedOutcomes.EstimatedOffspringCount,
			AverageHornSize:         res.PredictedOutcomes.AverageHornSize,
			TraitStrength:           res.PredictedOutcomes.TraitStrength,
			GeneticDiversity:        res.PredictedOutcomes.GeneticDiversity,
		},
		Confidence:            clamp(res.Confidence, 0, 1),
		Explanation:           res.Explanation,
		BreedingStrategy:      res.BreedingStrategy,
		HasRelatedAnimals:     len(related) > 0,
		RelatedAnimalsWarning: relatedWarningText(related),
		RelatedPairs:          related,
	}
}

// saveHistory persiste el lote generado, best-effort: un fallo se
// loguea y el request sigue como si nada.
func (s *Service) saveHistory(ctx context.Context, recs []PairRecommendation) {
	if s.history == nil {
		return
	}
	now := s.now()
	for _, rec := range recs {
		err := s.history.Save(ctx, SavedRecommendation{
			ID:                 uuid.NewString(),
			Parent1ID:          rec.Parent1.ID,
			Parent2ID:          rec.Parent2.ID,
			CompatibilityScore: rec.CompatibilityScore,
			Confidence:         rec.Prediction.Confidence,
			Explanation:        rec.Prediction.Explanation,
			CreatedAt:          now,
		})
		if err != nil {
			s.log.Warn("could not persist recommendation", map[string]any{
				"parent1_id": rec.Parent1.ID,
				"parent2_id": rec.Parent2.ID,
				"error":      err.Error(),
			})
		}
	}
}

// Contrato de forma de la respuesta externa: campos requeridos
// presentes y no vacíos. Lo que no cumple se trata como fallo.
func validPairResult(res prediction.PairResult) bool {
	return strings.TrimSpace(res.Explanation) != "" &&
		strings.TrimSpace(res.PredictedTraits.BreedStrength) != ""
}

func validHerdResult(res prediction.HerdResult) bool {
	return strings.TrimSpace(res.Explanation) != "" &&
		strings.TrimSpace(res.BreedingStrategy) != "" &&
		strings.TrimSpace(res.PredictedOutcomes.TraitStrength) != "" &&
		strings.TrimSpace(res.PredictedOutcomes.GeneticDiversity) != "" &&
		res.PredictedOutcomes.EstimatedOffspringCount >= 0
}

func snapshot(a animals.Animal) prediction.ParentSnapshot {
	return prediction.ParentSnapshot{
		Name:        a.Name,
		Species:     a.Species,
		Sex:         string(a.Sex),
		HornSize:    a.HornSize,
		HealthNotes: a.HealthNotes,
	}
}
