package breeding

import (
	"encoding/json"
	"net/http"
	"time"

	"livestock-breeding/internal/domain/animals"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Modo parejas: corre sobre el plantel completo.
	r.Post("/api/recommendations", generatePairsHandler(svc))
	r.Get("/api/recommendations/history", historyHandler(svc))

	// Modo rebaño: corre sobre un subconjunto elegido por el caller.
	r.Post("/api/herd-analysis", analyzeHerdHandler(svc))
}

// Contrato camelCase del API original (el cliente web depende de él).
type parentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Sex         string   `json:"sex"`
	HornSize    *float64 `json:"hornSize,omitempty"`
	HealthNotes string   `json:"healthNotes,omitempty"`
}

type predictedTraitsResponse struct {
	EstimatedHornSize *float64 `json:"estimatedHornSize,omitempty"`
	BreedStrength     string   `json:"breedStrength"`
}

type predictionResponse struct {
	PredictedTraits predictedTraitsResponse `json:"predictedTraits"`
	Confidence      float64                 `json:"confidence"`
	Explanation     string                  `json:"explanation"`
}

type pairRecommendationResponse struct {
	Parent1            parentResponse     `json:"parent1"`
	Parent2            parentResponse     `json:"parent2"`
	CompatibilityScore float64            `json:"compatibilityScore"`
	Prediction         predictionResponse `json:"prediction"`
}

type herdAnalysisRequest struct {
	AnimalIDs []string `json:"animalIds"`
}

type predictedOutcomesResponse struct {
	EstimatedOffspringCount int      `json:"estimatedOffspringCount"`
	AverageHornSize         *float64 `json:"averageHornSize,omitempty"`
	TraitStrength           string   `json:"traitStrength"`
	GeneticDiversity        string   `json:"geneticDiversity"`
}

type relatedPairResponse struct {
	Animal1      string `json:"animal1"`
	Animal2      string `json:"animal2"`
	Relationship string `json:"relationship"`
}

type herdAnalysisResponse struct {
	PredictedOutcomes     predictedOutcomesResponse `json:"predictedOutcomes"`
	Confidence            float64                   `json:"confidence"`
	Explanation           string                    `json:"explanation"`
	BreedingStrategy      string                    `json:"breedingStrategy"`
	HasRelatedAnimals     bool                      `json:"hasRelatedAnimals"`
	RelatedAnimalsWarning string                    `json:"relatedAnimalsWarning,omitempty"`
	RelatedPairs          []relatedPairResponse     `json:"relatedPairs,omitempty"`
}

type herdRecommendationResponse struct {
	HerdAnimals []parentResponse     `json:"herdAnimals"`
	HerdScore   float64              `json:"herdScore"`
	Analysis    herdAnalysisResponse `json:"analysis"`
}

type savedRecommendationResponse struct {
	ID                 string    `json:"id"`
	Parent1ID          string    `json:"parent1Id"`
	Parent2ID          string    `json:"parent2Id"`
	CompatibilityScore float64   `json:"compatibilityScore"`
	Confidence         float64   `json:"confidence"`
	Explanation        string    `json:"explanation"`
	CreatedAt          time.Time `json:"createdAt"`
}

func generatePairsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.GeneratePairRecommendations(r.Context())
		if err != nil {
			http.Error(w, "failed to generate breeding recommendations", http.StatusInternalServerError)
			return
		}

		out := make([]pairRecommendationResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, pairRecommendationResponse{
				Parent1:            toParentResponse(rec.Parent1),
				Parent2:            toParentResponse(rec.Parent2),
				CompatibilityScore: rec.CompatibilityScore,
				Prediction: predictionResponse{
					PredictedTraits: predictedTraitsResponse{
						EstimatedHornSize: rec.Prediction.PredictedTraits.EstimatedHornSize,
						BreedStrength:     rec.Prediction.PredictedTraits.BreedStrength,
					},
					Confidence:  rec.Prediction.Confidence,
					Explanation: rec.Prediction.Explanation,
				},
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func analyzeHerdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req herdAnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		// Validación de borde: mínimo 2 IDs antes de tocar el motor.
		if len(req.AnimalIDs) < 2 {
			http.Error(w, "at least 2 animals required for breeding analysis", http.StatusBadRequest)
			return
		}

		recs, err := svc.AnalyzeHerd(r.Context(), req.AnimalIDs)
		if err != nil {
			http.Error(w, "failed to generate breeding recommendations", http.StatusInternalServerError)
			return
		}

		out := make([]herdRecommendationResponse, 0, len(recs))
		for _, rec := range recs {
			herd := make([]parentResponse, 0, len(rec.HerdAnimals))
			for _, a := range rec.HerdAnimals {
				herd = append(herd, toParentResponse(a))
			}
			related := make([]relatedPairResponse, 0, len(rec.Analysis.RelatedPairs))
			for _, p := range rec.Analysis.RelatedPairs {
				related = append(related, relatedPairResponse(p))
			}
			out = append(out, herdRecommendationResponse{
				HerdAnimals: herd,
				HerdScore:   rec.HerdScore,
				Analysis: herdAnalysisResponse{
					PredictedOutcomes: predictedOutcomesResponse{
						EstimatedOffspringCount: rec.Analysis.PredictedOutcomes.EstimatedOffspringCount,
						AverageHornSize:         rec.Analysis.PredictedOutcomes.AverageHornSize,
						TraitStrength:           rec.Analysis.PredictedOutcomes.TraitStrength,
						GeneticDiversity:        rec.Analysis.PredictedOutcomes.GeneticDiversity,
					},
					Confidence:            rec.Analysis.Confidence,
					Explanation:           rec.Analysis.Explanation,
					BreedingStrategy:      rec.Analysis.BreedingStrategy,
					HasRelatedAnimals:     rec.Analysis.HasRelatedAnimals,
					RelatedAnimalsWarning: rec.Analysis.RelatedAnimalsWarning,
					RelatedPairs:          related,
				},
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context(), 0)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]savedRecommendationResponse, 0, len(items))
		for _, it := range items {
			out = append(out, savedRecommendationResponse{
				ID:                 it.ID,
				Parent1ID:          it.Parent1ID,
				Parent2ID:          it.Parent2ID,
				CompatibilityScore: it.CompatibilityScore,
				Confidence:         it.Confidence,
				Explanation:        it.Explanation,
				CreatedAt:          it.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toParentResponse(a animals.Animal) parentResponse {
	return parentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Species:     a.Species,
		Sex:         string(a.Sex),
		HornSize:    a.HornSize,
		HealthNotes: a.HealthNotes,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
