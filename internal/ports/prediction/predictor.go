package prediction

import "context"

// Predictor es la capacidad externa de enriquecimiento (LLM).
// El motor de cruza la trata como lenta y falible: cualquier error
// se absorbe con una predicción local de respaldo, nunca se propaga.
type Predictor interface {
	PredictPair(ctx context.Context, in PairRequest) (PairResult, error)
	AnalyzeHerd(ctx context.Context, in HerdRequest) (HerdResult, error)
}

// ParentSnapshot es la vista plana de un animal que viaja al predictor.
// Sin referencias de linaje: el predictor no resuelve parentescos.
type ParentSnapshot struct {
	Name        string
	Species     string
	Sex         string
	HornSize    *float64
	HealthNotes string
}

type PairRequest struct {
	Parent1 ParentSnapshot
	Parent2 ParentSnapshot

	// Señal local de ranking, para dar contexto al modelo.
	CompatibilityScore float64
}

type PairResult struct {
	PredictedTraits PredictedTraits
	Confidence      float64
	Explanation     string
}

type PredictedTraits struct {
	EstimatedHornSize *float64
	BreedStrength     string
}

type RelatedPairSnapshot struct {
	Animal1      string
	Animal2      string
	Relationship string
}

type HerdRequest struct {
	Animals []ParentSnapshot

	HasRelatedAnimals bool
	RelatedPairs      []RelatedPairSnapshot
}

type HerdResult struct {
	PredictedOutcomes PredictedOutcomes
	Confidence        float64
	Explanation       string
	BreedingStrategy  string
}

type PredictedOutcomes struct {
	EstimatedOffspringCount int
	AverageHornSize         *float64
	TraitStrength           string
	GeneticDiversity        string
}
