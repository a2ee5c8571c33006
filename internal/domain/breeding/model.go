package breeding

import (
	"time"

	"livestock-breeding/internal/domain/animals"
)

// OffspringPrediction es el enriquecimiento de una pareja candidata:
// viene del predictor externo o, si ese falla, del respaldo local.
type OffspringPrediction struct {
	PredictedTraits PredictedTraits
	Confidence      float64 // siempre en [0,1]
	Explanation     string
}

type PredictedTraits struct {
	EstimatedHornSize *float64
	BreedStrength     string
}

// PairRecommendation es el resultado final del modo parejas.
// Valor efímero: vive lo que dura el request.
type PairRecommendation struct {
	Parent1            animals.Animal
	Parent2            animals.Animal
	CompatibilityScore float64 // siempre en [0,100]
	Prediction         OffspringPrediction
}

// RelatedPair identifica una pareja conflictiva dentro de un rebaño.
type RelatedPair struct {
	Animal1      string // nombre, no ID: el warning es para humanos
	Animal2      string
	Relationship string
}

type HerdAnalysis struct {
	PredictedOutcomes PredictedOutcomes
	Confidence        float64
	Explanation       string
	BreedingStrategy  string

	// Advertencia de parentesco: solo informativa, los animales
	// relacionados NO se sacan del rebaño (a diferencia del modo
	// parejas, que los excluye de plano).
	HasRelatedAnimals     bool
	RelatedAnimalsWarning string
	RelatedPairs          []RelatedPair
}

type PredictedOutcomes struct {
	EstimatedOffspringCount int
	AverageHornSize         *float64
	TraitStrength           string
	GeneticDiversity        string
}

// HerdRecommendation es el resultado del modo rebaño (0 o 1 por request).
type HerdRecommendation struct {
	HerdAnimals []animals.Animal
	HerdScore   float64 // siempre en [0,100]
	Analysis    HerdAnalysis
}

// SavedRecommendation es la fila persistida del historial de parejas.
type SavedRecommendation struct {
	ID                 string
	Parent1ID          string
	Parent2ID          string
	CompatibilityScore float64
	Confidence         float64
	Explanation        string
	CreatedAt          time.Time
}
