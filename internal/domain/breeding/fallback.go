package breeding

import (
	"fmt"
	"strings"

	"livestock-breeding/internal/domain/animals"
)

// Confianza fija de las predicciones de respaldo: menor que la que
// suele reportar el modelo, para señalar el origen local del dato.
const fallbackConfidence = 0.7

// fallbackPairPrediction sintetiza una predicción local cuando el
// predictor externo falla o responde mal formado. Usa los mismos
// atributos que el scorer pero produce texto descriptivo, no ranking.
// Nunca falla.
func fallbackPairPrediction(a, b animals.Animal, score float64) OffspringPrediction {
	var estHorn *float64
	switch {
	case a.HornSize != nil && b.HornSize != nil:
		avg := (*a.HornSize + *b.HornSize) / 2
		estHorn = &avg
	case a.HornSize != nil:
		v := *a.HornSize
		estHorn = &v
	case b.HornSize != nil:
		v := *b.HornSize
		estHorn = &v
	}

	strength := breedStrengthFor(score)

	var sb strings.Builder
	if a.Species == b.Species {
		fmt.Fprintf(&sb, "Pairing %s and %s (both %s) shows consistent breed traits. ", a.Name, b.Name, a.Species)
	} else {
		fmt.Fprintf(&sb, "Pairing %s (%s) and %s (%s) mixes breeds, which broadens the genetic base. ", a.Name, a.Species, b.Name, b.Species)
	}
	if estHorn != nil {
		fmt.Fprintf(&sb, "Expected horn size around %.1f inches based on parent measurements. ", *estHorn)
	}
	fmt.Fprintf(&sb, "Compatibility score of %.0f suggests %s offspring potential.", score, strings.ToLower(strength))

	return OffspringPrediction{
		PredictedTraits: PredictedTraits{
			EstimatedHornSize: estHorn,
			BreedStrength:     strength,
		},
		Confidence:  fallbackConfidence,
		Explanation: sb.String(),
	}
}

func breedStrengthFor(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Strong"
	case score >= 55:
		return "Good"
	default:
		return "Fair"
	}
}

// fallbackHerdAnalysis es el respaldo local del análisis de rebaño.
// Mismos campos que la respuesta del modelo; nunca falla.
func fallbackHerdAnalysis(herd []animals.Animal, related []RelatedPair) HerdAnalysis {
	var males, females int
	var hornSum float64
	var hornCount int
	species := make(map[string]struct{})

	for _, a := range herd {
		species[a.Species] = struct{}{}
		switch a.Sex {
		case animals.SexMale:
			males++
		case animals.SexFemale:
			females++
		}
		if a.HornSize != nil {
			hornSum += *a.HornSize
			hornCount++
		}
	}

	estimatedOffspring := males
	if females < males {
		estimatedOffspring = females
	}

	var avgHorn *float64
	if hornCount > 0 {
		v := hornSum / float64(hornCount)
		avgHorn = &v
	}

	diversity := "Limited"
	if len(species) > 1 {
		diversity = "Good"
	}

	hasRelated := len(related) > 0

	explanation := fmt.Sprintf(
		"This herd of %d animals (%d males, %d females) shows %s genetic diversity with %d species represented.",
		len(herd), males, females, strings.ToLower(diversity), len(species),
	)
	if avgHorn != nil {
		explanation += fmt.Sprintf(" The average horn size is %.1f inches, which should produce strong offspring traits.", *avgHorn)
	}
	if hasRelated {
		explanation += " WARNING: This herd contains related animals - see breeding strategy for guidance."
	}

	strategy := fmt.Sprintf(
		"With %d males and %d females, focus on rotating breeding pairs to maximize genetic diversity while maintaining strong traits. Expected offspring: approximately %d per season.",
		males, females, estimatedOffspring,
	)
	if hasRelated {
		strategy += " IMPORTANT: Separate related animals to avoid inbreeding - do not breed parent-child pairs or half-siblings together."
	}

	return HerdAnalysis{
		PredictedOutcomes: PredictedOutcomes{
			EstimatedOffspringCount: estimatedOffspring,
			AverageHornSize:         avgHorn,
			TraitStrength:           "Good",
			GeneticDiversity:        diversity,
		},
		Confidence:            fallbackConfidence,
		Explanation:           explanation,
		BreedingStrategy:      strategy,
		HasRelatedAnimals:     hasRelated,
		RelatedAnimalsWarning: relatedWarningText(related),
		RelatedPairs:          related,
	}
}

// relatedWarningText arma el texto de advertencia para humanos.
// Devuelve "" si no hay parejas conflictivas.
func relatedWarningText(related []RelatedPair) string {
	if len(related) == 0 {
		return ""
	}
	parts := make([]string, 0, len(related))
	for _, p := range related {
		parts = append(parts, fmt.Sprintf("%s & %s (%s)", p.Animal1, p.Animal2, p.Relationship))
	}
	return fmt.Sprintf("Related animals detected: %s. Avoid breeding these pairs to prevent inbreeding.", strings.Join(parts, ", "))
}
