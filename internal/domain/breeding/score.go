package breeding

import (
	"math"
	"strings"

	"livestock-breeding/internal/domain/animals"
)

const (
	baseScore = 50.0

	speciesExactBonus = 20.0
	speciesLooseBonus = 10.0

	// Bono por cornamenta similar: max(0, cap - 2*|dif|).
	// Solo suma, nunca resta: una diferencia grande aporta 0, no penaliza.
	hornSimilarityCap = 30.0

	herdSingleSpeciesBonus = 15.0
	herdMixedSpeciesBonus  = 5.0
	herdHornBonusCap       = 20.0
	herdSexBalanceBonus    = 15.0
)

// PairScore calcula la compatibilidad de una pareja, acotada a [0,100].
// Determinística: misma pareja, mismo puntaje, siempre.
// Es una señal heurística de ranking, no una probabilidad.
func PairScore(a, b animals.Animal) float64 {
	score := baseScore

	switch {
	case a.Species == b.Species:
		score += speciesExactBonus
	case strings.EqualFold(a.Species, b.Species):
		score += speciesLooseBonus
	}

	if a.HornSize != nil && b.HornSize != nil {
		diff := math.Abs(*a.HornSize - *b.HornSize)
		score += math.Max(0, hornSimilarityCap-diff*2)
	}

	return clamp(score, 0, 100)
}

// HerdScore es el puntaje agregado del modo rebaño, acotado a [0,100]:
// base + bono por especie única + bono por cornamenta promedio +
// bono por balance de sexos.
func HerdScore(herd []animals.Animal) float64 {
	if len(herd) == 0 {
		return 0
	}

	score := baseScore

	species := make(map[string]struct{})
	var males, females int
	var hornSum float64
	var hornCount int

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

	if len(species) == 1 {
		score += herdSingleSpeciesBonus
	} else {
		score += herdMixedSpeciesBonus
	}

	if hornCount > 0 {
		score += math.Min(herdHornBonusCap, (hornSum/float64(hornCount))/2)
	}

	if males > 0 && females > 0 {
		lo, hi := float64(males), float64(females)
		if lo > hi {
			lo, hi = hi, lo
		}
		score += herdSexBalanceBonus * lo / hi
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
