package breeding

import (
	"testing"

	"livestock-breeding/internal/domain/animals"

	"github.com/stretchr/testify/assert"
)

func horned(id string, sex animals.Sex, species string, horn float64) animals.Animal {
	return animals.Animal{
		ID:       id,
		Name:     id,
		Species:  species,
		Sex:      sex,
		HornSize: &horn,
	}
}

func TestPairScore_Deterministic(t *testing.T) {
	a := horned("a", animals.SexMale, "Cattle", 12.5)
	b := horned("b", animals.SexFemale, "Cattle", 14.0)

	first := PairScore(a, b)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, PairScore(a, b))
	}
}

func TestPairScore_Bounds(t *testing.T) {
	cases := []struct {
		name string
		a, b animals.Animal
	}{
		{"sin datos opcionales", animals.Animal{Species: "Cattle"}, animals.Animal{Species: "Goat"}},
		{"cuernos idénticos misma especie", horned("a", animals.SexMale, "Cattle", 20), horned("b", animals.SexFemale, "Cattle", 20)},
		{"cuernos muy distintos", horned("a", animals.SexMale, "Cattle", 1), horned("b", animals.SexFemale, "Cattle", 99)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := PairScore(tc.a, tc.b)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestPairScore_SpeciesBonus(t *testing.T) {
	exact := PairScore(
		animals.Animal{Species: "Cattle"},
		animals.Animal{Species: "Cattle"},
	)
	loose := PairScore(
		animals.Animal{Species: "Cattle"},
		animals.Animal{Species: "cattle"},
	)
	none := PairScore(
		animals.Animal{Species: "Cattle"},
		animals.Animal{Species: "Goat"},
	)

	assert.Equal(t, 70.0, exact)
	assert.Equal(t, 60.0, loose)
	assert.Equal(t, 50.0, none)
}

func TestPairScore_HornTermNeverPenalizes(t *testing.T) {
	// Término de cornamenta con piso en cero: una diferencia enorme
	// suma 0, nunca resta puntos.
	base := PairScore(
		animals.Animal{Species: "Cattle"},
		animals.Animal{Species: "Cattle"},
	)
	hugeDiff := PairScore(
		horned("a", animals.SexMale, "Cattle", 1),
		horned("b", animals.SexFemale, "Cattle", 80),
	)
	assert.Equal(t, base, hugeDiff)
}

func TestPairScore_SimilarHornsScoreHigher(t *testing.T) {
	similar := PairScore(
		horned("a", animals.SexMale, "Cattle", 15),
		horned("b", animals.SexFemale, "Cattle", 16),
	)
	distant := PairScore(
		horned("a", animals.SexMale, "Cattle", 15),
		horned("b", animals.SexFemale, "Cattle", 25),
	)
	assert.Greater(t, similar, distant)
}

func TestPairScore_ClampsAtHundred(t *testing.T) {
	// base 50 + especie 20 + cuernos idénticos 30 = exactamente 100
	score := PairScore(
		horned("a", animals.SexMale, "Cattle", 18),
		horned("b", animals.SexFemale, "Cattle", 18),
	)
	assert.Equal(t, 100.0, score)
}

func TestHerdScore_Bounds(t *testing.T) {
	herd := []animals.Animal{
		horned("m1", animals.SexMale, "Cattle", 15),
		horned("f1", animals.SexFemale, "Cattle", 14),
		horned("f2", animals.SexFemale, "Cattle", 120), // promedio alto, bono capado
	}
	score := HerdScore(herd)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestHerdScore_EmptyHerd(t *testing.T) {
	assert.Equal(t, 0.0, HerdScore(nil))
}

func TestHerdScore_SingleSpeciesBeatsMixed(t *testing.T) {
	single := HerdScore([]animals.Animal{
		{ID: "m", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f", Species: "Cattle", Sex: animals.SexFemale},
	})
	mixed := HerdScore([]animals.Animal{
		{ID: "m", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f", Species: "Goat", Sex: animals.SexFemale},
	})
	assert.Greater(t, single, mixed)
}

func TestHerdScore_BalancedSexesBeatSkewed(t *testing.T) {
	balanced := HerdScore([]animals.Animal{
		{ID: "m1", Species: "Cattle", Sex: animals.SexMale},
		{ID: "m2", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Species: "Cattle", Sex: animals.SexFemale},
		{ID: "f2", Species: "Cattle", Sex: animals.SexFemale},
	})
	skewed := HerdScore([]animals.Animal{
		{ID: "m1", Species: "Cattle", Sex: animals.SexMale},
		{ID: "m2", Species: "Cattle", Sex: animals.SexMale},
		{ID: "m3", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Species: "Cattle", Sex: animals.SexFemale},
	})
	assert.Greater(t, balanced, skewed)
}
