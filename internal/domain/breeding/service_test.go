package breeding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"livestock-breeding/internal/domain/animals"
	"livestock-breeding/internal/platform/logger"
	"livestock-breeding/internal/ports/prediction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testAnimalsRepo struct {
	items []animals.Animal
}

func (r *testAnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.items = append(r.items, a)
	return nil
}

func (r *testAnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	for i := range r.items {
		if r.items[i].ID == a.ID {
			r.items[i] = a
			return nil
		}
	}
	return animals.ErrNotFound
}

func (r *testAnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return animals.Animal{}, animals.ErrNotFound
}

func (r *testAnimalsRepo) ListAll(ctx context.Context) ([]animals.Animal, error) {
	out := make([]animals.Animal, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *testAnimalsRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *testAnimalsRepo) DetachHerd(ctx context.Context, herdID string) error { return nil }

type testHistoryRepo struct {
	mu    sync.Mutex
	saved []SavedRecommendation
}

func (r *testHistoryRepo) Save(ctx context.Context, rec SavedRecommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, rec)
	return nil
}

func (r *testHistoryRepo) ListRecent(ctx context.Context, limit int) ([]SavedRecommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SavedRecommendation, len(r.saved))
	copy(out, r.saved)
	return out, nil
}

// -------------------------
// Stub predictor
// -------------------------

type stubPredictor struct {
	mu        sync.Mutex
	pairCalls int
	herdCalls int

	failPairs bool
	failHerd  bool

	pairResult prediction.PairResult
	herdResult prediction.HerdResult
}

func newStubPredictor() *stubPredictor {
	s := &stubPredictor{}
	s.pairResult = prediction.PairResult{
		Confidence:  0.9,
		Explanation: "stub pair analysis",
	}
	s.pairResult.PredictedTraits.BreedStrength = "Strong"
	s.herdResult = prediction.HerdResult{
		Confidence:       0.85,
		Explanation:      "stub herd analysis",
		BreedingStrategy: "stub strategy",
	}
	s.herdResult.PredictedOutcomes.EstimatedOffspringCount = 2
	s.herdResult.PredictedOutcomes.TraitStrength = "Good"
	s.herdResult.PredictedOutcomes.GeneticDiversity = "Good"
	return s
}

func (s *stubPredictor) PredictPair(ctx context.Context, in prediction.PairRequest) (prediction.PairResult, error) {
	s.mu.Lock()
	s.pairCalls++
	s.mu.Unlock()
	if s.failPairs {
		return prediction.PairResult{}, errors.New("stub: upstream down")
	}
	return s.pairResult, nil
}

func (s *stubPredictor) AnalyzeHerd(ctx context.Context, in prediction.HerdRequest) (prediction.HerdResult, error) {
	s.mu.Lock()
	s.herdCalls++
	s.mu.Unlock()
	if s.failHerd {
		return prediction.HerdResult{}, errors.New("stub: upstream down")
	}
	return s.herdResult, nil
}

func (s *stubPredictor) calls() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairCalls, s.herdCalls
}

// -------------------------
// Helpers
// -------------------------

func quietLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error})
}

func newTestService(repo *testAnimalsRepo, history Repository, p prediction.Predictor) *Service {
	return NewService(repo, history, p, quietLogger())
}

func hp(v float64) *float64 { return &v }

// -------------------------
// Modo parejas
// -------------------------

func TestGeneratePairs_SingleCompatiblePair(t *testing.T) {
	// Escenario: un macho y una hembra de la misma especie, sin parentesco.
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "m1", recs[0].Parent1.ID)
	assert.Equal(t, "f1", recs[0].Parent2.ID)
	assert.Equal(t, "stub pair analysis", recs[0].Prediction.Explanation)
	assert.Equal(t, 0.9, recs[0].Prediction.Confidence)

	pairCalls, _ := stub.calls()
	assert.Equal(t, 1, pairCalls)
}

func TestGeneratePairs_HalfSiblingsExcluded(t *testing.T) {
	// Medios hermanos por padre compartido: la pareja no puede aparecer
	// aunque fuera la de mayor puntaje.
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Uno", Species: "Cattle", Sex: animals.SexMale, SireID: "s1"},
		{ID: "f1", Name: "Dos", Species: "Cattle", Sex: animals.SexFemale, SireID: "s1"},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)

	pairCalls, _ := stub.calls()
	assert.Equal(t, 0, pairCalls)
}

func TestGeneratePairs_TopFiveOfSix(t *testing.T) {
	// 3 machos × 2 hembras sin parentescos: pool de 6, se devuelven 5.
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "M1", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(10)},
		{ID: "m2", Name: "M2", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(14)},
		{ID: "m3", Name: "M3", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(20)},
		{ID: "f1", Name: "F1", Species: "Cattle", Sex: animals.SexFemale, HornSize: hp(11)},
		{ID: "f2", Name: "F2", Species: "Cattle", Sex: animals.SexFemale, HornSize: hp(19)},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 5)

	// orden por puntaje descendente
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].CompatibilityScore, recs[i].CompatibilityScore)
	}
	for _, rec := range recs {
		assert.GreaterOrEqual(t, rec.CompatibilityScore, 0.0)
		assert.LessOrEqual(t, rec.CompatibilityScore, 100.0)
	}

	pairCalls, _ := stub.calls()
	assert.Equal(t, 5, pairCalls)
}

func TestGeneratePairs_NoMales(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
		{ID: "f2", Name: "Luna", Species: "Cattle", Sex: animals.SexFemale},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)

	// cero llamadas al predictor: no se gastan calls externas
	pairCalls, _ := stub.calls()
	assert.Equal(t, 0, pairCalls)
}

func TestGeneratePairs_FallbackOnPredictorFailure(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(12)},
		{ID: "m2", Name: "Toro", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(15)},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale, HornSize: hp(13)},
	}}
	stub := newStubPredictor()
	stub.failPairs = true
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// el fallback nunca descarta candidatos en silencio
	for _, rec := range recs {
		assert.Equal(t, 0.7, rec.Prediction.Confidence)
		assert.NotEmpty(t, rec.Prediction.Explanation)
		assert.NotEmpty(t, rec.Prediction.PredictedTraits.BreedStrength)
	}
}

func TestGeneratePairs_FallbackOnMalformedResponse(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
	}}
	stub := newStubPredictor()
	stub.pairResult.Explanation = "" // viola el contrato de forma
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0.7, recs[0].Prediction.Confidence)
	assert.NotEmpty(t, recs[0].Prediction.Explanation)
}

func TestGeneratePairs_ConfidenceClamped(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
	}}
	stub := newStubPredictor()
	stub.pairResult.Confidence = 3.2 // el upstream devuelve cualquier cosa
	svc := newTestService(repo, nil, stub)

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1.0, recs[0].Prediction.Confidence)
}

func TestGeneratePairs_HistoryPersisted(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
	}}
	history := &testHistoryRepo{}
	svc := newTestService(repo, history, newStubPredictor())

	recs, err := svc.GeneratePairRecommendations(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.Len(t, history.saved, 1)
	assert.Equal(t, "m1", history.saved[0].Parent1ID)
	assert.Equal(t, "f1", history.saved[0].Parent2ID)
	assert.Equal(t, recs[0].CompatibilityScore, history.saved[0].CompatibilityScore)
	assert.NotEmpty(t, history.saved[0].ID)
}

// -------------------------
// Modo rebaño
// -------------------------

func TestAnalyzeHerd_RelatedAnimalsWarnButStay(t *testing.T) {
	// Escenario: M2 es hijo de M1. La advertencia sale, pero M2 sigue
	// dentro del rebaño analizado.
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale},
		{ID: "m2", Name: "Hijo", Species: "Cattle", Sex: animals.SexMale, SireID: "m1"},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.AnalyzeHerd(context.Background(), []string{"m1", "f1", "m2"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Len(t, rec.HerdAnimals, 3)
	assert.True(t, rec.Analysis.HasRelatedAnimals)
	require.Len(t, rec.Analysis.RelatedPairs, 1)
	assert.Equal(t, "Bruno", rec.Analysis.RelatedPairs[0].Animal1)
	assert.Equal(t, "Hijo", rec.Analysis.RelatedPairs[0].Animal2)
	assert.Equal(t, RelationParentChild, rec.Analysis.RelatedPairs[0].Relationship)
	assert.Contains(t, rec.Analysis.RelatedAnimalsWarning, "Bruno")
	assert.Contains(t, rec.Analysis.RelatedAnimalsWarning, "Hijo")
	assert.Contains(t, rec.Analysis.RelatedAnimalsWarning, RelationParentChild)

	assert.GreaterOrEqual(t, rec.HerdScore, 0.0)
	assert.LessOrEqual(t, rec.HerdScore, 100.0)
}

func TestAnalyzeHerd_NoFemales(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "m2", Name: "Toro", Species: "Cattle", Sex: animals.SexMale},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.AnalyzeHerd(context.Background(), []string{"m1", "m2"})
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, herdCalls := stub.calls()
	assert.Equal(t, 0, herdCalls)
}

func TestAnalyzeHerd_UnknownIDsIgnored(t *testing.T) {
	// IDs que no resuelven a un registro se ignoran; si queda menos
	// de 2 animales el resultado es vacío, no un error.
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.AnalyzeHerd(context.Background(), []string{"m1", "ghost"})
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, herdCalls := stub.calls()
	assert.Equal(t, 0, herdCalls)
}

func TestAnalyzeHerd_FallbackOnFailure(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale, HornSize: hp(12)},
		{ID: "f1", Name: "Rosa", Species: "Cattle", Sex: animals.SexFemale, HornSize: hp(14)},
	}}
	stub := newStubPredictor()
	stub.failHerd = true
	svc := newTestService(repo, nil, stub)

	recs, err := svc.AnalyzeHerd(context.Background(), []string{"m1", "f1"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	analysis := recs[0].Analysis
	assert.Equal(t, 0.7, analysis.Confidence)
	assert.NotEmpty(t, analysis.Explanation)
	assert.NotEmpty(t, analysis.BreedingStrategy)
	assert.Equal(t, 1, analysis.PredictedOutcomes.EstimatedOffspringCount)
	require.NotNil(t, analysis.PredictedOutcomes.AverageHornSize)
	assert.Equal(t, 13.0, *analysis.PredictedOutcomes.AverageHornSize)
	assert.Equal(t, "Limited", analysis.PredictedOutcomes.GeneticDiversity)
}

func TestAnalyzeHerd_SuccessPath(t *testing.T) {
	repo := &testAnimalsRepo{items: []animals.Animal{
		{ID: "m1", Name: "Bruno", Species: "Cattle", Sex: animals.SexMale},
		{ID: "f1", Name: "Rosa", Species: "Goat", Sex: animals.SexFemale},
	}}
	stub := newStubPredictor()
	svc := newTestService(repo, nil, stub)

	recs, err := svc.AnalyzeHerd(context.Background(), []string{"m1", "f1"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	analysis := recs[0].Analysis
	assert.Equal(t, "stub herd analysis", analysis.Explanation)
	assert.Equal(t, "stub strategy", analysis.BreedingStrategy)
	assert.Equal(t, 2, analysis.PredictedOutcomes.EstimatedOffspringCount)
	assert.False(t, analysis.HasRelatedAnimals)
	assert.Empty(t, analysis.RelatedAnimalsWarning)
}
