package gemini

import (
	"context"
	"fmt"
	"math"
	"strings"

	"livestock-breeding/internal/ports/prediction"
)

// Predictor implementa prediction.Predictor contra Gemini.
// Solo parsea y mapea: la validación de campos requeridos y el
// fallback viven en el motor de cruza.
type Predictor struct {
	client *Client
}

func NewPredictor(client *Client) *Predictor {
	return &Predictor{client: client}
}

func NewPredictorFromEnv() *Predictor {
	return NewPredictor(NewClientFromEnv())
}

const pairSystemPrompt = `You are an expert animal breeding consultant.
Analyze the proposed breeding pair and predict offspring traits focusing on:
1. Trait consistency between the parents
2. Horn/antler size potential of the offspring
3. Health considerations from both parents
4. Overall breed strength of the expected offspring

Respond with JSON in this exact format:
{
  "predictedTraits": {
    "estimatedHornSize": number | null,
    "breedStrength": string
  },
  "confidence": number,
  "explanation": string
}`

const herdSystemPrompt = `You are an expert animal breeding consultant specializing in herd management and breeding strategies.
Analyze the entire herd and provide comprehensive breeding recommendations focusing on:
1. Genetic diversity and trait strength across the herd
2. Estimated offspring production potential
3. Horn/antler size trends and improvement potential
4. Overall herd quality and breeding strategy
5. Health considerations across the herd

Respond with JSON in this exact format:
{
  "predictedOutcomes": {
    "estimatedOffspringCount": number,
    "averageHornSize": number | null,
    "traitStrength": string,
    "geneticDiversity": string
  },
  "confidence": number,
  "explanation": string,
  "breedingStrategy": string
}`

type pairWire struct {
	PredictedTraits struct {
		EstimatedHornSize *float64 `json:"estimatedHornSize"`
		BreedStrength     string   `json:"breedStrength"`
	} `json:"predictedTraits"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

type herdWire struct {
	PredictedOutcomes struct {
		EstimatedOffspringCount float64  `json:"estimatedOffspringCount"`
		AverageHornSize         *float64 `json:"averageHornSize"`
		TraitStrength           string   `json:"traitStrength"`
		GeneticDiversity        string   `json:"geneticDiversity"`
	} `json:"predictedOutcomes"`
	Confidence       float64 `json:"confidence"`
	Explanation      string  `json:"explanation"`
	BreedingStrategy string  `json:"breedingStrategy"`
}

func (p *Predictor) PredictPair(ctx context.Context, in prediction.PairRequest) (prediction.PairResult, error) {
	userPrompt := fmt.Sprintf(`Analyze this breeding pair:

Parent 1:
%s
Parent 2:
%s
Local compatibility score: %.0f out of 100.

Provide:
1. Estimated horn size for the offspring (or null if not applicable)
2. Expected breed strength (e.g., "Excellent", "Strong", "Good", "Fair")
3. Confidence level (0.0 to 1.0)
4. A detailed explanation of the pairing's strengths, risks, and expected offspring quality`,
		describeAnimal(in.Parent1), describeAnimal(in.Parent2), in.CompatibilityScore)

	var out pairWire
	if err := p.client.generateJSON(ctx, pairSystemPrompt, userPrompt, pairSchema(), &out); err != nil {
		return prediction.PairResult{}, err
	}

	res := prediction.PairResult{
		Confidence:  out.Confidence,
		Explanation: out.Explanation,
	}
	res.PredictedTraits.EstimatedHornSize = out.PredictedTraits.EstimatedHornSize
	res.PredictedTraits.BreedStrength = out.PredictedTraits.BreedStrength
	return res, nil
}

func (p *Predictor) AnalyzeHerd(ctx context.Context, in prediction.HerdRequest) (prediction.HerdResult, error) {
	var males, females int
	for _, a := range in.Animals {
		switch a.Sex {
		case "Male":
			males++
		case "Female":
			females++
		}
	}

	descriptions := make([]string, 0, len(in.Animals))
	for i, a := range in.Animals {
		descriptions = append(descriptions, fmt.Sprintf("Animal %d (%s):\n%s", i+1, a.Sex, describeAnimal(a)))
	}

	lineageWarning := ""
	if in.HasRelatedAnimals {
		lines := make([]string, 0, len(in.RelatedPairs))
		for _, rp := range in.RelatedPairs {
			lines = append(lines, fmt.Sprintf("- %s and %s (%s)", rp.Animal1, rp.Animal2, rp.Relationship))
		}
		lineageWarning = fmt.Sprintf("\n\nWARNING: This herd contains related animals that should not breed together:\n%s\n\nYour breeding strategy MUST address separating these related animals to avoid inbreeding.",
			strings.Join(lines, "\n"))
	}

	inbreedingNote := ""
	if in.HasRelatedAnimals {
		inbreedingNote = " while avoiding inbreeding between related animals"
	}

	userPrompt := fmt.Sprintf(`Analyze this breeding herd:

Total Animals: %d
Males: %d
Females: %d

%s%s

Provide:
1. Estimated offspring count this herd could produce in one breeding season
2. Genetic diversity assessment (e.g., "Excellent", "Good", "Fair", "Limited")
3. Overall trait strength (e.g., "Excellent", "Strong", "Good", "Fair")
4. Average horn size prediction for offspring (or null if not applicable)
5. Confidence level (0.0 to 1.0)
6. A detailed explanation of the herd's breeding potential, genetic diversity, and health considerations
7. A recommended breeding strategy for this herd to optimize offspring quality%s`,
		len(in.Animals), males, females, strings.Join(descriptions, "\n\n"), lineageWarning, inbreedingNote)

	var out herdWire
	if err := p.client.generateJSON(ctx, herdSystemPrompt, userPrompt, herdSchema(), &out); err != nil {
		return prediction.HerdResult{}, err
	}

	res := prediction.HerdResult{
		Confidence:       out.Confidence,
		Explanation:      out.Explanation,
		BreedingStrategy: out.BreedingStrategy,
	}
	res.PredictedOutcomes.EstimatedOffspringCount = int(math.Round(out.PredictedOutcomes.EstimatedOffspringCount))
	res.PredictedOutcomes.AverageHornSize = out.PredictedOutcomes.AverageHornSize
	res.PredictedOutcomes.TraitStrength = out.PredictedOutcomes.TraitStrength
	res.PredictedOutcomes.GeneticDiversity = out.PredictedOutcomes.GeneticDiversity
	return res, nil
}

func describeAnimal(a prediction.ParentSnapshot) string {
	horn := "N/A"
	if a.HornSize != nil {
		horn = fmt.Sprintf("%.2f", *a.HornSize)
	}
	health := a.HealthNotes
	if strings.TrimSpace(health) == "" {
		health = "No notes"
	}
	return fmt.Sprintf("- Name: %s\n- Species: %s\n- Horn Size: %s\n- Health Status: %s",
		a.Name, a.Species, horn, health)
}

func pairSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"predictedTraits": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"estimatedHornSize": map[string]any{"type": "number", "nullable": true},
					"breedStrength":     map[string]any{"type": "string"},
				},
				"required": []string{"breedStrength"},
			},
			"confidence":  map[string]any{"type": "number"},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []string{"predictedTraits", "confidence", "explanation"},
	}
}

func herdSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"predictedOutcomes": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"estimatedOffspringCount": map[string]any{"type": "number"},
					"averageHornSize":         map[string]any{"type": "number", "nullable": true},
					"traitStrength":           map[string]any{"type": "string"},
					"geneticDiversity":        map[string]any{"type": "string"},
				},
				"required": []string{"estimatedOffspringCount", "traitStrength", "geneticDiversity"},
			},
			"confidence":       map[string]any{"type": "number"},
			"explanation":      map[string]any{"type": "string"},
			"breedingStrategy": map[string]any{"type": "string"},
		},
		"required": []string{"predictedOutcomes", "confidence", "explanation", "breedingStrategy"},
	}
}
