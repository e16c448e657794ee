package insight

import (
	"encoding/json"
	"fmt"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/llm"
	"elmora-backend/utilities"
)

// Insights is what every caller receives: non-empty lists of short
// observations and suggested next steps.
type Insights struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Completer is the slice of the LLM client the generator needs.
type Completer interface {
	HasCredential() bool
	Complete(prompt string) (string, error)
}

// Generator produces personalised insights for a scored assessment. It
// prefers the generative-AI path and demotes silently to the static tier
// library, so Generate never fails.
type Generator struct {
	client Completer
}

// NewGenerator wires the generator to a completion client. A nil client
// means fallback-only operation.
func NewGenerator(client Completer) *Generator {
	return &Generator{client: client}
}

// Generate returns insights and recommendations for the given score and
// category. A single AI attempt; any transport or parse failure selects the
// fallback library for the same score band. The caller is never exposed to
// the AI error.
func (g *Generator) Generate(score int, category assessment.Category, name, bio string) Insights {
	if g.client == nil || !g.client.HasCredential() {
		return FallbackFor(score)
	}

	prompt := buildPrompt(score, category, name, bio)
	completion, err := g.client.Complete(prompt)
	if err != nil {
		utilities.Warn("insight generation fell back to static tiers: %v", err)
		return FallbackFor(score)
	}

	var parsed Insights
	if err := json.Unmarshal([]byte(llm.ExtractJSON(completion)), &parsed); err != nil {
		utilities.Warn("insight response was not valid JSON, using static tiers: %v", err)
		return FallbackFor(score)
	}
	if len(parsed.Insights) == 0 || len(parsed.Recommendations) == 0 {
		utilities.Warn("insight response was missing lists, using static tiers")
		return FallbackFor(score)
	}
	return parsed
}

func buildPrompt(score int, category assessment.Category, name, bio string) string {
	return fmt.Sprintf(
		"You are a supportive well-being coach. A user named %q completed a "+
			"well-being assessment, scoring %d out of %d, which places them in the "+
			"%q band. Their self-description: %q.\n"+
			"Respond with a JSON object only, no prose, of the form "+
			`{"insights": [...], "recommendations": [...]} `+
			"with 3 to 5 short, warm, specific strings in each list.",
		name, score, assessment.MaxScore(), category.String(), bio,
	)
}
