package analysis

import (
	"encoding/json"
	"fmt"
)

// Required response fields. The backend is permissive on score
// magnitude (clamped, never rejected) but strict on shape: a response
// missing any of these is invalid.
var requiredFields = []string{"overall_score", "strengths", "recommendations"}

// ParseResult decodes a backend response into a Result. The whole body
// must be a JSON object; tolerant substring extraction is reserved for
// the marketing path.
func ParseResult(raw []byte) (Result, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Result{}, fmt.Errorf("decode analysis response: %w", err)
	}
	for _, field := range requiredFields {
		val, ok := probe[field]
		if !ok || string(val) == "null" {
			return Result{}, fmt.Errorf("analysis response missing %q", field)
		}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("decode analysis response: %w", err)
	}
	if len(result.Strengths) == 0 {
		return Result{}, fmt.Errorf("analysis response missing %q", "strengths")
	}
	if len(result.Recommendations) == 0 {
		return Result{}, fmt.Errorf("analysis response missing %q", "recommendations")
	}

	result.OverallScore = clampScore(result.OverallScore)
	result.MarketPotential = clampScore(result.MarketPotential)
	result.Feasibility = clampScore(result.Feasibility)
	result.RiskLevel = clampScore(result.RiskLevel)
	return result, nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
