package marketing

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Plan is the normalized marketing plan. The AI output is coerced into
// this shape field by field; see UnmarshalJSON.
type Plan struct {
	Strategy       string   `json:"strategy"`
	TargetAudience string   `json:"target_audience"`
	Channels       []string `json:"channels"`
	Budget         string   `json:"budget"`
	Timeline       string   `json:"timeline"`
	KPIs           []string `json:"kpis"`
	ActionItems    []string `json:"action_items"`
}

// Record is a stored marketing plan, at most one per analysis.
// Regeneration replaces the previous plan.
type Record struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	AnalysisID string    `json:"analysisId"`
	Language   string    `json:"language"`
	Model      string    `json:"model,omitempty"`
	Fallback   bool      `json:"fallback"`
	Plan       Plan      `json:"plan"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts the loose shapes models actually produce:
// strings where lists are expected, lists or nested objects where
// strings are expected, numbers for budgets. Anything present is
// coerced rather than rejected.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Strategy = coerceString(raw["strategy"])
	p.TargetAudience = coerceString(raw["target_audience"])
	p.Channels = coerceStrings(raw["channels"])
	p.Budget = coerceString(raw["budget"])
	p.Timeline = coerceString(raw["timeline"])
	p.KPIs = coerceStrings(raw["kpis"])
	p.ActionItems = coerceStrings(raw["action_items"])
	return nil
}

// Empty reports whether nothing usable was extracted.
func (p Plan) Empty() bool {
	return p.Strategy == "" && p.TargetAudience == "" && len(p.Channels) == 0 &&
		p.Budget == "" && p.Timeline == "" && len(p.KPIs) == 0 && len(p.ActionItems) == 0
}

func coerceString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if v := coerceString(item); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, "; ")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		parts := make([]string, 0, len(obj))
		for _, v := range obj {
			if s := coerceString(v); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func coerceStrings(data json.RawMessage) []string {
	if len(data) == 0 {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if v := coerceString(item); v != "" {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	if v := coerceString(data); v != "" {
		return []string{v}
	}
	return nil
}
