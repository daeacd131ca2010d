package marketing

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPlanUnmarshal_CanonicalShape(t *testing.T) {
	raw := `{
  "strategy": "digital first",
  "target_audience": "students",
  "channels": ["social", "email"],
  "budget": "small",
  "timeline": "3 months",
  "kpis": ["signups"],
  "action_items": ["build landing page"]
}`
	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if plan.Strategy != "digital first" || !reflect.DeepEqual(plan.Channels, []string{"social", "email"}) {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanUnmarshal_CoercesLooseShapes(t *testing.T) {
	raw := `{
  "strategy": ["phase one", "phase two"],
  "target_audience": {"primary": "students", "secondary": "parents"},
  "channels": "word of mouth",
  "budget": 5000,
  "kpis": [{"name": "signups"}, "retention"]
}`
	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if plan.Strategy != "phase one; phase two" {
		t.Fatalf("list strategy not flattened: %q", plan.Strategy)
	}
	if plan.TargetAudience == "" {
		t.Fatalf("object audience not flattened")
	}
	if !reflect.DeepEqual(plan.Channels, []string{"word of mouth"}) {
		t.Fatalf("scalar channels not lifted to list: %v", plan.Channels)
	}
	if plan.Budget != "5000" {
		t.Fatalf("numeric budget not stringified: %q", plan.Budget)
	}
	if !reflect.DeepEqual(plan.KPIs, []string{"signups", "retention"}) {
		t.Fatalf("mixed kpis not coerced: %v", plan.KPIs)
	}
}

func TestPlanEmpty(t *testing.T) {
	var plan Plan
	if !plan.Empty() {
		t.Fatal("zero plan should be empty")
	}
	plan.Strategy = "x"
	if plan.Empty() {
		t.Fatal("plan with a strategy is not empty")
	}
}

func TestFallbackPlan_Bilingual(t *testing.T) {
	ar := FallbackPlan("ar")
	en := FallbackPlan("en")
	if ar.Empty() || en.Empty() {
		t.Fatal("fallback plans must be populated")
	}
	if ar.Strategy == en.Strategy {
		t.Fatal("fallback plans must be localized")
	}
}
