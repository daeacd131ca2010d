package analysis

import (
	"strings"
	"testing"
)

func TestParseResult_Valid(t *testing.T) {
	raw := `{
  "overall_score": 72,
  "market_potential": 65,
  "feasibility": 80,
  "risk_level": 30,
  "strengths": ["low startup cost"],
  "weaknesses": ["crowded market"],
  "recommendations": ["start with one city"]
}`
	result, err := ParseResult([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallScore != 72 || len(result.Strengths) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestParseResult_MissingRequiredField(t *testing.T) {
	raw := `{"overall_score": 50, "strengths": ["s"]}`
	if _, err := ParseResult([]byte(raw)); err == nil {
		t.Fatal("expected error for missing recommendations")
	} else if !strings.Contains(err.Error(), "recommendations") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseResult_NullRequiredField(t *testing.T) {
	raw := `{"overall_score": null, "strengths": ["s"], "recommendations": ["r"]}`
	if _, err := ParseResult([]byte(raw)); err == nil {
		t.Fatal("expected error for null overall_score")
	}
}

func TestParseResult_EmptyRequiredList(t *testing.T) {
	raw := `{"overall_score": 50, "strengths": [], "recommendations": ["r"]}`
	if _, err := ParseResult([]byte(raw)); err == nil {
		t.Fatal("expected error for empty strengths")
	}
}

func TestParseResult_NotAnObject(t *testing.T) {
	if _, err := ParseResult([]byte(`"just a string"`)); err == nil {
		t.Fatal("expected error for non-object response")
	}
	if _, err := ParseResult([]byte("Here is your analysis: {}")); err == nil {
		t.Fatal("expected error for prose-wrapped response")
	}
}

func TestParseResult_ClampsScores(t *testing.T) {
	raw := `{
  "overall_score": 150,
  "market_potential": -20,
  "feasibility": 100,
  "risk_level": 101,
  "strengths": ["s"],
  "recommendations": ["r"]
}`
	result, err := ParseResult([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallScore != 100 {
		t.Fatalf("expected overall_score clamped to 100, got %d", result.OverallScore)
	}
	if result.MarketPotential != 0 {
		t.Fatalf("expected market_potential clamped to 0, got %d", result.MarketPotential)
	}
	if result.Feasibility != 100 || result.RiskLevel != 100 {
		t.Fatalf("unexpected clamping: %+v", result)
	}
}
