package analysis

import (
	"strings"
	"time"
)

// Mode selects the prompt strategy and whether follow-up questions are
// requested.
type Mode string

const (
	ModeBasic             Mode = "basic"
	ModeInteractive       Mode = "interactive"
	ModeDeep              Mode = "deep"
	ModeInteractiveUpdate Mode = "interactive_update"
)

// ParseMode normalizes a mode string; unknown values fall back to basic.
func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeInteractive:
		return ModeInteractive
	case ModeDeep:
		return ModeDeep
	case ModeInteractiveUpdate:
		return ModeInteractiveUpdate
	default:
		return ModeBasic
	}
}

// Request is one idea submission. Immutable; consumed once by the
// orchestrator.
type Request struct {
	IdeaText string
	Mode     Mode
	UserID   string
	Language string
}

// Result is the canonical evaluation entity, matching the AI backend's
// JSON contract. Revisions replace it wholesale; it is never mutated.
type Result struct {
	OverallScore         int      `json:"overall_score"`
	MarketPotential      int      `json:"market_potential"`
	Feasibility          int      `json:"feasibility"`
	RiskLevel            int      `json:"risk_level"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	Recommendations      []string `json:"recommendations"`
	MarketSize           string   `json:"market_size,omitempty"`
	TargetAudience       string   `json:"target_audience,omitempty"`
	RevenueModel         string   `json:"revenue_model,omitempty"`
	CompetitiveAdvantage string   `json:"competitive_advantage,omitempty"`

	NextSteps           *NextSteps           `json:"next_steps,omitempty"`
	FinancialAnalysis   *FinancialAnalysis   `json:"financial_analysis,omitempty"`
	CompetitiveAnalysis *CompetitiveAnalysis `json:"competitive_analysis,omitempty"`

	// InteractiveQuestions is populated only in interactive mode.
	InteractiveQuestions []string `json:"interactive_questions,omitempty"`
}

// NextSteps is the three-phase execution outline of a deep analysis.
type NextSteps struct {
	Phase1   []string `json:"phase1,omitempty"`
	Phase2   []string `json:"phase2,omitempty"`
	Phase3   []string `json:"phase3,omitempty"`
	Timeline string   `json:"timeline,omitempty"`
}

type FinancialAnalysis struct {
	InitialInvestment     string `json:"initial_investment,omitempty"`
	BreakEvenPeriod       string `json:"break_even_period,omitempty"`
	ProjectedRevenueYear1 string `json:"projected_revenue_year1,omitempty"`
	ProfitMargin          string `json:"profit_margin,omitempty"`
	FundingRecommendation string `json:"funding_recommendation,omitempty"`
}

type CompetitiveAnalysis struct {
	DirectCompetitors       []string `json:"direct_competitors,omitempty"`
	MarketGaps              []string `json:"market_gaps,omitempty"`
	DifferentiationStrategy string   `json:"differentiation_strategy,omitempty"`
	CompetitiveRisks        []string `json:"competitive_risks,omitempty"`
}

// Record is a persisted analysis: the terminal Result plus submission
// metadata, kept for the history view and export.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IdeaText  string    `json:"ideaText"`
	Mode      Mode      `json:"mode"`
	Language  string    `json:"language"`
	Model     string    `json:"model"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`
}

// NormalizeLanguage maps a language tag to one of the two supported
// languages. Arabic is the product default.
func NormalizeLanguage(raw string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "en") {
		return "en"
	}
	return "ar"
}
