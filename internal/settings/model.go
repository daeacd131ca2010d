package settings

import "time"

// Settings holds the admin-managed application settings: the AI backend
// credential and model, and the daily usage limits.
type Settings struct {
	AIAPIKey           string    `json:"-"`
	AIModel            string    `json:"aiModel"`
	DailyAnalysisLimit int       `json:"dailyAnalysisLimit"`
	DailyPlanLimit     int       `json:"dailyMarketingPlanLimit"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

const (
	DefaultDailyAnalysisLimit = 5
	DefaultDailyPlanLimit     = 2
)

// Storage keys for the key/value settings rows.
const (
	keyAIAPIKey           = "ai_api_key"
	keyAIModel            = "ai_model"
	keyDailyAnalysisLimit = "daily_analysis_limit"
	keyDailyPlanLimit     = "daily_marketing_plan_limit"
)

func withDefaults(s Settings) Settings {
	if s.DailyAnalysisLimit <= 0 {
		s.DailyAnalysisLimit = DefaultDailyAnalysisLimit
	}
	if s.DailyPlanLimit <= 0 {
		s.DailyPlanLimit = DefaultDailyPlanLimit
	}
	return s
}
