package llm

import (
	"fmt"
	"strings"
)

// QA is one answered follow-up question, carried as revision context.
type QA struct {
	Question string
	Answer   string
}

const (
	systemPromptAnalysis = "You are a business idea evaluation engine. Assess the idea and respond with a single JSON object matching the schema. Scores are integers from 0 to 100."
	systemPromptStrict   = "You are a business idea evaluation engine. Respond with JSON only. No markdown, no prose, no code fences. Never omit keys. Output must match the schema exactly."
	systemPromptPlan     = "You are a marketing strategist. Produce a practical marketing plan for the evaluated business idea and respond with a single JSON object matching the schema."
)

const analysisSkeleton = `{
  "overall_score": 0,
  "market_potential": 0,
  "feasibility": 0,
  "risk_level": 0,
  "strengths": ["..."],
  "weaknesses": ["..."],
  "recommendations": ["..."],
  "market_size": "...",
  "target_audience": "...",
  "revenue_model": "...",
  "competitive_advantage": "..."
}`

const deepSkeletonExtra = `,
  "next_steps": {"phase1": ["..."], "phase2": ["..."], "phase3": ["..."], "timeline": "..."},
  "financial_analysis": {"initial_investment": "...", "break_even_period": "...", "projected_revenue_year1": "...", "profit_margin": "...", "funding_recommendation": "..."},
  "competitive_analysis": {"direct_competitors": ["..."], "market_gaps": ["..."], "differentiation_strategy": "...", "competitive_risks": ["..."]}`

const questionsSkeletonExtra = `,
  "interactive_questions": ["...", "...", "..."]`

const planSkeleton = `{
  "strategy": "...",
  "target_audience": "...",
  "channels": ["..."],
  "budget": "...",
  "timeline": "...",
  "kpis": ["..."],
  "action_items": ["..."]
}`

// BuildAnalysisMessages builds the prompt for an initial, basic or deep
// analysis call. strict selects the retry variant: temperature zero is
// set by the caller, this only tightens the wording and repeats the
// schema skeleton.
func BuildAnalysisMessages(ideaText, mode, lang string, strict bool) []Message {
	system := systemPromptAnalysis
	if strict {
		system = systemPromptStrict
	}

	var b strings.Builder
	b.WriteString("Evaluate the following business idea.\n\n")
	b.WriteString("Business idea:\n")
	b.WriteString(ideaText)
	b.WriteString("\n\nReturn a JSON object with this exact shape:\n")
	b.WriteString(schemaForMode(mode))
	b.WriteString("\n\n")
	switch mode {
	case "deep":
		b.WriteString("Provide the extended next_steps, financial_analysis and competitive_analysis blocks with concrete, specific content.\n")
	case "interactive":
		b.WriteString("Additionally provide interactive_questions: exactly three short follow-up questions whose answers would most improve this evaluation.\n")
	}
	b.WriteString(languageInstruction(lang))
	if strict {
		b.WriteString("\nOutput the JSON object only. Do not add any text before or after it.")
	}

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: b.String()},
	}
}

// BuildRevisionMessages builds the interactive_update prompt: the prior
// result plus the full answer history, asking for a complete
// replacement analysis rather than a diff.
func BuildRevisionMessages(ideaText, question, answer string, history []QA, prevResult []byte, lang string, strict bool) []Message {
	system := systemPromptAnalysis
	if strict {
		system = systemPromptStrict
	}

	var b strings.Builder
	b.WriteString("Revise a prior evaluation of a business idea using new information from the founder.\n\n")
	b.WriteString("Business idea:\n")
	b.WriteString(ideaText)
	b.WriteString("\n\nPrior evaluation (JSON):\n")
	b.Write(prevResult)
	if len(history) > 0 {
		b.WriteString("\n\nAll follow-up answers so far:\n")
		for i, qa := range history {
			fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, qa.Question, qa.Answer)
		}
	}
	fmt.Fprintf(&b, "\nLatest question: %s\nLatest answer: %s\n", question, answer)
	b.WriteString("\nReconsider the whole evaluation in light of the answers and return a complete replacement JSON object with this exact shape. Carry forward everything that still holds; do not return a partial object:\n")
	b.WriteString(analysisSkeleton)
	b.WriteString("\n\n")
	b.WriteString(languageInstruction(lang))
	if strict {
		b.WriteString("\nOutput the JSON object only. Do not add any text before or after it.")
	}

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: b.String()},
	}
}

// BuildMarketingMessages builds the marketing plan prompt from a
// completed analysis.
func BuildMarketingMessages(ideaText string, result []byte, lang string) []Message {
	var b strings.Builder
	b.WriteString("Create a marketing plan for the following business idea.\n\n")
	b.WriteString("Business idea:\n")
	b.WriteString(ideaText)
	if len(result) > 0 {
		b.WriteString("\n\nCompleted evaluation (JSON):\n")
		b.Write(result)
	}
	b.WriteString("\n\nReturn a JSON object with this exact shape:\n")
	b.WriteString(planSkeleton)
	b.WriteString("\n\n")
	b.WriteString(languageInstruction(lang))

	return []Message{
		{Role: RoleSystem, Content: systemPromptPlan},
		{Role: RoleUser, Content: b.String()},
	}
}

func schemaForMode(mode string) string {
	skeleton := analysisSkeleton
	switch mode {
	case "deep":
		skeleton = strings.TrimSuffix(skeleton, "\n}") + deepSkeletonExtra + "\n}"
	case "interactive":
		skeleton = strings.TrimSuffix(skeleton, "\n}") + questionsSkeletonExtra + "\n}"
	}
	return skeleton
}

func languageInstruction(lang string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "en") {
		return "Write all textual field values in English."
	}
	return "Write all textual field values in Arabic. Keep the JSON keys in English exactly as shown."
}
