package agent

import "github.com/justsurfingit/job-assistant/internal/models"

// Actions accepted by the orchestrator.
const (
	ActionSearchJobs        = "search_jobs"
	ActionTailorApplication = "tailor_application"
	ActionUpdateStatus      = "update_status"
)

// State is the shared scratchpad passed through the workflow: the requested
// action and params in, accumulated results out.
type State struct {
	Action string
	Params map[string]interface{}

	// User context, loaded before routing.
	UserID     string
	ResumeText string

	// Accumulated results.
	JobsFound         []models.Job
	MatchScores       []MatchScore
	CoverLetter       string
	ResumeSuggestions []string
	ApplicationUpdate interface{}

	Error    string
	Warnings []string
}

// MatchScore is the per-job scoring payload returned to the caller.
type MatchScore struct {
	JobID         string   `json:"job_id"`
	JobTitle      string   `json:"job_title"`
	Company       string   `json:"company"`
	Score         float64  `json:"score"`
	Reasons       []string `json:"reasons,omitempty"`
	SkillsMatched []string `json:"skills_matched,omitempty"`
	SkillsMissing []string `json:"skills_missing,omitempty"`
}

// Result is the payload handed back to the caller unchanged.
type Result struct {
	Action            string        `json:"action"`
	JobsFound         []models.Job  `json:"jobs_found"`
	MatchScores       []MatchScore  `json:"match_scores"`
	CoverLetter       string        `json:"cover_letter"`
	ResumeSuggestions []string      `json:"resume_suggestions"`
	ApplicationUpdate interface{}   `json:"application_update"`
	Error             string        `json:"error"`
	Warnings          []string      `json:"warnings,omitempty"`
}

func paramString(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func paramBool(params map[string]interface{}, key string) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
