package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-assistant/internal/config"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// OutcomeStatus distinguishes a full success from a degraded fallback and a
// hard failure. LLM problems never abort the surrounding action; they show
// up here instead.
type OutcomeStatus string

const (
	OutcomeOK       OutcomeStatus = "ok"
	OutcomeDegraded OutcomeStatus = "degraded"
	OutcomeFailed   OutcomeStatus = "failed"
)

// MatchResult is one scored job from the matcher prompt. JobIndex refers to
// the position in the job list that was sent to the model.
type MatchResult struct {
	JobIndex      int      `json:"job_index"`
	Score         float64  `json:"score"`
	Reasons       []string `json:"reasons"`
	SkillsMatched []string `json:"skills_matched"`
	SkillsMissing []string `json:"skills_missing"`
}

type MatchOutcome struct {
	Status   OutcomeStatus `json:"status"`
	Matches  []MatchResult `json:"matches"`
	Warnings []string      `json:"warnings,omitempty"`
}

type TailorOutcome struct {
	Status      OutcomeStatus `json:"status"`
	CoverLetter string        `json:"cover_letter"`
	Suggestions []string      `json:"suggestions"`
	Warnings    []string      `json:"warnings,omitempty"`
}

const matcherPrompt = `You are a job matching specialist. Given a user's resume/skills and a list of job postings,
score each job from 0.0 to 1.0 based on:
1. Skill overlap (weight: 40%%)
2. Experience level fit (weight: 25%%)
3. Location/remote compatibility (weight: 20%%)
4. Role title relevance (weight: 15%%)

For each job, respond with JSON only, no markdown code blocks:
{
  "matches": [
    {
      "job_index": 0,
      "score": 0.85,
      "reasons": ["Strong Python match", "Remote compatible"],
      "skills_matched": ["Python", "FastAPI"],
      "skills_missing": ["Kubernetes"]
    }
  ]
}

Be strict: only score >0.7 if genuine strong match. Be honest about gaps.

Resume:
%s

Jobs:
%s
`

const tailorPrompt = `You are an expert career coach and professional writer.
Given a resume and a job description, generate:

1. A tailored cover letter (3 paragraphs, professional but authentic)
2. 3-5 specific suggestions for resume bullet improvements

Cover letter guidelines:
- Opening: Show genuine interest, mention specific company/role details
- Middle: Map 2-3 key experiences directly to job requirements
- Closing: Express enthusiasm, mention next steps
- Keep it under 400 words
- No generic filler

Resume suggestions guidelines:
- Reference specific bullets from the resume
- Show how to reword them to better match the job requirements
- Include relevant keywords from the job description
- Keep it truthful, never suggest adding skills the person doesn't have

Respond with the cover letter first, then a section "RESUME SUGGESTIONS:" with numbered suggestions.

RESUME:
%s

JOB: %s at %s

JOB DESCRIPTION:
%s
`

const (
	maxResumeChars      = 4000
	maxDescriptionChars = 3000
	maxJobsToScore      = 10
)

type LLMService struct {
	Client llms.Model
	Log    *logger.Logger
}

// NewLLMService builds the Gemini client once at startup. A missing API key
// is not fatal: the service stays usable and every call degrades to its
// fallback output.
func NewLLMService(ctx context.Context, cfg *config.Config, log *logger.Logger) *LLMService {
	svcLog := log.With("service", "llm")

	if cfg.GeminiAPIKey == "" {
		svcLog.Warn("GEMINI_API_KEY not set, LLM features run in fallback mode")
		return &LLMService{Log: svcLog}
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.GeminiModel),
	)
	if err != nil {
		svcLog.Error("failed to create Gemini client, running in fallback mode", "error", err)
		return &LLMService{Log: svcLog}
	}

	return &LLMService{Client: llm, Log: svcLog}
}

// ScoreJobs asks the model to score each job against the resume. Without a
// client or resume text it degrades to an unscored result; a model or parse
// failure is reported as failed with the reason in Warnings.
func (s *LLMService) ScoreJobs(ctx context.Context, resumeText string, jobs []models.Job) MatchOutcome {
	if s.Client == nil {
		return MatchOutcome{Status: OutcomeDegraded, Warnings: []string{"LLM client not configured"}}
	}
	if strings.TrimSpace(resumeText) == "" {
		return MatchOutcome{Status: OutcomeDegraded, Warnings: []string{"no resume text to score against"}}
	}
	if len(jobs) == 0 {
		return MatchOutcome{Status: OutcomeOK}
	}
	if len(jobs) > maxJobsToScore {
		jobs = jobs[:maxJobsToScore]
	}

	var lines []string
	for i, job := range jobs {
		location := "Unknown"
		if job.Location != nil {
			location = *job.Location
		}
		description := ""
		if job.Description != nil {
			description = truncate(*job.Description, 200)
		}
		lines = append(lines, fmt.Sprintf("[%d] %s at %s — %s — %s",
			i, job.Title, job.Company, location, description))
	}

	prompt := fmt.Sprintf(matcherPrompt, truncate(resumeText, maxResumeChars), strings.Join(lines, "\n"))
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		s.Log.Error("match scoring failed", "error", err)
		return MatchOutcome{Status: OutcomeFailed, Warnings: []string{"LLM scoring failed: " + err.Error()}}
	}

	var parsed struct {
		Matches []MatchResult `json:"matches"`
	}
	if err := unmarshalLoose(resp, &parsed); err != nil {
		s.Log.Error("match response parse failed", "error", err)
		return MatchOutcome{Status: OutcomeFailed, Warnings: []string{"could not parse LLM response"}}
	}

	matches := make([]MatchResult, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		if m.JobIndex < 0 || m.JobIndex >= len(jobs) {
			continue
		}
		m.Score = clampScore(m.Score)
		matches = append(matches, m)
	}
	return MatchOutcome{Status: OutcomeOK, Matches: matches}
}

// Tailor generates a cover letter and resume suggestions for the job. When
// no client is configured it falls back to a plain template so the caller
// always gets a usable letter.
func (s *LLMService) Tailor(ctx context.Context, resumeText string, job *models.Job) TailorOutcome {
	if s.Client == nil {
		return TailorOutcome{
			Status:      OutcomeDegraded,
			CoverLetter: templateCoverLetter(job),
			Suggestions: []string{"Set GEMINI_API_KEY for personalized suggestions"},
			Warnings:    []string{"LLM client not configured, returned template letter"},
		}
	}

	description := "No description available"
	if job.Description != nil && *job.Description != "" {
		description = truncate(*job.Description, maxDescriptionChars)
	}

	prompt := fmt.Sprintf(tailorPrompt,
		truncate(resumeText, maxResumeChars), job.Title, job.Company, description)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		s.Log.Error("tailoring failed, returning template", "error", err)
		return TailorOutcome{
			Status:      OutcomeDegraded,
			CoverLetter: templateCoverLetter(job),
			Warnings:    []string{"LLM generation failed: " + err.Error()},
		}
	}

	coverLetter, suggestions := splitTailorResponse(resp)
	return TailorOutcome{Status: OutcomeOK, CoverLetter: coverLetter, Suggestions: suggestions}
}

func templateCoverLetter(job *models.Job) string {
	return fmt.Sprintf(`Dear Hiring Manager,

I am writing to express my strong interest in the %s position at %s.

Based on my experience, I believe I would be an excellent fit for this role.

I look forward to discussing how my background aligns with your needs.

Best regards`, job.Title, job.Company)
}

func splitTailorResponse(text string) (string, []string) {
	const marker = "RESUME SUGGESTIONS:"
	if !strings.Contains(text, marker) {
		return strings.TrimSpace(text), nil
	}
	parts := strings.SplitN(text, marker, 2)
	coverLetter := strings.TrimSpace(parts[0])

	var suggestions []string
	for _, line := range strings.Split(parts[1], "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line[0] >= '0' && line[0] <= '9' {
			suggestions = append(suggestions, line)
		}
	}
	return coverLetter, suggestions
}

// unmarshalLoose extracts the outermost JSON object before decoding; the
// model sometimes wraps its answer in prose or code fences.
func unmarshalLoose(text string, v interface{}) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal([]byte(text[start:end+1]), v)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
