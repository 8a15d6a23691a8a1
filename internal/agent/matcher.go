package agent

import (
	"context"
	"strings"

	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

const maxJobsToSave = 20

// matcherNode searches the job boards, saves the postings idempotently and
// scores them against the user's primary resume. A failing board degrades
// to partial results; a failing LLM degrades to unscored jobs.
func (o *Orchestrator) matcherNode(ctx context.Context, state *State) {
	keywords := paramString(state.Params, "keywords", "python developer")
	location := paramString(state.Params, "location", "")
	remoteOnly := paramBool(state.Params, "remote_only")

	found := o.searchBoards(ctx, state, keywords, location, remoteOnly)
	if len(found) == 0 {
		if state.Error == "" {
			state.Error = "No jobs found"
		}
		return
	}

	var saved []models.Job
	for i, input := range found {
		if i >= maxJobsToSave {
			break
		}
		job, err := o.Jobs.Save(ctx, &found[i])
		if err != nil {
			o.Log.Error("failed to save job", "source", input.Source, "error", err)
			continue
		}
		saved = append(saved, *job)
	}
	state.JobsFound = saved

	outcome := o.LLM.ScoreJobs(ctx, state.ResumeText, saved)
	state.Warnings = append(state.Warnings, outcome.Warnings...)
	if outcome.Status == services.OutcomeFailed {
		// Jobs without scores are still a useful search result.
		return
	}

	for _, m := range outcome.Matches {
		job := saved[m.JobIndex]
		if _, err := o.Matches.Save(ctx, state.UserID, job.ID, m.Score, m.Reasons, m.SkillsMatched, m.SkillsMissing); err != nil {
			o.Log.Error("failed to save match", "job_id", job.ID, "error", err)
			continue
		}
		state.MatchScores = append(state.MatchScores, MatchScore{
			JobID:         job.ID,
			JobTitle:      job.Title,
			Company:       job.Company,
			Score:         m.Score,
			Reasons:       m.Reasons,
			SkillsMatched: m.SkillsMatched,
			SkillsMissing: m.SkillsMissing,
		})
	}
}

func (o *Orchestrator) searchBoards(ctx context.Context, state *State, keywords, location string, remoteOnly bool) []dtos.JobInput {
	var found []dtos.JobInput

	if !remoteOnly {
		adzuna, err := o.Boards.SearchAdzuna(ctx, keywords, location, 10)
		if err != nil {
			o.Log.Warn("adzuna search failed", "error", err)
			state.Warnings = append(state.Warnings, "adzuna search failed: "+err.Error())
		}
		found = append(found, adzuna...)
	}

	var tag string
	if fields := strings.Fields(keywords); len(fields) > 0 {
		tag = strings.ToLower(fields[0])
	}
	remoteok, err := o.Boards.SearchRemoteOK(ctx, tag, 10)
	if err != nil {
		o.Log.Warn("remoteok search failed", "error", err)
		state.Warnings = append(state.Warnings, "remoteok search failed: "+err.Error())
	}
	found = append(found, remoteok...)

	return found
}
