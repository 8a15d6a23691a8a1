package agent

import (
	"context"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// tailorNode generates a cover letter and resume suggestions for an
// application, then stores the letter as a new document version.
func (o *Orchestrator) tailorNode(ctx context.Context, state *State) {
	applicationID := paramString(state.Params, "application_id", "")
	if applicationID == "" {
		state.Error = "application_id required"
		return
	}

	detail, err := o.Applications.Detail(ctx, applicationID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			state.Error = "Application not found"
		} else {
			state.Error = err.Error()
		}
		return
	}

	job, err := o.Jobs.Get(ctx, detail.JobID)
	if err != nil {
		state.Error = "Job not found for application"
		return
	}

	if state.ResumeText == "" {
		state.Error = "No resume found"
		return
	}

	outcome := o.LLM.Tailor(ctx, state.ResumeText, job)
	state.Warnings = append(state.Warnings, outcome.Warnings...)
	state.CoverLetter = outcome.CoverLetter
	state.ResumeSuggestions = outcome.Suggestions

	if _, err := o.Documents.Save(ctx, applicationID, models.DocTypeCoverLetter, outcome.CoverLetter); err != nil {
		o.Log.Error("failed to save cover letter", "application_id", applicationID, "error", err)
		state.Warnings = append(state.Warnings, "cover letter was generated but not saved: "+err.Error())
	}
}
