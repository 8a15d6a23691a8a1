package agent

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/models"
)

// trackerNode updates application status or produces pipeline summaries.
// Validation happens here, before any store mutation is attempted.
func (o *Orchestrator) trackerNode(ctx context.Context, state *State) {
	subAction := paramString(state.Params, "sub_action", "update")

	switch subAction {
	case "update":
		applicationID := paramString(state.Params, "application_id", "")
		status := paramString(state.Params, "status", "")
		if applicationID == "" || status == "" {
			state.Error = "application_id and status required"
			return
		}

		var notes *string
		if n := paramString(state.Params, "notes", ""); n != "" {
			notes = &n
		}

		app, err := o.Applications.Transition(ctx, applicationID, models.Status(status), notes)
		if err != nil {
			state.Error = trackerError(err)
			return
		}
		state.ApplicationUpdate = app

	case "summary":
		summary, err := o.Applications.Summarize(ctx, state.UserID)
		if err != nil {
			state.Error = err.Error()
			return
		}
		state.ApplicationUpdate = summary

	case "detail":
		applicationID := paramString(state.Params, "application_id", "")
		if applicationID == "" {
			state.Error = "application_id required"
			return
		}
		detail, err := o.Applications.Detail(ctx, applicationID)
		if err != nil {
			state.Error = trackerError(err)
			return
		}
		state.ApplicationUpdate = detail

	default:
		state.Error = fmt.Sprintf("unknown sub_action: %s", subAction)
	}
}

func trackerError(err error) string {
	if apperrors.IsNotFound(err) {
		return "Application not found"
	}
	return err.Error()
}
