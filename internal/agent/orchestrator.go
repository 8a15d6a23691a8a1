// Package agent wires the fixed multi-step workflow: a supervisor routing
// table dispatches an action to one specialist node (matcher, tailor or
// tracker), the node mutates the store through the services and writes its
// results into the shared state, and the orchestrator returns the payload
// unchanged to the caller.
package agent

import (
	"context"
	"fmt"

	"github.com/justsurfingit/job-assistant/internal/boards"
	"github.com/justsurfingit/job-assistant/internal/logger"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type nodeFunc func(ctx context.Context, state *State)

type Orchestrator struct {
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Documents    *services.DocumentService
	Matches      *services.MatchService
	Resumes      *services.ResumeService
	LLM          *services.LLMService
	Boards       *boards.Client
	User         *models.User
	Log          *logger.Logger

	routing map[string]nodeFunc
}

func NewOrchestrator(
	jobs *services.JobService,
	applications *services.ApplicationService,
	documents *services.DocumentService,
	matches *services.MatchService,
	resumes *services.ResumeService,
	llm *services.LLMService,
	boardClient *boards.Client,
	user *models.User,
	log *logger.Logger,
) *Orchestrator {
	o := &Orchestrator{
		Jobs:         jobs,
		Applications: applications,
		Documents:    documents,
		Matches:      matches,
		Resumes:      resumes,
		LLM:          llm,
		Boards:       boardClient,
		User:         user,
		Log:          log.With("component", "orchestrator"),
	}
	// Supervisor routing table: action name -> specialist node.
	o.routing = map[string]nodeFunc{
		ActionSearchJobs:        o.matcherNode,
		ActionTailorApplication: o.tailorNode,
		ActionUpdateStatus:      o.trackerNode,
	}
	return o
}

// Run executes one workflow and returns its result payload.
func (o *Orchestrator) Run(ctx context.Context, action string, params map[string]interface{}) *Result {
	if params == nil {
		params = map[string]interface{}{}
	}

	state := &State{
		Action: action,
		Params: params,
		UserID: o.User.ID,
	}
	if resume, err := o.Resumes.Primary(ctx, o.User.ID); err == nil {
		state.ResumeText = resume.RawText
	}

	node, ok := o.routing[action]
	if !ok {
		state.Error = fmt.Sprintf("unknown action: %s", action)
	} else {
		o.Log.Info("dispatching action", "action", action)
		node(ctx, state)
	}

	return &Result{
		Action:            state.Action,
		JobsFound:         state.JobsFound,
		MatchScores:       state.MatchScores,
		CoverLetter:       state.CoverLetter,
		ResumeSuggestions: state.ResumeSuggestions,
		ApplicationUpdate: state.ApplicationUpdate,
		Error:             state.Error,
		Warnings:          state.Warnings,
	}
}
