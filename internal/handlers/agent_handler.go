package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/agent"
	"github.com/justsurfingit/job-assistant/internal/dtos"
)

type AgentHandler struct {
	Orchestrator *agent.Orchestrator
}

func NewAgentHandler(orchestrator *agent.Orchestrator) *AgentHandler {
	return &AgentHandler{Orchestrator: orchestrator}
}

// RunAgent is POST /agent/run.
//
// Actions:
//   - search_jobs: find and score matching jobs
//   - tailor_application: generate cover letter + resume suggestions
//   - update_status: track application status changes
func (h *AgentHandler) RunAgent(c *gin.Context) {
	var req dtos.AgentRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result := h.Orchestrator.Run(c.Request.Context(), req.Action, req.Params)
	c.JSON(http.StatusOK, dtos.AgentRunResponse{Status: "completed", Result: result})
}
