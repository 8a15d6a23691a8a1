package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/boards"
	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	Boards     *boards.Client
}

func NewJobHandler(jobService *services.JobService, boardClient *boards.Client) *JobHandler {
	return &JobHandler{JobService: jobService, Boards: boardClient}
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	jobs, err := h.JobService.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(jobs), "jobs": jobs})
}

// SearchJobs is GET /jobs/search. Queries the boards directly and persists
// whatever came back. A failing board contributes nothing but does not fail
// the request.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	keywords := c.DefaultQuery("keywords", "python")
	location := c.Query("location")
	remoteOnly := c.Query("remote_only") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	ctx := c.Request.Context()
	var results []dtos.JobInput
	var warnings []string

	if !remoteOnly {
		adzuna, err := h.Boards.SearchAdzuna(ctx, keywords, location, limit)
		if err != nil {
			warnings = append(warnings, err.Error())
		}
		results = append(results, adzuna...)
	}

	tag := "python"
	if fields := strings.Fields(keywords); len(fields) > 0 {
		tag = strings.ToLower(fields[0])
	}
	remoteok, err := h.Boards.SearchRemoteOK(ctx, tag, limit)
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	results = append(results, remoteok...)

	var saved []models.Job
	for i := range results {
		job, err := h.JobService.Save(ctx, &results[i])
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		saved = append(saved, *job)
	}

	resp := gin.H{"count": len(saved), "jobs": saved}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob is GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
