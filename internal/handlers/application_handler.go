package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Documents    *services.DocumentService
	Resumes      *services.ResumeService
	User         *models.User
}

func NewApplicationHandler(
	applications *services.ApplicationService,
	documents *services.DocumentService,
	resumes *services.ResumeService,
	user *models.User,
) *ApplicationHandler {
	return &ApplicationHandler{
		Applications: applications,
		Documents:    documents,
		Resumes:      resumes,
		User:         user,
	}
}

// ListApplications is GET /applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var status *models.Status
	if raw := c.Query("status"); raw != "" {
		s := models.Status(raw)
		if !models.ValidStatus(s) {
			respondError(c, apperrors.Validation("unknown status %q", raw))
			return
		}
		status = &s
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	apps, err := h.Applications.List(c.Request.Context(), h.User.ID, status, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(apps), "applications": apps})
}

// Summary is GET /applications/summary
func (h *ApplicationHandler) Summary(c *gin.Context) {
	summary, err := h.Applications.Summarize(c.Request.Context(), h.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateApplication is POST /applications. When no resume id is supplied the
// user's primary resume is attached, if one exists.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	resumeID := req.ResumeID
	if resumeID == nil {
		if resume, err := h.Resumes.Primary(ctx, h.User.ID); err == nil {
			resumeID = &resume.ID
		}
	}

	app, err := h.Applications.Create(ctx, h.User.ID, req.JobID, resumeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetApplication is GET /applications/:id. The record plus its event
// history, newest-first.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	detail, err := h.Applications.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateApplication is PATCH /applications/:id, a status transition.
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	app, err := h.Applications.Transition(c.Request.Context(), c.Param("id"), models.Status(req.Status), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// SaveDocument is POST /applications/:id/documents
func (h *ApplicationHandler) SaveDocument(c *gin.Context) {
	var req dtos.DocumentSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	doc, err := h.Documents.Save(c.Request.Context(), c.Param("id"), req.DocType, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}
