package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
	User    *models.User
}

func NewResumeHandler(resumes *services.ResumeService, user *models.User) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes, User: user}
}

// ListResumes is GET /resumes
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	resumes, err := h.Resumes.List(c.Request.Context(), h.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(resumes), "resumes": resumes})
}

// UploadResume is POST /resumes. Takes plain resume text, parses sections
// and makes it the new primary.
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	var req dtos.ResumeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resume, err := h.Resumes.Save(c.Request.Context(), h.User.ID, req.Filename, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	sections := resume.Sections.Data()
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	c.JSON(http.StatusCreated, gin.H{
		"resume_id": resume.ID,
		"filename":  resume.Filename,
		"sections":  names,
	})
}

// GetPrimary is GET /resumes/primary
func (h *ResumeHandler) GetPrimary(c *gin.Context) {
	resume, err := h.Resumes.Primary(c.Request.Context(), h.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}
