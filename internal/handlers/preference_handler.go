package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type PreferenceHandler struct {
	Preferences *services.PreferenceService
	User        *models.User
}

func NewPreferenceHandler(preferences *services.PreferenceService, user *models.User) *PreferenceHandler {
	return &PreferenceHandler{Preferences: preferences, User: user}
}

// GetPreferences is GET /preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	pref, err := h.Preferences.Get(c.Request.Context(), h.User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

// UpdatePreferences is PUT /preferences. Partial merge, omitted fields are
// left alone.
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	var req dtos.PreferenceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pref, err := h.Preferences.Update(c.Request.Context(), h.User.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}
