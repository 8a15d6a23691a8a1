package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/models"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type MatchHandler struct {
	Matches *services.MatchService
	User    *models.User
}

func NewMatchHandler(matches *services.MatchService, user *models.User) *MatchHandler {
	return &MatchHandler{Matches: matches, User: user}
}

// ListMatches is GET /matches, the user's current scores, best first.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	matches, err := h.Matches.ListForUser(c.Request.Context(), h.User.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(matches), "matches": matches})
}
