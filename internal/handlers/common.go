package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is a plain 500; nothing here panics or exits.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case apperrors.KindNotFound:
			status = http.StatusNotFound
		case apperrors.KindValidation:
			status = http.StatusBadRequest
		case apperrors.KindConflict:
			status = http.StatusConflict
		case apperrors.KindExternal:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": appErr.Message, "type": string(appErr.Kind)})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error(), "type": string(apperrors.KindValidation)})
}
