package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-assistant/internal/dtos"
	"github.com/justsurfingit/job-assistant/internal/services"
)

type ReminderHandler struct {
	Reminders *services.ReminderService
}

func NewReminderHandler(reminders *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{Reminders: reminders}
}

// CreateReminder is POST /reminders
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	var req dtos.ReminderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reminder, err := h.Reminders.Create(c.Request.Context(), req.ApplicationID, req.RemindAt, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// CompleteReminder is POST /reminders/:id/complete
func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	reminder, err := h.Reminders.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}
