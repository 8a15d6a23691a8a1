package dtos

import "time"

type ApplicationCreateRequest struct {
	JobID    string  `json:"job_id" binding:"required"`
	ResumeID *string `json:"resume_id"`
}

// ApplicationUpdateRequest drives a status transition. Status is required:
// a PATCH without one is a validation error before the tracker is invoked.
type ApplicationUpdateRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes"`
}

type DocumentSaveRequest struct {
	DocType string `json:"doc_type" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ResumeUploadRequest struct {
	Filename string `json:"filename" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

type PreferenceUpdateRequest struct {
	TargetRoles       []string `json:"target_roles"`
	TargetLocations   []string `json:"target_locations"`
	SalaryMin         *int     `json:"salary_min"`
	SalaryMax         *int     `json:"salary_max"`
	RemotePreference  *string  `json:"remote_preference"`
	Industries        []string `json:"industries"`
	ExcludedCompanies []string `json:"excluded_companies"`
}

type ReminderCreateRequest struct {
	ApplicationID string    `json:"application_id" binding:"required"`
	RemindAt      time.Time `json:"remind_at" binding:"required"`
	Message       *string   `json:"message"`
}

type AgentRunRequest struct {
	Action string                 `json:"action" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

type AgentRunResponse struct {
	Status string      `json:"status"`
	Result interface{} `json:"result"`
}
