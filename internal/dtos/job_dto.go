package dtos

import (
	"encoding/json"
	"time"
)

// JobInput is a normalized posting coming from a job board (or a manual
// save) before it is persisted. Raw keeps the board payload for provenance.
type JobInput struct {
	Source       string          `json:"source" binding:"required"`
	SourceID     string          `json:"source_id"`
	Title        string          `json:"title" binding:"required"`
	Company      string          `json:"company" binding:"required"`
	CompanyURL   *string         `json:"company_url"`
	Location     *string         `json:"location"`
	IsRemote     *bool           `json:"is_remote"`
	SalaryMin    *int            `json:"salary_min"`
	SalaryMax    *int            `json:"salary_max"`
	Description  *string         `json:"description"`
	Requirements []string        `json:"requirements"`
	URL          string          `json:"url"`
	PostedAt     *time.Time      `json:"posted_at"`
	Raw          json.RawMessage `json:"-"`
}
