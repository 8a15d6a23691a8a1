// Package boards wraps the external job-board APIs (Adzuna and RemoteOK).
// Every call carries a bounded timeout; failures come back as errors so the
// caller can degrade to partial results instead of aborting a search.
package boards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/justsurfingit/job-assistant/internal/apperrors"
	"github.com/justsurfingit/job-assistant/internal/config"
	"github.com/justsurfingit/job-assistant/internal/dtos"
)

const userAgent = "job-assistant/1.0"

type Client struct {
	HTTP          *http.Client
	AdzunaBase    string
	RemoteOKBase  string
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		HTTP:          &http.Client{Timeout: 15 * time.Second},
		AdzunaBase:    "https://api.adzuna.com/v1/api/jobs",
		RemoteOKBase:  "https://remoteok.com/api",
		AdzunaAppID:   cfg.AdzunaAppID,
		AdzunaAppKey:  cfg.AdzunaAppKey,
		AdzunaCountry: cfg.AdzunaCountry,
	}
}

type adzunaResult struct {
	ID      json.Number `json:"id"`
	Title   string      `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string   `json:"description"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	RedirectURL string   `json:"redirect_url"`
	Created     string   `json:"created"`
}

// SearchAdzuna queries the Adzuna search endpoint. Free tier: 250 calls a
// month, so callers should batch what they can.
func (c *Client) SearchAdzuna(ctx context.Context, keywords, location string, limit int) ([]dtos.JobInput, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("app_id", c.AdzunaAppID)
	params.Set("app_key", c.AdzunaAppKey)
	params.Set("results_per_page", strconv.Itoa(limit))
	params.Set("what", keywords)
	params.Set("content-type", "application/json")
	if location != "" {
		params.Set("where", location)
	}

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", c.AdzunaBase, c.AdzunaCountry, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperrors.External(err, "adzuna request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.External(nil, "adzuna returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.External(err, "adzuna response decode failed")
	}

	jobs := make([]dtos.JobInput, 0, len(payload.Results))
	for _, raw := range payload.Results {
		var r adzunaResult
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		job := dtos.JobInput{
			Source:   "adzuna",
			SourceID: r.ID.String(),
			Title:    r.Title,
			Company:  orUnknown(r.Company.DisplayName),
			URL:      r.RedirectURL,
			Raw:      raw,
		}
		if r.Location.DisplayName != "" {
			job.Location = &r.Location.DisplayName
		}
		if r.Description != "" {
			job.Description = &r.Description
		}
		job.SalaryMin = floatToInt(r.SalaryMin)
		job.SalaryMax = floatToInt(r.SalaryMax)
		job.PostedAt = parseTime(r.Created)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

type remoteOKResult struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Description string      `json:"description"`
	SalaryMin   *float64    `json:"salary_min"`
	SalaryMax   *float64    `json:"salary_max"`
	URL         string      `json:"url"`
	Date        string      `json:"date"`
	Tags        []string    `json:"tags"`
}

// SearchRemoteOK queries the RemoteOK API. No auth needed; the first array
// element is legal metadata and is skipped.
func (c *Client) SearchRemoteOK(ctx context.Context, tag string, limit int) ([]dtos.JobInput, error) {
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("%s?tag=%s&limit=%d", c.RemoteOKBase, url.QueryEscape(tag), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperrors.External(err, "remoteok request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.External(nil, "remoteok returned status %d", resp.StatusCode)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, apperrors.External(err, "remoteok response decode failed")
	}
	if len(items) <= 1 {
		return nil, nil
	}

	remote := true
	location := "Remote"

	var jobs []dtos.JobInput
	for _, raw := range items[1:] {
		if len(jobs) >= limit {
			break
		}
		var r remoteOKResult
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		job := dtos.JobInput{
			Source:       "remoteok",
			SourceID:     r.ID.String(),
			Title:        r.Position,
			Company:      orUnknown(r.Company),
			Location:     &location,
			IsRemote:     &remote,
			Requirements: r.Tags,
			URL:          r.URL,
			Raw:          raw,
		}
		if r.Description != "" {
			job.Description = &r.Description
		}
		job.SalaryMin = floatToInt(r.SalaryMin)
		job.SalaryMax = floatToInt(r.SalaryMax)
		job.PostedAt = parseTime(r.Date)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func floatToInt(f *float64) *int {
	if f == nil || *f == 0 {
		return nil
	}
	v := int(*f)
	return &v
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
