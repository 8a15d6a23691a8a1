package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status is the application pipeline status. The ordering
// saved -> applied -> phone_screen -> interview -> offer is advisory only:
// any status can be set from any other, including out of rejected/withdrawn.
type Status string

const (
	StatusSaved       Status = "saved"
	StatusApplied     Status = "applied"
	StatusPhoneScreen Status = "phone_screen"
	StatusInterview   Status = "interview"
	StatusOffer       Status = "offer"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// AllStatuses lists every accepted status value.
var AllStatuses = []Status{
	StatusSaved, StatusApplied, StatusPhoneScreen,
	StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn,
}

// ValidStatus reports whether s is one of the seven known values.
func ValidStatus(s Status) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const EventStatusChange = "status_change"

// DocTypeCoverLetter is the doc_type that is also denormalized onto the
// application's cover_letter column.
const DocTypeCoverLetter = "cover_letter"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Job struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Source   string `gorm:"not null;uniqueIndex:idx_job_source,priority:1" json:"source"`
	SourceID string `gorm:"uniqueIndex:idx_job_source,priority:2" json:"source_id"`

	Title        string                      `gorm:"not null" json:"title"`
	Company      string                      `gorm:"not null" json:"company"`
	CompanyURL   *string                     `json:"company_url,omitempty"`
	Location     *string                     `json:"location,omitempty"`
	IsRemote     *bool                       `json:"is_remote,omitempty"`
	SalaryMin    *int                        `json:"salary_min,omitempty"`
	SalaryMax    *int                        `json:"salary_max,omitempty"`
	Description  *string                     `gorm:"type:text" json:"description,omitempty"`
	Requirements datatypes.JSONSlice[string] `json:"requirements,omitempty"`
	URL          string                      `json:"url,omitempty"`
	PostedAt     *time.Time                  `json:"posted_at,omitempty"`
	// RawData keeps the original board payload for provenance.
	RawData   datatypes.JSON `json:"raw_data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

type Resume struct {
	ID       string `gorm:"primaryKey" json:"id"`
	UserID   string `gorm:"index;not null" json:"user_id"`
	Filename string `gorm:"not null" json:"filename"`
	// Sections maps a section name ("experience", "skills", ...) to its lines.
	Sections  datatypes.JSONType[map[string][]string] `json:"sections,omitempty"`
	RawText   string                                  `gorm:"type:text" json:"raw_text,omitempty"`
	IsPrimary bool                                    `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt time.Time                               `json:"created_at"`
}

func (r *Resume) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type Preference struct {
	ID                string                      `gorm:"primaryKey" json:"id"`
	UserID            string                      `gorm:"uniqueIndex;not null" json:"user_id"`
	TargetRoles       datatypes.JSONSlice[string] `json:"target_roles,omitempty"`
	TargetLocations   datatypes.JSONSlice[string] `json:"target_locations,omitempty"`
	SalaryMin         *int                        `json:"salary_min,omitempty"`
	SalaryMax         *int                        `json:"salary_max,omitempty"`
	RemotePreference  string                      `gorm:"not null;default:'any'" json:"remote_preference"`
	Industries        datatypes.JSONSlice[string] `json:"industries,omitempty"`
	ExcludedCompanies datatypes.JSONSlice[string] `json:"excluded_companies,omitempty"`
	CreatedAt         time.Time                   `json:"created_at"`
}

func (p *Preference) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Application struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	UserID   string  `gorm:"index;not null" json:"user_id"`
	JobID    string  `gorm:"index;not null" json:"job_id"`
	ResumeID *string `json:"resume_id,omitempty"`

	Status Status `gorm:"not null;default:'saved'" json:"status"`
	// CoverLetter duplicates the newest cover_letter document for cheap reads.
	// The documents table stays authoritative for history.
	CoverLetter    *string        `gorm:"type:text" json:"cover_letter,omitempty"`
	TailoredResume datatypes.JSON `json:"tailored_resume,omitempty"`
	AppliedAt      *time.Time     `json:"applied_at,omitempty"`
	Notes          *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ApplicationEvent is an immutable audit record. Exactly one is appended for
// every status transition, including creation (old_value null -> "saved").
type ApplicationEvent struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	ApplicationID string    `gorm:"index;not null" json:"application_id"`
	EventType     string    `gorm:"not null" json:"event_type"`
	OldValue      *string   `json:"old_value,omitempty"`
	NewValue      string    `gorm:"not null" json:"new_value"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (e *ApplicationEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Document is a versioned artifact attached to an application. Versions for a
// given (application_id, doc_type) start at 1 and increase by 1 with no gaps.
type Document struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	ApplicationID string    `gorm:"index:idx_doc_app_type,priority:1;not null" json:"application_id"`
	DocType       string    `gorm:"index:idx_doc_app_type,priority:2;not null" json:"doc_type"`
	Content       string    `gorm:"type:text" json:"content"`
	Version       int       `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *Document) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// JobMatch keeps at most one current score per (user, job); re-scoring
// replaces the prior record.
type JobMatch struct {
	ID            string                      `gorm:"primaryKey" json:"id"`
	UserID        string                      `gorm:"not null;uniqueIndex:idx_match_user_job,priority:1" json:"user_id"`
	JobID         string                      `gorm:"not null;uniqueIndex:idx_match_user_job,priority:2" json:"job_id"`
	MatchScore    float64                     `json:"match_score"`
	MatchReasons  datatypes.JSONSlice[string] `json:"match_reasons,omitempty"`
	SkillsMatched datatypes.JSONSlice[string] `json:"skills_matched,omitempty"`
	SkillsMissing datatypes.JSONSlice[string] `json:"skills_missing,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

func (m *JobMatch) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Reminder struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	ApplicationID string    `gorm:"index;not null" json:"application_id"`
	RemindAt      time.Time `gorm:"not null" json:"remind_at"`
	Message       *string   `gorm:"type:text" json:"message,omitempty"`
	IsCompleted   bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *Reminder) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
