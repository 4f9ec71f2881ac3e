package domain

import (
	"strings"
	"time"
)

// OpportunityID identifies an opportunity; assigned by the backend
type OpportunityID = int64

// Opportunity is a tracked job posting or application
type Opportunity struct {
	ID              OpportunityID `json:"id"`
	Title           string        `json:"title"`
	Company         string        `json:"company"`
	Level           *string       `json:"level"`
	MinSalary       *int          `json:"min_salary"`
	MaxSalary       *int          `json:"max_salary"`
	PostingLink     *string       `json:"posting_link"`
	ResumeLink      *string       `json:"resume_link"`
	CoverLetterLink *string       `json:"cover_letter_link"`
	Status          Status        `json:"status"`
}

// OpportunityCreate is the manual-entry payload. Optional fields are sent as null.
type OpportunityCreate struct {
	Title           string  `json:"title"`
	Company         string  `json:"company"`
	Level           *string `json:"level"`
	MinSalary       *int    `json:"min_salary"`
	MaxSalary       *int    `json:"max_salary"`
	PostingLink     *string `json:"posting_link"`
	ResumeLink      *string `json:"resume_link"`
	CoverLetterLink *string `json:"cover_letter_link"`
	Status          Status  `json:"status"`
}

// Validate checks the fields the backend requires before anything is sent
func (c OpportunityCreate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if strings.TrimSpace(c.Company) == "" {
		return &ValidationError{Field: "company", Msg: "company is required"}
	}
	if c.MinSalary != nil && *c.MinSalary < 0 {
		return &ValidationError{Field: "min_salary", Msg: "min salary must not be negative"}
	}
	if c.MaxSalary != nil && *c.MaxSalary < 0 {
		return &ValidationError{Field: "max_salary", Msg: "max salary must not be negative"}
	}
	if c.Status != "" {
		if _, err := ParseStatus(string(c.Status)); err != nil {
			return &ValidationError{Field: "status", Msg: err.Error()}
		}
	}
	return nil
}

// EntryType is the kind of a profile entry
type EntryType string

const (
	EntryExperience EntryType = "experience"
	EntryEducation  EntryType = "education"
	EntryPersonal   EntryType = "personal"
)

// ParseEntryType converts a raw string to an EntryType
func ParseEntryType(s string) (EntryType, error) {
	t := EntryType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case EntryExperience, EntryEducation, EntryPersonal:
		return t, nil
	}
	return "", &ValidationError{Field: "type", Msg: "entry type must be experience, education or personal"}
}

// ProfileEntry is one block of the user's profile
type ProfileEntry struct {
	ID           string    `json:"id"`
	Type         EntryType `json:"type"`
	Title        *string   `json:"title,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	KeyNotes     []string  `json:"key_notes"`
}

// ProfileEntryCreate is the create/replace payload for a profile entry
type ProfileEntryCreate struct {
	Type         EntryType `json:"type"`
	Title        *string   `json:"title,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	KeyNotes     []string  `json:"key_notes"`
}

// Normalize drops blank key notes, keeping the order of the rest
func (c ProfileEntryCreate) Normalize() ProfileEntryCreate {
	notes := make([]string, 0, len(c.KeyNotes))
	for _, n := range c.KeyNotes {
		if strings.TrimSpace(n) == "" {
			continue
		}
		notes = append(notes, n)
	}
	c.KeyNotes = notes
	return c
}

// Validate checks the entry type
func (c ProfileEntryCreate) Validate() error {
	_, err := ParseEntryType(string(c.Type))
	return err
}

// Profile is the response of GET /profile
type Profile struct {
	Entries []ProfileEntry `json:"entries"`
}

// ProfileGeneration is the response of POST /profile/generate
type ProfileGeneration struct {
	Message string         `json:"message"`
	Entries []ProfileEntry `json:"entries"`
}

// JobAssessment is a generated fit evaluation of an opportunity against a profile snapshot
type JobAssessment struct {
	ID             int64         `json:"id"`
	OpportunityID  OpportunityID `json:"opportunity_id"`
	ProfileID      int64         `json:"profile_id"`
	ProfileVersion int           `json:"profile_version"`
	SummaryOfFit   string        `json:"summary_of_fit"`
	FitScore       int           `json:"fit_score"` // 1-7
	Recommendation string        `json:"recommendation"`
	CreatedAt      Timestamp     `json:"created_at"`
	UpdatedAt      Timestamp     `json:"updated_at"`
	AssessmentDate string        `json:"assessment_date"`
}

// Timestamp decodes the backend's datetimes, which may omit the zone
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			t.Time = ts.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
