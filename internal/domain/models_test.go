package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/honeycarbs/jobfit/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestParseStatus(t *testing.T) {
	for _, s := range domain.Statuses {
		got, err := domain.ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}

	for _, bad := range []string{"", "applied", "Offer"} {
		if _, err := domain.ParseStatus(bad); err == nil {
			t.Errorf("ParseStatus(%q) accepted", bad)
		}
	}
}

func TestOpportunityCreateValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.OpportunityCreate
		field string
	}{
		{"valid", domain.OpportunityCreate{Title: "SRE", Company: "Acme"}, ""},
		{"valid with status", domain.OpportunityCreate{Title: "SRE", Company: "Acme", Status: domain.StatusInterviewing}, ""},
		{"missing title", domain.OpportunityCreate{Title: "  ", Company: "Acme"}, "title"},
		{"missing company", domain.OpportunityCreate{Title: "SRE"}, "company"},
		{"negative min", domain.OpportunityCreate{Title: "SRE", Company: "Acme", MinSalary: intPtr(-1)}, "min_salary"},
		{"negative max", domain.OpportunityCreate{Title: "SRE", Company: "Acme", MaxSalary: intPtr(-5)}, "max_salary"},
		{"unknown status", domain.OpportunityCreate{Title: "SRE", Company: "Acme", Status: "Hired"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			verr, ok := err.(*domain.ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestProfileEntryCreateNormalize(t *testing.T) {
	in := domain.ProfileEntryCreate{
		Type:     domain.EntryExperience,
		KeyNotes: []string{"Led migration", "", "   ", "Mentored two engineers"},
	}

	got := in.Normalize().KeyNotes
	want := []string{"Led migration", "Mentored two engineers"}
	if len(got) != len(want) {
		t.Fatalf("KeyNotes = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KeyNotes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(in.KeyNotes) != 4 {
		t.Errorf("Normalize modified its receiver")
	}
}

func TestParseEntryType(t *testing.T) {
	if got, err := domain.ParseEntryType(" Education "); err != nil || got != domain.EntryEducation {
		t.Errorf("ParseEntryType = %q, %v", got, err)
	}
	if _, err := domain.ParseEntryType("hobby"); !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestJobAssessmentTimestamps(t *testing.T) {
	raw := `{"id":1,"fit_score":5,"created_at":"2025-03-01T08:00:00Z","updated_at":"2025-03-02 09:15:00","assessment_date":"2025-03-02"}`

	var a domain.JobAssessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.CreatedAt.Day() != 1 || a.UpdatedAt.Hour() != 9 {
		t.Errorf("timestamps = %v / %v", a.CreatedAt, a.UpdatedAt)
	}

	var empty domain.JobAssessment
	if err := json.Unmarshal([]byte(`{"created_at":null}`), &empty); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if !empty.CreatedAt.IsZero() {
		t.Errorf("null timestamp not zero")
	}
}

func TestOpportunityCreateSendsNulls(t *testing.T) {
	raw, err := json.Marshal(domain.OpportunityCreate{Title: "SRE", Company: "Acme", Status: domain.DefaultStatus})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	for _, k := range []string{"level", "min_salary", "max_salary", "posting_link", "resume_link", "cover_letter_link"} {
		v, ok := m[k]
		if !ok || v != nil {
			t.Errorf("%s = %v (present %v), want null", k, v, ok)
		}
	}
}
