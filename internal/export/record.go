// Package export flattens annotated opportunities for the external sinks:
// a Google Sheets tab and the Neo4j graph mirror.
package export

import (
	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/opportunity"
)

// Record is one opportunity with the state of its assessment
type Record struct {
	OpportunityID domain.OpportunityID
	Title         string
	Company       string
	Level         string
	MinSalary     *int
	MaxSalary     *int
	Status        domain.Status
	PostingLink   string

	Assessed       bool
	AssessmentID   int64
	FitScore       int
	Band           string
	ProfileVersion int
	Freshness      assessment.Freshness
	UpdatedAt      domain.Timestamp
}

// Records converts rows. Rows whose assessment failed to load are exported
// without assessment columns.
func Records(rows []opportunity.Row) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		o := row.Opportunity
		r := Record{
			OpportunityID: o.ID,
			Title:         o.Title,
			Company:       o.Company,
			Level:         deref(o.Level),
			MinSalary:     o.MinSalary,
			MaxSalary:     o.MaxSalary,
			Status:        o.Status,
			PostingLink:   deref(o.PostingLink),
			Freshness:     row.Freshness,
		}
		if a := row.Entry.Assessment(); a != nil && row.Err == nil {
			r.Assessed = true
			r.AssessmentID = a.ID
			r.FitScore = a.FitScore
			r.Band = assessment.ClassifyScore(a.FitScore).Label()
			r.ProfileVersion = a.ProfileVersion
			r.UpdatedAt = a.UpdatedAt
		}
		out = append(out, r)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
