// Package assessment holds the client-side model of fit assessments: the
// freshness rules, the per-opportunity store, the generation workflow and the
// drawer selection.
package assessment

import "github.com/honeycarbs/jobfit/internal/domain"

// Band classifies a fit score for colour and label
type Band int

const (
	BandPoor Band = iota
	BandGood
	BandExcellent
)

// ClassifyScore maps a 1-7 fit score to its band
func ClassifyScore(score int) Band {
	switch {
	case score >= 6:
		return BandExcellent
	case score >= 4:
		return BandGood
	default:
		return BandPoor
	}
}

func (b Band) Label() string {
	switch b {
	case BandExcellent:
		return "Excellent"
	case BandGood:
		return "Good"
	default:
		return "Poor"
	}
}

func (b Band) String() string { return b.Label() }

// IsOutdated reports whether a was computed against a different profile version.
// A missing assessment is never outdated.
func IsOutdated(a *domain.JobAssessment, currentVersion int) bool {
	if a == nil {
		return false
	}
	return a.ProfileVersion != currentVersion
}

// Freshness is the display state of an opportunity's assessment
type Freshness int

const (
	FreshnessNone Freshness = iota
	FreshnessCurrent
	FreshnessOutdated
)

func (f Freshness) String() string {
	switch f {
	case FreshnessCurrent:
		return "current"
	case FreshnessOutdated:
		return "outdated"
	default:
		return "none"
	}
}

// Evaluate annotates a store entry against the live profile version
func Evaluate(e Entry, currentVersion int) Freshness {
	a := e.Assessment()
	if a == nil {
		return FreshnessNone
	}
	if IsOutdated(a, currentVersion) {
		return FreshnessOutdated
	}
	return FreshnessCurrent
}
