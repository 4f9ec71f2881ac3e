package domain

import "fmt"

// Status values mirror the backend's allowed opportunity statuses.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusScreening    Status = "Screening"
	StatusRejected     Status = "Rejected"
	StatusDidNotApply  Status = "Did Not Apply"
	StatusInterviewing Status = "Interviewing"
	StatusToApply      Status = "To Apply"
)

// DefaultStatus is assigned when a new opportunity does not name one.
const DefaultStatus = StatusToApply

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusToApply,
	StatusApplied,
	StatusScreening,
	StatusInterviewing,
	StatusRejected,
	StatusDidNotApply,
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values. Matching is exact, as on the backend.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusScreening, StatusRejected, StatusDidNotApply, StatusInterviewing, StatusToApply:
		return st, nil
	}
	return "", fmt.Errorf("unknown opportunity status %q", s)
}
