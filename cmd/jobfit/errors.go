package main

import (
	"errors"
	"strconv"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// describe turns an error into the one-line message shown to the user
func describe(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}

	var apiErr *tracker.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return "backend returned " + strconv.Itoa(apiErr.StatusCode)
	}

	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return "not found"
	case errors.Is(err, assessment.ErrNoAssessment):
		return "no assessment yet"
	case errors.Is(err, assessment.ErrEvicted):
		return "the opportunity was removed while its assessment was generating"
	}

	return err.Error()
}

func parseOpportunityID(arg string) (domain.OpportunityID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: "id", Msg: "opportunity id must be a positive integer, got " + strconv.Quote(arg)}
	}
	return id, nil
}
