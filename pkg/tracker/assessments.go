package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// GetOpportunityAssessment returns the assessment of an opportunity.
// ErrNotFound means none has been generated yet.
func (c *Client) GetOpportunityAssessment(ctx context.Context, opportunityID domain.OpportunityID) (domain.JobAssessment, error) {
	var out domain.JobAssessment
	path := fmt.Sprintf("/assessments/opportunities/%d", opportunityID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return domain.JobAssessment{}, err
	}
	return out, nil
}

// AssessOpportunity generates (or regenerates) the assessment of an opportunity against a profile.
// Each call performs one real generation on the backend.
func (c *Client) AssessOpportunity(ctx context.Context, opportunityID domain.OpportunityID, profileID int64) (domain.JobAssessment, error) {
	var out domain.JobAssessment
	path := fmt.Sprintf("/assessments/opportunities/%d/assess", opportunityID)
	query := url.Values{}
	query.Set("profile_id", strconv.FormatInt(profileID, 10))
	if err := c.doJSON(ctx, http.MethodPost, path, query, nil, &out); err != nil {
		return domain.JobAssessment{}, err
	}
	return out, nil
}

// ListProfileAssessments returns every assessment computed against a profile
func (c *Client) ListProfileAssessments(ctx context.Context, profileID int64) ([]domain.JobAssessment, error) {
	var out []domain.JobAssessment
	path := fmt.Sprintf("/assessments/profiles/%d", profileID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAssessment removes an assessment record
func (c *Client) DeleteAssessment(ctx context.Context, assessmentID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/assessments/%d", assessmentID), nil, nil, nil)
}
