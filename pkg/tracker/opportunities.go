package tracker

import (
	"context"
	"fmt"
	"net/http"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// ListOpportunities returns every tracked opportunity
func (c *Client) ListOpportunities(ctx context.Context) ([]domain.Opportunity, error) {
	var out []domain.Opportunity
	if err := c.doJSON(ctx, http.MethodGet, "/opportunities", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOpportunity creates an opportunity from manually entered fields
func (c *Client) CreateOpportunity(ctx context.Context, in domain.OpportunityCreate) (domain.Opportunity, error) {
	if in.Status == "" {
		in.Status = domain.DefaultStatus
	}

	var out domain.Opportunity
	if err := c.doJSON(ctx, http.MethodPost, "/opportunities", nil, in, &out); err != nil {
		return domain.Opportunity{}, err
	}
	return out, nil
}

// CreateOpportunityFromLink asks the backend to extract an opportunity from a posting URL
func (c *Client) CreateOpportunityFromLink(ctx context.Context, link string) (domain.Opportunity, error) {
	var out domain.Opportunity
	if err := c.doJSON(ctx, http.MethodPost, "/opportunities/from-link", nil, LinkRequest{Link: link}, &out); err != nil {
		return domain.Opportunity{}, err
	}
	return out, nil
}

// DeleteOpportunity removes an opportunity
func (c *Client) DeleteOpportunity(ctx context.Context, id domain.OpportunityID) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/opportunities/%d", id), nil, nil, nil)
}
