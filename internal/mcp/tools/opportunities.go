package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/opportunity"
)

// OpportunityService is what the opportunity tools call
type OpportunityService interface {
	Refresh(ctx context.Context, refetch bool) ([]opportunity.Row, error)
	Create(ctx context.Context, in domain.OpportunityCreate) (domain.Opportunity, error)
	Enrich(ctx context.Context, link string) (domain.Opportunity, error)
	Delete(ctx context.Context, id domain.OpportunityID) error
}

// ListOpportunitiesParams defines the arguments for the list_opportunities tool
type ListOpportunitiesParams struct {
	Refetch bool `json:"refetch,omitempty" jsonschema:"Drop cached assessments and fetch them again"`
}

// CreateOpportunityParams defines the arguments for the create_opportunity tool
type CreateOpportunityParams struct {
	Title           string  `json:"title" jsonschema:"Job title"`
	Company         string  `json:"company" jsonschema:"Company name"`
	Level           *string `json:"level,omitempty" jsonschema:"Seniority level"`
	MinSalary       *int    `json:"min_salary,omitempty" jsonschema:"Lower salary bound"`
	MaxSalary       *int    `json:"max_salary,omitempty" jsonschema:"Upper salary bound"`
	PostingLink     *string `json:"posting_link,omitempty"`
	ResumeLink      *string `json:"resume_link,omitempty"`
	CoverLetterLink *string `json:"cover_letter_link,omitempty"`
	Status          string  `json:"status,omitempty" jsonschema:"One of Applied, Screening, Rejected, Did Not Apply, Interviewing, To Apply"`
}

// EnrichOpportunityParams defines the arguments for the enrich_opportunity tool
type EnrichOpportunityParams struct {
	Link string `json:"link" jsonschema:"Job posting URL to extract the opportunity from"`
}

// DeleteOpportunityParams defines the arguments for the delete_opportunity tool
type DeleteOpportunityParams struct {
	OpportunityID int64 `json:"opportunity_id"`
}

// OpportunitySummary is one listed opportunity
type OpportunitySummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Status    string `json:"status"`
	FitScore  *int   `json:"fit_score,omitempty"`
	Band      string `json:"band,omitempty"`
	Freshness string `json:"freshness"`
	Pending   bool   `json:"pending,omitempty"`
	Error     string `json:"error,omitempty"`
}

// WithOpportunityTools registers list, create, enrich and delete
func WithOpportunityTools(svc OpportunityService) Option {
	return func(reg *registry) {
		h := &opportunityHandlers{svc: svc}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "list_opportunities",
			Description: "List tracked opportunities with the fit score and freshness of each assessment",
		}, h.list)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "create_opportunity",
			Description: "Create an opportunity from manually entered fields",
		}, h.create)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "enrich_opportunity",
			Description: "Create an opportunity by extracting its fields from a job posting URL",
		}, h.enrich)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "delete_opportunity",
			Description: "Delete an opportunity and drop its cached assessment",
		}, h.delete)
	}
}

type opportunityHandlers struct {
	svc OpportunityService
}

func (h *opportunityHandlers) list(ctx context.Context, _ *sdkmcp.CallToolRequest, params *ListOpportunitiesParams) (*sdkmcp.CallToolResult, any, error) {
	rows, err := h.svc.Refresh(ctx, params.Refetch)
	if err != nil {
		return errorResult(err), nil, nil
	}

	out := make([]OpportunitySummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, summarize(r))
	}
	return jsonResult(fmt.Sprintf("%d opportunities", len(out)), out), nil, nil
}

func (h *opportunityHandlers) create(ctx context.Context, _ *sdkmcp.CallToolRequest, params *CreateOpportunityParams) (*sdkmcp.CallToolResult, any, error) {
	opp, err := h.svc.Create(ctx, domain.OpportunityCreate{
		Title:           params.Title,
		Company:         params.Company,
		Level:           params.Level,
		MinSalary:       params.MinSalary,
		MaxSalary:       params.MaxSalary,
		PostingLink:     params.PostingLink,
		ResumeLink:      params.ResumeLink,
		CoverLetterLink: params.CoverLetterLink,
		Status:          domain.Status(params.Status),
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(fmt.Sprintf("created opportunity %d", opp.ID), opp), nil, nil
}

func (h *opportunityHandlers) enrich(ctx context.Context, _ *sdkmcp.CallToolRequest, params *EnrichOpportunityParams) (*sdkmcp.CallToolResult, any, error) {
	opp, err := h.svc.Enrich(ctx, params.Link)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(fmt.Sprintf("created opportunity %d from link", opp.ID), opp), nil, nil
}

func (h *opportunityHandlers) delete(ctx context.Context, _ *sdkmcp.CallToolRequest, params *DeleteOpportunityParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.svc.Delete(ctx, params.OpportunityID); err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(fmt.Sprintf("deleted opportunity %d", params.OpportunityID)), nil, nil
}

func summarize(r opportunity.Row) OpportunitySummary {
	s := OpportunitySummary{
		ID:        r.Opportunity.ID,
		Title:     r.Opportunity.Title,
		Company:   r.Opportunity.Company,
		Status:    string(r.Opportunity.Status),
		Freshness: r.Freshness.String(),
		Pending:   r.Pending,
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	if a := r.Entry.Assessment(); a != nil {
		score := a.FitScore
		s.FitScore = &score
		s.Band = assessment.ClassifyScore(score).Label()
	}
	return s
}
