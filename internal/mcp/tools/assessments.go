package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
)

// AssessmentStore is the part of the assessment store the tools use
type AssessmentStore interface {
	EnsureLoaded(ctx context.Context, id domain.OpportunityID) (assessment.Entry, error)
	Generate(ctx context.Context, id domain.OpportunityID, profileID int64) (domain.JobAssessment, error)
	Invalidate(id domain.OpportunityID)
}

// VersionSource provides the live profile version
type VersionSource interface {
	ProfileVersion() int
}

// GetAssessmentParams defines the arguments for the get_assessment tool
type GetAssessmentParams struct {
	OpportunityID int64 `json:"opportunity_id"`
	Refetch       bool  `json:"refetch,omitempty" jsonschema:"Ignore the cached copy and fetch the assessment again"`
}

// GenerateAssessmentParams defines the arguments for the generate_assessment tool
type GenerateAssessmentParams struct {
	OpportunityID int64  `json:"opportunity_id"`
	ProfileID     *int64 `json:"profile_id,omitempty" jsonschema:"Profile to assess against; defaults to the configured profile"`
}

// AssessmentDetail is the tool view of an assessment
type AssessmentDetail struct {
	domain.JobAssessment
	Band     string `json:"band"`
	Outdated bool   `json:"outdated"`
}

// WithAssessmentTools registers get_assessment and generate_assessment
func WithAssessmentTools(store AssessmentStore, versions VersionSource, defaultProfileID int64) Option {
	return func(reg *registry) {
		h := &assessmentHandlers{store: store, versions: versions, profileID: defaultProfileID}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "get_assessment",
			Description: "Get the fit assessment of an opportunity, if one has been generated",
		}, h.get)

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "generate_assessment",
			Description: "Generate or regenerate the fit assessment of an opportunity against the profile",
		}, h.generate)
	}
}

type assessmentHandlers struct {
	store     AssessmentStore
	versions  VersionSource
	profileID int64
}

func (h *assessmentHandlers) get(ctx context.Context, _ *sdkmcp.CallToolRequest, params *GetAssessmentParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Refetch {
		h.store.Invalidate(params.OpportunityID)
	}

	e, err := h.store.EnsureLoaded(ctx, params.OpportunityID)
	if err != nil {
		return errorResult(err), nil, nil
	}

	a := e.Assessment()
	if a == nil {
		return textResult(fmt.Sprintf("no assessment for opportunity %d yet", params.OpportunityID)), nil, nil
	}

	d := h.detail(*a)
	return jsonResult(fmt.Sprintf("opportunity %d: %d/7 (%s)", params.OpportunityID, a.FitScore, d.Band), d), nil, nil
}

func (h *assessmentHandlers) generate(ctx context.Context, _ *sdkmcp.CallToolRequest, params *GenerateAssessmentParams) (*sdkmcp.CallToolResult, any, error) {
	profileID := h.profileID
	if params.ProfileID != nil {
		profileID = *params.ProfileID
	}

	a, err := h.store.Generate(ctx, params.OpportunityID, profileID)
	if err != nil {
		if errors.Is(err, assessment.ErrEvicted) {
			return errorResult(fmt.Errorf("opportunity %d was removed while the assessment was generating", params.OpportunityID)), nil, nil
		}
		return errorResult(err), nil, nil
	}

	d := h.detail(a)
	return jsonResult(fmt.Sprintf("assessed opportunity %d: %d/7 (%s)", params.OpportunityID, a.FitScore, d.Band), d), nil, nil
}

func (h *assessmentHandlers) detail(a domain.JobAssessment) AssessmentDetail {
	return AssessmentDetail{
		JobAssessment: a,
		Band:          assessment.ClassifyScore(a.FitScore).Label(),
		Outdated:      assessment.IsOutdated(&a, h.versions.ProfileVersion()),
	}
}
