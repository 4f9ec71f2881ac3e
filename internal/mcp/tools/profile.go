package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// ProfileReader loads the profile
type ProfileReader interface {
	Get(ctx context.Context) (domain.Profile, error)
}

// GetProfileParams defines the arguments for the get_profile tool
type GetProfileParams struct{}

// WithProfileTools registers get_profile
func WithProfileTools(profiles ProfileReader) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "get_profile",
			Description: "Get the candidate profile entries that assessments are computed against",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ *GetProfileParams) (*sdkmcp.CallToolResult, any, error) {
			p, err := profiles.Get(ctx)
			if err != nil {
				return errorResult(err), nil, nil
			}
			return jsonResult(fmt.Sprintf("%d profile entries", len(p.Entries)), p), nil, nil
		})
	}
}
