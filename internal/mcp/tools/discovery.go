package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobfit/internal/discovery"
)

// Discoverer runs a job board import
type Discoverer interface {
	Run(ctx context.Context, req discovery.Request) (discovery.Result, error)
}

// DiscoverOpportunitiesParams defines the arguments for the discover_opportunities tool
type DiscoverOpportunitiesParams struct {
	Query      string `json:"query" jsonschema:"Job board search keywords"`
	Location   string `json:"location,omitempty" jsonschema:"Location filter"`
	MaxDaysOld int    `json:"max_days_old,omitempty" jsonschema:"Only postings newer than this many days"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum opportunities to create"`
	DryRun     bool   `json:"dry_run,omitempty" jsonschema:"Report candidates without creating them"`
}

// WithDiscoveryTool registers discover_opportunities. A nil discoverer registers nothing.
func WithDiscoveryTool(d Discoverer) Option {
	return func(reg *registry) {
		if d == nil {
			return
		}

		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "discover_opportunities",
			Description: "Search the Adzuna job board and create opportunities for postings not tracked yet",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params *DiscoverOpportunitiesParams) (*sdkmcp.CallToolResult, any, error) {
			res, err := d.Run(ctx, discovery.Request{
				Query:      params.Query,
				Location:   params.Location,
				MaxDaysOld: params.MaxDaysOld,
				Limit:      params.Limit,
				DryRun:     params.DryRun,
			})
			if err != nil {
				return errorResult(err), nil, nil
			}

			if params.DryRun {
				return jsonResult(fmt.Sprintf("%d candidates, %d skipped", len(res.Candidates), res.Skipped), res.Candidates), nil, nil
			}
			return jsonResult(fmt.Sprintf("created %d opportunities, %d skipped", len(res.Created), res.Skipped), res.Created), nil, nil
		})
	}
}
