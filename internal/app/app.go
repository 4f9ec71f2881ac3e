// Package app assembles the tracker client, the assessment store and the
// services shared by the CLI and the MCP server.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobfit/internal/appstate"
	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/discovery"
	"github.com/honeycarbs/jobfit/internal/events"
	"github.com/honeycarbs/jobfit/internal/export"
	"github.com/honeycarbs/jobfit/internal/opportunity"
	"github.com/honeycarbs/jobfit/internal/profile"
	storage "github.com/honeycarbs/jobfit/internal/storage/neo4j"
	"github.com/honeycarbs/jobfit/pkg/adzuna"
	"github.com/honeycarbs/jobfit/pkg/logging"
	n4j "github.com/honeycarbs/jobfit/pkg/neo4j"
	"github.com/honeycarbs/jobfit/pkg/sheets"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// App holds everything a command needs
type App struct {
	Config        config.Config
	Logger        *logging.Logger
	Client        *tracker.Client
	State         *appstate.State
	Store         *assessment.Store
	Selection     *assessment.Selection
	Assessments   *assessment.Service
	Opportunities *opportunity.Service
	Profile       *profile.Service

	// Redis is nil unless REDIS_URL is set
	Redis *redis.Client
	// Origin tags the change events this process publishes
	Origin events.Origin
}

func newApp(
	cfg config.Config,
	logger *logging.Logger,
	client *tracker.Client,
	state *appstate.State,
	store *assessment.Store,
	selection *assessment.Selection,
	assessments *assessment.Service,
	opportunities *opportunity.Service,
	profiles *profile.Service,
	rdb *redis.Client,
	origin events.Origin,
) *App {
	return &App{
		Config:        cfg,
		Logger:        logger,
		Client:        client,
		State:         state,
		Store:         store,
		Selection:     selection,
		Assessments:   assessments,
		Opportunities: opportunities,
		Profile:       profiles,
		Redis:         rdb,
		Origin:        origin,
	}
}

// FollowChanges invalidates entries that other processes changed until ctx
// is done, calling onChange (may be nil) after each one. It returns at once
// when Redis is not configured.
func (a *App) FollowChanges(ctx context.Context, onChange func(events.Event)) {
	if a.Redis == nil {
		return
	}

	f := events.NewFollower(a.Origin, a.Store, onChange, a.Logger)
	if err := f.Run(ctx, a.Redis); err != nil {
		a.Logger.Warn("change event subscription ended", "err", err)
	}
}

// ProfileID is the profile assessments are generated against
func (a *App) ProfileID() int64 {
	return a.Config.Profile.ID
}

// SheetsExporter builds the sheets exporter on demand
func (a *App) SheetsExporter(ctx context.Context) (*export.SheetsExporter, error) {
	if a.Config.SheetsCredsPath == "" {
		return nil, fmt.Errorf("sheets export needs GOOGLE_SHEETS_CREDENTIALS_PATH")
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: a.Config.SheetsCredsPath})
	if err != nil {
		return nil, err
	}
	return export.NewSheetsExporter(client, a.Logger), nil
}

// GraphMirror connects to Neo4j on demand. The returned func closes the driver.
func (a *App) GraphMirror(ctx context.Context) (*storage.GraphMirror, func(), error) {
	if !a.Config.Neo4jConfigured() {
		return nil, nil, fmt.Errorf("graph export needs NEO4J_URI, NEO4J_USERNAME and NEO4J_PASSWORD")
	}

	client, err := n4j.NewClient(ctx, provideNeo4jConfig(a.Config))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(context.Background()); err != nil {
			a.Logger.Warn("neo4j close failed", "err", err)
		}
	}
	return storage.NewGraphMirror(client), closeFn, nil
}

// Discovery builds the job board import on demand
func (a *App) Discovery() (*discovery.Service, error) {
	if a.Config.Adzuna.AppID == "" {
		return nil, fmt.Errorf("discovery needs ADZUNA_APP_ID and ADZUNA_APP_KEY")
	}

	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   a.Config.Adzuna.AppID,
		AppKey:  a.Config.Adzuna.AppKey,
		Country: a.Config.Adzuna.Country,
	})
	if err != nil {
		return nil, err
	}
	return discovery.NewService(client, a.Client, a.Opportunities, a.Logger)
}
