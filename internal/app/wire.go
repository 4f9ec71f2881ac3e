//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobfit/internal/appstate"
	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/events"
	"github.com/honeycarbs/jobfit/internal/profile"
	"github.com/honeycarbs/jobfit/pkg/logging"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// Initialize creates the App with all dependencies wired up
func Initialize(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Backend
		provideTrackerConfig,
		tracker.NewClient,

		// Local state
		provideState,

		// Change events
		provideRedis,
		events.NewOrigin,

		// Assessments
		provideStore,
		assessment.NewSelection,
		assessment.NewService,
		wire.Bind(new(assessment.RecordAPI), new(*tracker.Client)),

		// Services
		provideOpportunityService,
		profile.NewService,
		wire.Bind(new(profile.API), new(*tracker.Client)),
		wire.Bind(new(profile.ChangeRecorder), new(*appstate.State)),

		newApp,
	)

	return nil, nil, nil
}
