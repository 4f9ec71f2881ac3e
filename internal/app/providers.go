package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobfit/internal/appstate"
	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/events"
	"github.com/honeycarbs/jobfit/internal/opportunity"
	"github.com/honeycarbs/jobfit/pkg/logging"
	n4j "github.com/honeycarbs/jobfit/pkg/neo4j"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// provideTrackerConfig extracts the backend client config from main config
func provideTrackerConfig(cfg config.Config) tracker.Config {
	return tracker.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}
}

// provideNeo4jConfig extracts Neo4j config from main config
func provideNeo4jConfig(cfg config.Config) n4j.Config {
	return n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
}

func provideState(cfg config.Config) (*appstate.State, error) {
	return appstate.Load(cfg.StateFile, appstate.VersionPolicy(cfg.Profile.VersionPolicy), cfg.Profile.Version)
}

// provideRedis connects when REDIS_URL is set. A failed connection only
// disables events.
func provideRedis(ctx context.Context, cfg config.Config, logger *logging.Logger) (*redis.Client, func()) {
	if cfg.RedisURL == "" {
		return nil, func() {}
	}

	rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, change events disabled", "err", err)
		return nil, func() {}
	}

	logger.Debug("redis connected, publishing change events")
	return rdb, func() { _ = rdb.Close() }
}

func provideStore(client *tracker.Client, rdb *redis.Client, origin events.Origin, logger *logging.Logger) (*assessment.Store, error) {
	opts := []assessment.Option{assessment.WithLogger(logger)}
	if rdb != nil {
		opts = append(opts, assessment.WithListener(events.NewPublisher(rdb, origin, logger).Listener()))
	}
	return assessment.NewStore(client, client, opts...)
}

func provideOpportunityService(client *tracker.Client, store *assessment.Store, state *appstate.State, logger *logging.Logger) (*opportunity.Service, error) {
	return opportunity.NewService(
		opportunity.WithAPI(client),
		opportunity.WithStore(store),
		opportunity.WithVersionSource(state),
		opportunity.WithLogger(logger),
	)
}
