package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobfit/internal/app"
	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/mcp"
	mcptools "github.com/honeycarbs/jobfit/internal/mcp/tools"
	"github.com/honeycarbs/jobfit/pkg/logging"
	"github.com/honeycarbs/jobfit/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, cleanup, err := app.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	opts := []mcptools.Option{
		mcptools.WithOpportunityTools(a.Opportunities),
		mcptools.WithAssessmentTools(a.Store, a.State, a.ProfileID()),
		mcptools.WithProfileTools(a.Profile),
	}
	if d, err := a.Discovery(); err == nil {
		opts = append(opts, mcptools.WithDiscoveryTool(d))
		logger.Info("Adzuna discovery enabled", "country", cfg.Adzuna.Country)
	} else {
		logger.Info("Adzuna discovery disabled", "reason", err.Error())
	}

	srv := mcp.NewServer(logger, cfg, opts...)

	// Drop cached assessments that CLI sessions change while we run
	go a.FollowChanges(ctx, nil)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
		shutdown.Func(func(context.Context) error {
			cancel()
			return nil
		}),
	)

	logger.Info("MCP server initialized and starting", "backend", a.Client.BaseURL(), "profile_id", a.ProfileID())

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
