package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/app"
	"github.com/honeycarbs/jobfit/internal/config"
	"github.com/honeycarbs/jobfit/internal/render"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// session is built once per invocation by the root pre-run hook
type session struct {
	app     *app.App
	cleanup func()
	verbose bool
}

func (s *session) renderer() *render.Renderer {
	return render.New(s.app.State.Theme())
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "jobfit",
		Short:         "Track job opportunities and how well they fit your profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			level := "warn"
			if os.Getenv("LOG_LEVEL") != "" {
				level = cfg.LogLevel
			}
			if s.verbose {
				level = "debug"
			}
			logger := logging.NewConsole(level)

			a, cleanup, err := app.Initialize(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			s.app = a
			s.cleanup = cleanup
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if s.cleanup != nil {
				s.cleanup()
			}
			if s.app != nil {
				_ = s.app.Logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newOpportunitiesCmd(s),
		newAssessmentCmd(s),
		newProfileCmd(s),
		newThemeCmd(s),
		newWatchCmd(s),
		newExportCmd(s),
	)

	return root
}

// say writes a line to the command's stdout
func say(cmd *cobra.Command, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), a...)
}
