package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/events"
	"github.com/honeycarbs/jobfit/internal/opportunity"
	"github.com/honeycarbs/jobfit/internal/scheduler"
	"github.com/honeycarbs/jobfit/pkg/shutdown"
)

func newWatchCmd(s *session) *cobra.Command {
	var (
		every   time.Duration
		refetch bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the opportunity list periodically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			onRows := func(rows []opportunity.Row) {
				out, err := s.renderer().Opportunities(rows)
				if err != nil {
					cmd.PrintErrln(s.renderer().Error(describe(err)))
					return
				}
				say(cmd, pterm.Gray(fmt.Sprintf("— %s —", time.Now().Format("15:04:05"))))
				say(cmd, out)
			}

			sched, err := scheduler.New(s.app.Opportunities, every, refetch, onRows, s.app.Logger)
			if err != nil {
				return err
			}
			if err := sched.Start(ctx); err != nil {
				return err
			}

			// Changes from other processes invalidate the local entry and
			// refresh now. Our own events are skipped by origin.
			go s.app.FollowChanges(ctx, func(events.Event) {
				sched.Run(ctx)
			})

			<-ctx.Done()

			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			return shutdown.Stop(stopCtx, sched)
		},
	}

	cmd.Flags().DurationVar(&every, "every", 5*time.Minute, "refresh interval")
	cmd.Flags().BoolVar(&refetch, "refetch", false, "drop cached assessments on every refresh")

	return cmd
}
