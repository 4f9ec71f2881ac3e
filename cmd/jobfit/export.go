package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/export"
)

func newExportCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export opportunities and assessments",
	}

	var target export.SheetTarget
	sheetsCmd := &cobra.Command{
		Use:   "sheets",
		Short: "Replace a Google Sheets tab with the opportunity list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			exporter, err := s.app.SheetsExporter(ctx)
			if err != nil {
				return err
			}
			rows, err := s.app.Opportunities.List(ctx)
			if err != nil {
				return err
			}

			res, err := exporter.Export(ctx, target, export.Records(rows))
			if err != nil {
				return err
			}
			say(cmd, s.renderer().Success(fmt.Sprintf("Wrote %d rows to %s", res.WrittenRows, res.Tab)))
			return nil
		},
	}
	sheetsCmd.Flags().StringVar(&target.SpreadsheetID, "spreadsheet", "", "spreadsheet ID (required)")
	sheetsCmd.Flags().StringVar(&target.Tab, "tab", "Opportunities", "tab to overwrite")
	_ = sheetsCmd.MarkFlagRequired("spreadsheet")

	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Mirror opportunities and assessments into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			mirror, closeFn, err := s.app.GraphMirror(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			rows, err := s.app.Opportunities.List(ctx)
			if err != nil {
				return err
			}

			if err := mirror.Sync(ctx, s.app.ProfileID(), export.Records(rows)); err != nil {
				return err
			}
			say(cmd, s.renderer().Success(fmt.Sprintf("Mirrored %d opportunities", len(rows))))
			return nil
		},
	}

	cmd.AddCommand(sheetsCmd, graphCmd)
	return cmd
}
