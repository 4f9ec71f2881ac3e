package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
)

func newAssessmentCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assessment",
		Aliases: []string{"assess"},
		Short:   "Show, generate and manage fit assessments",
	}

	var profileID int64

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Open the assessment drawer for an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOpportunityID(args[0])
			if err != nil {
				return err
			}
			return showAssessment(cmd, s, id)
		},
	}

	generate := &cobra.Command{
		Use:   "generate ID",
		Short: "Generate or regenerate the assessment of an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOpportunityID(args[0])
			if err != nil {
				return err
			}
			pid := s.app.ProfileID()
			if cmd.Flags().Changed("profile-id") {
				pid = profileID
			}
			return generateAssessment(cmd, s, id, pid)
		},
	}
	generate.Flags().Int64Var(&profileID, "profile-id", 0, "profile to assess against (default from JOBFIT_PROFILE_ID)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every assessment computed against a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pid := s.app.ProfileID()
			if cmd.Flags().Changed("profile-id") {
				pid = profileID
			}
			items, err := s.app.Assessments.ListForProfile(cmd.Context(), pid)
			if err != nil {
				return err
			}
			out, err := s.renderer().Assessments(items, s.app.State.ProfileVersion())
			if err != nil {
				return err
			}
			say(cmd, out)
			return nil
		},
	}
	list.Flags().Int64Var(&profileID, "profile-id", 0, "profile whose assessments to list (default from JOBFIT_PROFILE_ID)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete the assessment of an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOpportunityID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Assessments.Delete(cmd.Context(), id); err != nil {
				return err
			}
			say(cmd, s.renderer().Success(fmt.Sprintf("Deleted assessment of opportunity %d", id)))
			return nil
		},
	}

	cmd.AddCommand(show, generate, list, del)
	return cmd
}

func showAssessment(cmd *cobra.Command, s *session, id domain.OpportunityID) error {
	ctx := cmd.Context()
	r := s.renderer()

	if _, err := s.app.Store.EnsureLoaded(ctx, id); err != nil {
		return err
	}

	if err := s.app.Selection.Open(id); err != nil {
		say(cmd, r.NoAssessment(id))
		say(cmd, pterm.Gray(fmt.Sprintf("Run `jobfit assessment generate %d` to create one.", id)))
		return nil
	}
	defer s.app.Selection.Close()

	printDrawer(ctx, cmd, s, id)
	return nil
}

func generateAssessment(cmd *cobra.Command, s *session, id domain.OpportunityID, profileID int64) error {
	ctx := cmd.Context()
	r := s.renderer()

	// Load what exists so a failure can report the score that is kept.
	prior, err := s.app.Store.EnsureLoaded(ctx, id)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.
		WithWriter(cmd.OutOrStdout()).
		Start(fmt.Sprintf("Generating assessment for opportunity %d…", id))

	a, err := s.app.Store.Generate(ctx, id, profileID)
	if err != nil {
		if spinner != nil {
			spinner.Fail(describe(err))
		}
		if p := prior.Assessment(); p != nil {
			say(cmd, r.Error(fmt.Sprintf("Previous assessment kept: %d/7", p.FitScore)))
		}
		return err
	}
	if spinner != nil {
		spinner.Success(fmt.Sprintf("Assessed: %d/7 (%s)", a.FitScore, assessment.ClassifyScore(a.FitScore).Label()))
	}

	if err := s.app.Selection.Open(id); err != nil {
		return err
	}
	defer s.app.Selection.Close()

	printDrawer(ctx, cmd, s, id)
	return nil
}

// printDrawer renders the open selection from the live store record
func printDrawer(ctx context.Context, cmd *cobra.Command, s *session, id domain.OpportunityID) {
	view, ok := s.app.Selection.View()
	if !ok {
		say(cmd, s.renderer().NoAssessment(id))
		return
	}

	e, _ := s.app.Store.Lookup(view.OpportunityID)
	f := assessment.Evaluate(e, s.app.State.ProfileVersion())

	say(cmd, s.renderer().Drawer(findOpportunity(ctx, s, id), view.Assessment, f))
}

// findOpportunity looks up the drawer title; the drawer still renders without it
func findOpportunity(ctx context.Context, s *session, id domain.OpportunityID) *domain.Opportunity {
	opps, err := s.app.Client.ListOpportunities(ctx)
	if err != nil {
		s.app.Logger.Debug("opportunity lookup for drawer failed", "err", err)
		return nil
	}
	for i := range opps {
		if opps[i].ID == id {
			return &opps[i]
		}
	}
	return nil
}
