package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/discovery"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/render"
)

func newOpportunitiesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunities",
		Aliases: []string{"opps", "opp"},
		Short:   "List and manage opportunities",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List opportunities with their fit badges",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rows, err := s.app.Opportunities.List(cmd.Context())
				if err != nil {
					return err
				}
				out, err := s.renderer().Opportunities(rows)
				if err != nil {
					return err
				}
				say(cmd, out)
				return nil
			},
		},
		newOpportunityAddCmd(s),
		newOpportunityDiscoverCmd(s),
		&cobra.Command{
			Use:   "enrich URL",
			Short: "Create an opportunity from a job posting URL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				opp, err := s.app.Opportunities.Enrich(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				say(cmd, s.renderer().Success(fmt.Sprintf("Added #%d %s @ %s", opp.ID, opp.Title, opp.Company)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an opportunity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseOpportunityID(args[0])
				if err != nil {
					return err
				}
				if err := s.app.Opportunities.Delete(cmd.Context(), id); err != nil {
					return err
				}
				say(cmd, s.renderer().Success(fmt.Sprintf("Deleted opportunity %d", id)))
				return nil
			},
		},
	)

	return cmd
}

func newOpportunityAddCmd(s *session) *cobra.Command {
	var (
		in                                          domain.OpportunityCreate
		level, posting, resume, coverLetter, status string
		minSalary, maxSalary                        int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an opportunity from manually entered fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("level") {
				in.Level = &level
			}
			if flags.Changed("min-salary") {
				in.MinSalary = &minSalary
			}
			if flags.Changed("max-salary") {
				in.MaxSalary = &maxSalary
			}
			if flags.Changed("posting-link") {
				in.PostingLink = &posting
			}
			if flags.Changed("resume-link") {
				in.ResumeLink = &resume
			}
			if flags.Changed("cover-letter-link") {
				in.CoverLetterLink = &coverLetter
			}
			in.Status = domain.Status(status)

			opp, err := s.app.Opportunities.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			say(cmd, s.renderer().Success(fmt.Sprintf("Added #%d %s @ %s (%s)", opp.ID, opp.Title, opp.Company, opp.Status)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "job title (required)")
	f.StringVar(&in.Company, "company", "", "company name (required)")
	f.StringVar(&level, "level", "", "seniority level")
	f.IntVar(&minSalary, "min-salary", 0, "lower salary bound")
	f.IntVar(&maxSalary, "max-salary", 0, "upper salary bound")
	f.StringVar(&posting, "posting-link", "", "job posting URL")
	f.StringVar(&resume, "resume-link", "", "resume URL")
	f.StringVar(&coverLetter, "cover-letter-link", "", "cover letter URL")
	f.StringVar(&status, "status", string(domain.DefaultStatus), "one of: To Apply, Applied, Screening, Interviewing, Rejected, Did Not Apply")

	return cmd
}

func newOpportunityDiscoverCmd(s *session) *cobra.Command {
	var req discovery.Request

	cmd := &cobra.Command{
		Use:   "discover QUERY",
		Short: "Import job board search results as opportunities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.app.Discovery()
			if err != nil {
				return err
			}

			req.Query = args[0]
			res, err := svc.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			r := s.renderer()
			if req.DryRun {
				for _, c := range res.Candidates {
					say(cmd, fmt.Sprintf("  %s @ %s  %s", c.Title, c.Company, render.SalaryRange(c.MinSalary, c.MaxSalary)))
				}
				say(cmd, r.Success(fmt.Sprintf("%d new, %d already tracked or incomplete (dry run)", len(res.Candidates), res.Skipped)))
				return nil
			}
			for _, o := range res.Created {
				say(cmd, fmt.Sprintf("  #%d %s @ %s", o.ID, o.Title, o.Company))
			}
			say(cmd, r.Success(fmt.Sprintf("Added %d, skipped %d", len(res.Created), res.Skipped)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Location, "where", "", "location filter")
	f.IntVar(&req.MaxDaysOld, "max-days-old", 0, "only postings newer than this many days")
	f.IntVar(&req.Limit, "limit", 10, "maximum opportunities to add")
	f.BoolVar(&req.DryRun, "dry-run", false, "show what would be added")

	return cmd
}
