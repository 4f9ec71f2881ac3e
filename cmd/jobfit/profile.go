package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/profile"
)

func newProfileCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and edit the profile assessments are computed against",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "List profile entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				p, err := s.app.Profile.Get(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), s.renderer().Profile(p))
				say(cmd, s.renderer().Success(fmt.Sprintf("Profile version %d", s.app.State.ProfileVersion())))
				return nil
			},
		},
		newEntryCmd(s, "add", "Add a profile entry", cobra.NoArgs),
		newEntryCmd(s, "update ID", "Replace a profile entry", cobra.ExactArgs(1)),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete a profile entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.app.Profile.DeleteEntry(cmd.Context(), args[0]); err != nil {
					return err
				}
				say(cmd, s.renderer().Success("Deleted entry "+args[0]))
				return nil
			},
		},
		newProfileGenerateCmd(s),
	)

	return cmd
}

func newEntryCmd(s *session, use, short string, args cobra.PositionalArgs) *cobra.Command {
	var (
		entryType              string
		title, org, start, end string
		notes                  []string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseEntryType(entryType)
			if err != nil {
				return err
			}

			in := domain.ProfileEntryCreate{Type: t, KeyNotes: notes}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("organization") {
				in.Organization = &org
			}
			if flags.Changed("start") {
				in.StartDate = &start
			}
			if flags.Changed("end") {
				in.EndDate = &end
			}

			var entry domain.ProfileEntry
			if len(args) == 1 {
				entry, err = s.app.Profile.UpdateEntry(cmd.Context(), args[0], in)
			} else {
				entry, err = s.app.Profile.AddEntry(cmd.Context(), in)
			}
			if err != nil {
				return err
			}

			say(cmd, s.renderer().Success(fmt.Sprintf("Saved %s entry %s", entry.Type, entry.ID)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&entryType, "type", string(domain.EntryExperience), "experience, education or personal")
	f.StringVar(&title, "title", "", "role, degree or heading")
	f.StringVar(&org, "organization", "", "employer or institution")
	f.StringVar(&start, "start", "", "start date")
	f.StringVar(&end, "end", "", "end date; empty means present")
	f.StringArrayVar(&notes, "note", nil, "key note; repeat for more")

	return cmd
}

func newProfileGenerateCmd(s *session) *cobra.Command {
	var in profile.GenerateInput

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate profile entries from files and links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := s.app.Profile.Generate(cmd.Context(), in)
			if err != nil {
				return err
			}

			msg := out.Message
			if msg == "" {
				msg = fmt.Sprintf("Generated %d entries", len(out.Entries))
			}
			say(cmd, s.renderer().Success(msg))
			fmt.Fprint(cmd.OutOrStdout(), s.renderer().Profile(domain.Profile{Entries: out.Entries}))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&in.FilePaths, "file", nil, "resume or document to upload; repeat for more")
	f.StringArrayVar(&in.Links, "link", nil, "profile URL; repeat for more")
	f.StringVar(&in.Description, "description", "", "extra context for generation")

	return cmd
}
