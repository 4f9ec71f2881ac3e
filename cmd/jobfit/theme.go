package main

import (
	"github.com/spf13/cobra"
)

func newThemeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the colour theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			say(cmd, string(s.app.State.Theme()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := s.app.State.ToggleTheme()
			if err != nil {
				return err
			}
			say(cmd, s.renderer().Success("Theme set to "+string(t)))
			return nil
		},
	})

	return cmd
}
