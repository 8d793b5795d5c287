package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/worldview/internal/theme"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the saved theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeGetCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the theme the explorer will start with",
		Args:  cobra.NoArgs,
		RunE:  runThemeGetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set light|dark",
		Short:     "Save an explicit theme choice",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark)},
		RunE:      runThemeSetCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch to the other theme and save it",
		Args:  cobra.NoArgs,
		RunE:  runThemeToggleCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the saved choice and follow the system again",
		Args:  cobra.NoArgs,
		RunE:  runThemeClearCmd,
	})
	return cmd
}

// withThemes runs fn against a manager bound to the preference store.
func withThemes(cmd *cobra.Command, fn func(*theme.Manager) error) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	st, err := a.openStore()
	if err != nil {
		return err
	}
	themes, err := a.themes(cmd.Context(), st)
	if err != nil {
		return err
	}
	return fn(themes)
}

func runThemeGetCmd(cmd *cobra.Command, _ []string) error {
	return withThemes(cmd, func(m *theme.Manager) error {
		origin := "system"
		if _, ok := m.Explicit(cmd.Context()); ok {
			origin = "saved"
		}
		return printTheme(cmd, m.Current(), origin)
	})
}

func runThemeSetCmd(cmd *cobra.Command, args []string) error {
	t, err := theme.Parse(args[0])
	if err != nil {
		return err
	}
	return withThemes(cmd, func(m *theme.Manager) error {
		if err := m.Set(cmd.Context(), t); err != nil {
			return err
		}
		return printTheme(cmd, t, "saved")
	})
}

func runThemeToggleCmd(cmd *cobra.Command, _ []string) error {
	return withThemes(cmd, func(m *theme.Manager) error {
		t, err := m.Toggle(cmd.Context())
		if err != nil {
			return err
		}
		return printTheme(cmd, t, "saved")
	})
}

func runThemeClearCmd(cmd *cobra.Command, _ []string) error {
	return withThemes(cmd, func(m *theme.Manager) error {
		t, err := m.Clear(cmd.Context())
		if err != nil {
			return err
		}
		return printTheme(cmd, t, "system")
	})
}

func printTheme(cmd *cobra.Command, t theme.Theme, origin string) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", t, origin); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
