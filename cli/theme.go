package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weather-widget/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the display theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			th, store, err := a.openTheme(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), th.Mode())
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			th, store, err := a.openTheme(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if _, err := th.Toggle(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), th.Mode())
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:       "set dark|light",
		Short:     "Set the display theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Dark), string(theme.Light)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}

			th, store, err := a.openTheme(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := th.Set(cmd.Context(), mode == theme.Dark); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), th.Mode())
			return nil
		},
	}

	themeCmd.AddCommand(toggleCmd, setCmd)
	return themeCmd
}
