package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"weather-widget/view"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <location>...",
		Short: "Show current weather and the 5-day forecast",
		Long: `Fetch current conditions and the forecast for a location and render them.

All arguments are joined into one location, so "search New York" and
"search 'New York'" are the same query.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, store, err := a.newWidget(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			searchErr := w.SearchFor(ctx, strings.Join(args, " "))

			term := view.NewTerminal(cmd.OutOrStdout(), a.colors())
			term.SetIcons(a.icons())
			if err := term.Render(w.Snapshot()); err != nil {
				return err
			}

			if searchErr != nil {
				// The rendered view already shows the failure
				return &ExitError{Code: 1, Err: searchErr}
			}
			return nil
		},
	}
}
