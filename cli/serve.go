package cli

import (
	"github.com/spf13/cobra"

	"weather-widget/api"
	"weather-widget/logger"
	"weather-widget/view"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget page and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, store, err := a.newWidget(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			page, err := view.NewHTML(a.icons())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}

			server := api.NewServer(w, page, port, logger.WithComponent(a.logger, "api"))
			server.SetShutdownTimeout(a.cfg.Server.ShutdownTimeout)
			return server.Run(ctx)
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on (default from config)")
	return serveCmd
}
