package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/ripasso/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := api.NewHandler(app.Plans, app.Simulations, app.Profiles, app.logger())
			fmt.Fprintf(out(cmd), "Serving the ripasso API on %s\n", addr)
			return api.Serve(ctx, addr, api.NewRouter(handler, cfg.Server.AllowedOrigins), app.logger())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
