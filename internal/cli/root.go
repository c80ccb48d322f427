package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/ripasso/internal/config"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Plans       service.PlanService
	Simulations service.SimulationService
	Profiles    service.ProfileService

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Wizards and the
	// checklist refuse to start without one.
	IsInteractive func() bool

	// Now drives relative dates in output. Defaults to time.Now.
	Now func() time.Time

	// Bootstrap loads configuration and wires the services before any
	// command runs. Left nil when the App is assembled by hand.
	Bootstrap func(configFile string) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (a *App) config() *config.Config {
	if a.Config != nil {
		return a.Config
	}
	return config.Defaults()
}

// NewRootCmd creates the top-level "ripasso" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "ripasso",
		Short:         "Exam study planner and mock exam generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			return app.Bootstrap(configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./ripasso.yaml or ~/.config/ripasso/ripasso.yaml)")

	root.AddCommand(
		newPlanCmd(app),
		newExamCmd(app),
		newProfileCmd(app),
		newServeCmd(app),
	)

	return root
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
