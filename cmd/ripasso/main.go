package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/ripasso/internal/cli"
	"github.com/alexanderramin/ripasso/internal/config"
	"github.com/alexanderramin/ripasso/internal/db"
	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}

	// Detect interactive terminal for the wizard and checklist.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Bootstrap = func(configFile string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

		database, err = db.OpenDB(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		// Wire repositories
		planRepo := repository.NewSQLitePlanRepo(database)
		simRepo := repository.NewSQLiteSimulationRepo(database)
		profileRepo := repository.NewSQLiteProfileRepo(database)

		uow := db.NewSQLiteUnitOfWork(database)

		var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		if cfg.Log.UseCases {
			observer = service.NewSlogUseCaseObserver(logger)
		}

		app.Config = cfg
		app.Logger = logger
		app.Plans = service.NewPlanService(planRepo, uow, nil, observer)
		app.Simulations = service.NewSimulationService(simRepo, profileRepo, uow, nil, observer)
		app.Profiles = service.NewProfileService(profileRepo, observer)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
