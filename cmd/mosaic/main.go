package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/avandeursen/mosaic/internal/cli"
	"github.com/avandeursen/mosaic/internal/db"
	"github.com/avandeursen/mosaic/internal/engine"
	"github.com/avandeursen/mosaic/internal/repository"
	"github.com/avandeursen/mosaic/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.mosaic/mosaic.db
	dbPath := os.Getenv("MOSAIC_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".mosaic", "mosaic.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if os.Getenv("MOSAIC_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Wire repositories
	resourceRepo := repository.NewSQLiteResourceRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Shared tree cache and behavior dispatcher
	cache := engine.NewCache()
	dispatcher := engine.NewDispatcher(resourceRepo, uow, cache, nil, logger)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("MOSAIC_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Resources:  service.NewResourceService(resourceRepo),
		Profiles:   service.NewProfileService(profileRepo),
		Dashboard:  service.NewDashboardService(resourceRepo, profileRepo, cache, logger, observer),
		Dispatcher: dispatcher,
		Cache:      cache,
	}

	// Detect interactive terminal for forms and the TUI.
	app.Interactive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
