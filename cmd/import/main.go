package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kweston/stridelog/internal/config"
	"github.com/kweston/stridelog/internal/logger"
	"github.com/kweston/stridelog/internal/repository"
	"github.com/kweston/stridelog/internal/service"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "stridelog-import",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	userID := flag.String("user", "", "User ID to import runs for (required)")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: import -user <user-id> [flags] <file>...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no files given")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	runRepo := repository.NewRunRepository(db)
	importService := service.NewImportService(runRepo, appLogger, &service.ImportConfig{
		MaxFileSizeMB: cfg.Import.MaxFileSizeMB,
	})

	ctx := logger.SetUserID(context.Background(), *userID)
	results := importService.ImportPaths(ctx, *userID, paths)

	failed := 0
	for _, result := range results {
		status := "ok"
		if !result.Success {
			status = "FAILED"
			failed++
		}
		fmt.Printf("%-8s %s: %s\n", status, result.FileName, result.Message)
	}

	// Imported runs may complete open goals.
	goalRepo := repository.NewGoalRepository(db)
	goalService := service.NewGoalService(goalRepo, runRepo, appLogger)
	completed, err := goalService.SyncCompletion(ctx, *userID, time.Now())
	if err != nil {
		appLogger.WithError(err).Warn("Failed to sync goal completion")
	}
	for _, goal := range completed {
		fmt.Printf("goal completed: %s\n", goal.Name)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
