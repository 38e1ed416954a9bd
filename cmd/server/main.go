package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"community-messaging/cache"
	"community-messaging/directory"
	"community-messaging/internal"
	"community-messaging/moderation"
	"community-messaging/observability"
	"community-messaging/runtime/workers"
	"community-messaging/services"
	"community-messaging/storage"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the process lifecycle and
// centralizes error reporting, so every defer fires before the program
// exits and the wiring stays testable outside of main.
func run() (int, error) {
	// 1. Configuration & logger
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	censoredChar, err := internal.CharacterRune(config.CensoredChar)
	if err != nil {
		return exitConfig, err
	}

	logger := newLogger(config.LogLevel)
	slog.SetDefault(logger)

	// 2. Database
	db, err := storage.Open(config.DatabasePath, config.BusyTimeout)
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		return exitRuntime, fmt.Errorf("migration failed: %w", err)
	}
	store := storage.NewManager(db, logger)

	// 3. Core components
	metrics := observability.NewMonitoringManager(logger)

	participants, err := cache.NewParticipantCache(config.CacheCapacity, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("cache setup failed: %w", err)
	}

	filter, err := moderation.NewFilter(config.CensoredWords, censoredChar)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation setup failed: %w", err)
	}

	users := directory.NewHTTPDirectory(config.DirectoryURL, config.DirectoryAPIKey, logger)

	access := services.NewAccessControl(participants, store.Conversations(), metrics, logger)
	registry := &services.Registry{
		Access: access,
		Conversations: services.NewConversationService(
			access, store.Conversations(), store.Messages(), store.Receipts(),
			users, participants, logger),
		Messages: services.NewMessageService(
			access, store.Messages(), users, filter, metrics, logger),
		Receipts: services.NewReadReceiptService(
			access, store.Receipts(), store.Conversations(), metrics, logger),
	}

	// 4. Background workers under supervision
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	debugServer := internal.NewDebugServer(store, registry, metrics, participants, config.DebugPort, logger)

	supervisor := workers.NewSupervisor(logger, config.WorkerRestartDelay)
	supervisor.Add(
		workers.NewTelemetryWorker(logger, metrics, config.MetricInterval),
		debugServer.Worker(),
	)

	logger.Info("messaging core up",
		"db", config.DatabasePath,
		"cache_capacity", config.CacheCapacity,
		"debug_port", config.DebugPort,
	)

	supervisor.Run(ctx)

	logger.Info("messaging core stopped")
	return exitOK, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
