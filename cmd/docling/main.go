package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docling/internal/common"
	"github.com/ternarybob/docling/internal/converter"
	"github.com/ternarybob/docling/internal/queue"
	"github.com/ternarybob/docling/internal/server"
	"github.com/ternarybob/docling/internal/tempfiles"
)

var (
	// Command-line flags
	configFile    = flag.String("config", "", "Configuration file path (TOML)")
	serverHost    = flag.String("host", "", "Server host (overrides config)")
	serverPort    = flag.Int("port", 0, "Server port (overrides config)")
	authToken     = flag.String("auth-token", "", "Bearer token for API auth (overrides config)")
	tier          = flag.String("processing-tier", "", "Default processing tier: lightweight, standard or advanced (overrides config)")
	tempFolder    = flag.String("temp-folder", "", "Scratch directory for job files (overrides config)")
	maxConcurrent = flag.Int("max-concurrent", 0, "Worker count, 1-3 (overrides config)")
	logLevel      = flag.String("log-level", "", "Log level: DEBUG, INFO, WARNING, ERROR (overrides config)")
	showVersion   = flag.Bool("version", false, "Print version information")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Docling version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner

	// Auto-discover config file if not specified
	path := *configFile
	if path == "" {
		if _, err := os.Stat("docling.toml"); err == nil {
			path = "docling.toml"
		}
	}

	var err error
	config, err = common.LoadFromFile(path)
	if err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Str("path", path).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, common.FlagOverrides{
		Host:          *serverHost,
		Port:          *serverPort,
		AuthToken:     *authToken,
		Tier:          *tier,
		TempFolder:    *tempFolder,
		MaxConcurrent: *maxConcurrent,
		LogLevel:      *logLevel,
	})

	if err := config.Validate(); err != nil {
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Str("version", common.GetVersion()).
		Str("host", config.Server.Host).
		Int("port", config.Server.Port).
		Str("processing_tier", config.Processing.Tier).
		Int("max_concurrent_jobs", config.Processing.MaxConcurrentJobs).
		Bool("auth_enabled", config.Auth.Token != "").
		Msg("service_starting")

	// Reclaim scratch directories left behind by a previous run, then keep
	// sweeping on the configured schedule.
	tempManager := tempfiles.NewManager(config.TempDir(), logger)
	tempManager.CleanupOrphans(tempfiles.OrphanAge)

	var sweeper *cron.Cron
	if config.Cleanup.SweepSchedule != "" {
		sweeper = cron.New()
		if _, err := sweeper.AddFunc(config.Cleanup.SweepSchedule, func() {
			tempManager.CleanupOrphans(tempfiles.OrphanAge)
		}); err != nil {
			logger.Fatal().Err(err).Str("schedule", config.Cleanup.SweepSchedule).Msg("Invalid cleanup schedule")
			os.Exit(1)
		}
		sweeper.Start()
	}

	engine := converter.NewService(config, logger)
	orchestrator := queue.NewOrchestrator(config, engine, tempManager, logger)
	orchestrator.Start()

	srv := server.New(config, orchestrator, logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Fatal().Str("panic", fmt.Sprintf("%v", r)).Msg("Server goroutine panicked")
			}
		}()

		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
			os.Exit(1)
		}
	}()

	// Give the listener a moment to bind before announcing readiness
	time.Sleep(100 * time.Millisecond)

	// Readiness contract: supervisors wait for this exact line on stdout.
	// All logging goes to stderr; this is the only stdout output.
	fmt.Fprintf(os.Stdout, "DOCLING_READY|%s|%d\n", config.Server.Host, config.Server.Port)

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)).
		Msg("service_started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("service_stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	if sweeper != nil {
		sweeper.Stop()
	}
	orchestrator.Stop()

	logger.Info().Msg("service_stopped")
}
