package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Migueldelg/RadarOfertas/internal/cli"
	"github.com/Migueldelg/RadarOfertas/internal/config"
	"github.com/Migueldelg/RadarOfertas/internal/logging"
)

func runLoop(args []string) int {
	fs := flag.NewFlagSet("loop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	schedule := fs.String("schedule", "@every 15m", "Cron schedule for selection cycles")
	timeout := fs.Duration("timeout", 10*time.Minute, "Per-cycle timeout")
	dev := fs.Bool("dev", false, "Publish to the dev channel and leave the history file untouched")
	catalogPath := fs.String("catalog", "", "Catalog config file (overrides CATALOG_FILE)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if _, err := envLoader.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	sel, err := buildSelector(cfg, *catalogPath, *dev, logger)
	if err != nil {
		logger.Error().Err(err).Msg("loop setup failed")
		return 1
	}

	cycle := func() {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		published, err := sel.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("cycle failed")
			return
		}
		logger.Info().Int("published", published).Msg("cycle finished")
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*schedule, cycle); err != nil {
		logger.Error().Err(err).Str("schedule", *schedule).Msg("invalid schedule")
		return 2
	}

	logger.Info().Str("schedule", *schedule).Msg("loop started")
	cycle()
	scheduler.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("loop stopping")
	<-scheduler.Stop().Done()
	return 0
}
