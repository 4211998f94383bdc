package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Migueldelg/RadarOfertas/internal/amazon"
	"github.com/Migueldelg/RadarOfertas/internal/archive"
	"github.com/Migueldelg/RadarOfertas/internal/catalog"
	"github.com/Migueldelg/RadarOfertas/internal/cli"
	"github.com/Migueldelg/RadarOfertas/internal/config"
	"github.com/Migueldelg/RadarOfertas/internal/deal"
	"github.com/Migueldelg/RadarOfertas/internal/history"
	"github.com/Migueldelg/RadarOfertas/internal/logging"
	"github.com/Migueldelg/RadarOfertas/internal/notify"
	"github.com/Migueldelg/RadarOfertas/internal/selector"
)

func runOnce(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 10*time.Minute, "Cycle timeout")
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
		logger.Error().Err(err).Msg("cycle setup failed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	published, err := sel.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("cycle failed")
		return 1
	}

	logger.Info().Int("published", published).Msg("cycle finished")
	return 0
}

// buildSelector wires the full selection pipeline from configuration.
func buildSelector(cfg *config.Config, catalogPath string, dev bool, logger zerolog.Logger) (*selector.Selector, error) {
	token, chatID, err := cfg.Credentials(dev)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg, catalogPath)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.NewTelegram(token, chatID, logger)
	if err != nil {
		return nil, err
	}

	var store history.Store
	if dev {
		logger.Info().Msg("dev mode: history file will not be read or written")
		store = history.Discard{}
	} else {
		store = history.NewFileStore(cfg.HistoryFile, cfg.HistoryWindow(), logger)
	}

	client := amazon.NewClient(cfg.AmazonBaseURL, logger)
	source := amazon.NewSource(client, cfg.AmazonBaseURL, cfg.AffiliateTag)

	opts := selector.Options{
		Threshold:         cfg.SimilarityThreshold,
		StopWords:         cat.StopWords,
		VariantVocabulary: cat.VariantVocabulary,
		Brands:            cat.PriorityBrands,
		RepeatExempt:      cat.RepeatExempt,
		ClassCooldowns:    cat.ClassCooldowns(),
		GlobalCooldown:    cat.GlobalCooldown(),
	}

	if cfg.ArchiveDSN != "" && !dev {
		arch, err := archive.Open(cfg.ArchiveDSN)
		if err != nil {
			return nil, err
		}
		opts.OnPublish = func(p deal.Product, c catalog.Category, at time.Time) {
			if err := arch.Record(context.Background(), p, c, at); err != nil {
				logger.Error().Err(err).Str("asin", p.ASIN).Msg("archive record failed")
			}
		}
	}

	return selector.New(source, notifier, store, cat.Categories, opts, logger), nil
}

func loadCatalog(cfg *config.Config, override string) (*catalog.Config, error) {
	path := override
	if path == "" {
		path = cfg.CatalogFile
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}
