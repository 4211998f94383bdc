package app

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Migueldelg/RadarOfertas/internal/cli"
	"github.com/Migueldelg/RadarOfertas/internal/config"
	"github.com/Migueldelg/RadarOfertas/internal/globaltime"
	"github.com/Migueldelg/RadarOfertas/internal/history"
	"github.com/Migueldelg/RadarOfertas/internal/logging"
)

type statusResponse struct {
	PublishedInWindow int               `json:"published_in_window"`
	WindowHours       int               `json:"window_hours"`
	RecentCategories  []string          `json:"recent_categories,omitempty"`
	RecentTitles      []string          `json:"recent_titles,omitempty"`
	CooldownAges      map[string]string `json:"cooldown_ages,omitempty"`
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	host := fs.String("host", "127.0.0.1", "Bind host")
	port := fs.Int("port", 8090, "Bind port")

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

	store := history.NewFileStore(cfg.HistoryFile, cfg.HistoryWindow(), logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/status", func(c echo.Context) error {
		now := globaltime.Now()
		state := store.Load(now)

		ages := make(map[string]string, len(state.Cooldowns))
		for key, t := range state.Cooldowns {
			ages[key] = now.Sub(t).Round(time.Minute).String()
		}

		return c.JSON(http.StatusOK, statusResponse{
			PublishedInWindow: len(state.Published),
			WindowHours:       cfg.HistoryWindowHours,
			RecentCategories:  state.RecentCategories,
			RecentTitles:      state.RecentTitles,
			CooldownAges:      ages,
		})
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	logger.Info().Str("addr", addr).Msg("status server listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("status server failed")
		return 1
	}
	return 0
}
