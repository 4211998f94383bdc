package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Migueldelg/RadarOfertas/internal/cli"
	"github.com/Migueldelg/RadarOfertas/internal/config"
	"github.com/Migueldelg/RadarOfertas/internal/globaltime"
	"github.com/Migueldelg/RadarOfertas/internal/history"
	"github.com/Migueldelg/RadarOfertas/internal/logging"
)

type historyOutput struct {
	WindowHours      int               `json:"window_hours"`
	Published        map[string]string `json:"published"`
	RecentCategories []string          `json:"recent_categories,omitempty"`
	RecentTitles     []string          `json:"recent_titles,omitempty"`
	Cooldowns        map[string]string `json:"cooldowns,omitempty"`
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", "table", "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *format != "table" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Invalid format: %s\n", *format)
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

	logger, err := logging.New(cfg.Environment, "error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	now := globaltime.Now()
	state := history.NewFileStore(cfg.HistoryFile, cfg.HistoryWindow(), logger).Load(now)

	if *format == "json" {
		out := historyOutput{
			WindowHours:      cfg.HistoryWindowHours,
			Published:        make(map[string]string, len(state.Published)),
			RecentCategories: state.RecentCategories,
			RecentTitles:     state.RecentTitles,
			Cooldowns:        make(map[string]string, len(state.Cooldowns)),
		}
		for asin, t := range state.Published {
			out.Published[asin] = t.Format(time.RFC3339)
		}
		for key, t := range state.Cooldowns {
			out.Cooldowns[key] = t.Format(time.RFC3339)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Printf("window: %dh\n", cfg.HistoryWindowHours)
	fmt.Printf("published ASINs in window: %d\n", len(state.Published))
	asins := make([]string, 0, len(state.Published))
	for asin := range state.Published {
		asins = append(asins, asin)
	}
	sort.Strings(asins)
	for _, asin := range asins {
		fmt.Printf("  %s  %s\n", asin, state.Published[asin].Format(time.RFC3339))
	}
	if len(state.RecentCategories) > 0 {
		fmt.Printf("recent categories: %v\n", state.RecentCategories)
	}
	if len(state.RecentTitles) > 0 {
		fmt.Println("recent titles:")
		for _, title := range state.RecentTitles {
			fmt.Printf("  %s\n", title)
		}
	}
	if len(state.Cooldowns) > 0 {
		fmt.Println("cooldowns:")
		keys := make([]string, 0, len(state.Cooldowns))
		for key := range state.Cooldowns {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			age := now.Sub(state.Cooldowns[key]).Round(time.Minute)
			fmt.Printf("  %-40s %s ago\n", key, age)
		}
	}
	return 0
}
