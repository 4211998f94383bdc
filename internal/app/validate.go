package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Migueldelg/RadarOfertas/internal/catalog"
)

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	file := fs.String("file", "", "Catalog config file to validate (required)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if strings.TrimSpace(*file) == "" {
		fmt.Fprintln(os.Stderr, "--file is required")
		return 2
	}

	cfg, err := catalog.Load(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "INVALID %s: %v\n", *file, err)
		return 1
	}

	weekly, titled := 0, 0
	for _, cat := range cfg.Categories {
		if cat.WeeklyLimit {
			weekly++
		}
		if cat.CheckTitles {
			titled++
		}
	}
	fmt.Printf(
		"valid: %d categories (%d weekly-limited, %d title-checked), %d priority brands\n",
		len(cfg.Categories), weekly, titled, len(cfg.PriorityBrands),
	)
	return 0
}
