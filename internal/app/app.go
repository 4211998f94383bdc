package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "run", "run-once":
		return runOnce(args[1:])
	case "loop":
		return runLoop(args[1:])
	case "serve":
		return runServe(args[1:])
	case "history":
		return runHistory(args[1:])
	case "validate":
		return runValidate(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "radarofertas CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  radarofertas <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run       Execute one selection cycle and exit (for cron)")
	fmt.Fprintln(os.Stderr, "  run-once  Alias for run")
	fmt.Fprintln(os.Stderr, "  loop      Execute selection cycles on a schedule")
	fmt.Fprintln(os.Stderr, "  serve     Start the status HTTP server")
	fmt.Fprintln(os.Stderr, "  history   Print the pruned publication history")
	fmt.Fprintln(os.Stderr, "  validate  Validate a catalog config file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"radarofertas <command> -h\" for command-specific flags.")
}
