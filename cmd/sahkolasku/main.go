// Package main provides the sahkolasku CLI application.
//
// Sahkolasku computes the monetary cost of metered electricity
// consumption over a date range, under a flat, day/night, or spot
// market contract, from a Caruna usage export and pakastin.fi spot
// price files.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Parse()

	if *showVersion {
		fmt.Printf("sahkolasku %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "cost":
		return runCostCommand(*configPath, args[1:])
	case "prices":
		return runPricesCommand(*configPath, args[1:])
	case "watch":
		return runWatchCommand(*configPath, args[1:])
	case "publish":
		return runPublishCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// contractFlags holds the pricing flags shared by the cost, watch,
// and publish commands.
type contractFlags struct {
	from      string
	to        string
	contract  string
	rate      float64
	dayRate   float64
	nightRate float64

	// passed records which flags appeared on the command line;
	// rate flags use it to distinguish "-rate 0" from no flag.
	passed map[string]bool
}

// register adds the shared flags to a flag set.
func (f *contractFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "window start, e.g. '31.7.2019 00:00' (default: first usage record)")
	fs.StringVar(&f.to, "to", "", "window end, e.g. '31.7.2021 23:00' (default: last usage record)")
	fs.StringVar(&f.contract, "contract", "", "contract kind: flat, daynight, or spot (default: from config)")
	fs.Float64Var(&f.rate, "rate", 0, "unit price for the flat contract")
	fs.Float64Var(&f.dayRate, "day-rate", 0, "day unit price for the daynight contract")
	fs.Float64Var(&f.nightRate, "night-rate", 0, "night unit price for the daynight contract")
}

// capture records which registered flags the parse actually saw.
// Call after fs.Parse.
func (f *contractFlags) capture(fs *flag.FlagSet) {
	f.passed = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.passed[fl.Name] = true
	})
}

// wasPassed reports whether the named flag appeared on the command
// line.
func (f *contractFlags) wasPassed(name string) bool {
	return f.passed[name]
}

// runCostCommand runs the cost command.
func runCostCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("cost", flag.ExitOnError)

	var cf contractFlags
	cf.register(fs)
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cf.capture(fs)

	cmd := &costCommand{
		contractFlags: cf,
		format:        *format,
		compact:       *compact,
		configPath:    configPath,
	}

	return cmd.Execute()
}

// runPricesCommand runs the prices command.
func runPricesCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("prices", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "rebuild the index from source files, bypassing the cache")
	format := fs.String("format", "", "output format (table, json, simple)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &pricesCommand{
		refresh:    *refresh,
		format:     *format,
		configPath: configPath,
	}

	return cmd.Execute()
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	var cf contractFlags
	cf.register(fs)
	format := fs.String("format", "", "output format (table, json, simple)")
	debounce := fs.Duration("debounce", 200*time.Millisecond, "coalesce window for file change bursts")

	if err := fs.Parse(args); err != nil {
		return err
	}
	cf.capture(fs)

	cmd := &watchCommand{
		contractFlags: cf,
		format:        *format,
		debounce:      *debounce,
		configPath:    configPath,
	}

	return cmd.Execute()
}

// runPublishCommand runs the publish command.
func runPublishCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)

	var cf contractFlags
	cf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	cf.capture(fs)

	cmd := &publishCommand{
		contractFlags: cf,
		configPath:    configPath,
	}

	return cmd.Execute()
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `Sahkolasku - electricity cost calculator

Usage:
  sahkolasku [flags] <command> [command flags]

Commands:
  cost        Compute cost and usage over a date window
  prices      Build and inspect the spot price index
  watch       Recompute the summary when input files change
  publish     Compute and publish the summary to Home Assistant
  config      Configuration management (show, path, reset)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Cost Command Flags:
  -from       Window start, e.g. '31.7.2019 00:00'
  -to         Window end, e.g. '31.7.2021 23:00'
  -contract   Contract kind (flat, daynight, spot)
  -rate       Flat contract unit price
  -day-rate   Day/night contract day price
  -night-rate Day/night contract night price
  -format     Output format (table, json, simple)
  -compact    Compact output

Examples:
  # Cost over the whole export under the configured contract
  sahkolasku cost

  # Day/night contract over two years
  sahkolasku cost -from '31.7.2019 00:00' -to '31.7.2021 23:00' \
      -contract daynight -day-rate 6 -night-rate 5

  # Spot market contract
  sahkolasku cost -contract spot

  # Rebuild the spot price index cache
  sahkolasku prices -refresh

  # Recompute whenever the export files change
  sahkolasku watch -contract spot

  # Publish the summary to Home Assistant
  sahkolasku publish

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
