package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jtuomin/sahkolasku/pkg/config"
	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/display"
	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/pricestore"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
	"github.com/jtuomin/sahkolasku/pkg/publisher"
	"github.com/jtuomin/sahkolasku/pkg/reader"
	"github.com/jtuomin/sahkolasku/pkg/timeparse"
	"github.com/jtuomin/sahkolasku/pkg/usage"
	"github.com/jtuomin/sahkolasku/pkg/watcher"
)

// app bundles the components every command needs.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	parser timeparse.Parser
	files  reader.Reader
}

// newApp loads configuration and wires the shared components.
func newApp(configPath string) (*app, error) {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})

	parser, err := timeparse.New(timeparse.Config{Timezone: cfg.Timezone})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		parser: parser,
		files:  reader.New(reader.Config{}, log),
	}, nil
}

// applyContractFlags overlays flag overrides on the configured
// contract. Only flags the user actually passed override, so a zero
// rate is a valid override, not an unset flag.
func (a *app) applyContractFlags(cf contractFlags) {
	if cf.contract != "" {
		a.cfg.Contract.Kind = cf.contract
	}
	if cf.wasPassed("rate") {
		a.cfg.Contract.Rate = cf.rate
	}
	if cf.wasPassed("day-rate") {
		a.cfg.Contract.DayRate = cf.dayRate
	}
	if cf.wasPassed("night-rate") {
		a.cfg.Contract.NightRate = cf.nightRate
	}
}

// loadRecords reads the usage export and normalizes it into hourly
// records.
func (a *app) loadRecords() ([]usage.Record, error) {
	rows, err := a.files.ReadUsageFile(a.cfg.Usage.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage export: %w", err)
	}

	normalizer := usage.NewNormalizer(usage.Config{
		Sentinel: a.cfg.Usage.NoDataSentinel,
	}, a.parser, a.log)

	return normalizer.Normalize(rows)
}

// buildIndex builds the spot price index from the configured source
// files.
func (a *app) buildIndex() (*pricing.Index, error) {
	if len(a.cfg.Pricing.SpotFiles) == 0 {
		return nil, config.ErrNoSpotFiles
	}

	sources, err := a.files.ReadPriceFiles(a.cfg.Pricing.SpotFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read price files: %w", err)
	}

	builder := pricing.NewBuilder(pricing.BuilderConfig{
		VAT: a.cfg.Pricing.VAT,
	}, a.log)

	return builder.Build(sources...)
}

// loadIndex returns the spot price index, served from the cache when
// it is warm. A refresh, or a cold cache, rebuilds from the source
// files and re-caches.
func (a *app) loadIndex(refresh bool) (*pricing.Index, error) {
	store, err := pricestore.Open(a.cfg.Storage.DBPath, a.log)
	if err != nil {
		a.log.Warn("price cache unavailable, building from sources", "error", err)
		return a.buildIndex()
	}
	defer store.Close()

	if !refresh {
		index, ok, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load price cache: %w", err)
		}
		if ok {
			a.log.Debug("price index served from cache", "hours", index.Len())
			return index, nil
		}
	}

	index, err := a.buildIndex()
	if err != nil {
		return nil, err
	}

	if err := store.Save(index); err != nil {
		a.log.Warn("failed to cache price index", "error", err)
	}

	return index, nil
}

// loadInputs fetches the usage records and, for a spot contract, the
// price index. The two inputs are independent and load concurrently.
func (a *app) loadInputs(refreshIndex bool) ([]usage.Record, *pricing.Index, error) {
	var (
		records []usage.Record
		index   *pricing.Index
	)

	var g errgroup.Group

	g.Go(func() error {
		var err error
		records, err = a.loadRecords()
		return err
	})

	if a.cfg.Contract.Kind == "spot" {
		g.Go(func() error {
			var err error
			index, err = a.loadIndex(refreshIndex)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return records, index, nil
}

// resolveWindow builds the aggregation window from the -from/-to
// flags, defaulting each missing bound to the corresponding edge of
// the export.
func (a *app) resolveWindow(cf contractFlags, records []usage.Record) (cost.Window, error) {
	var window cost.Window

	if len(records) > 0 {
		window.From = records[0].Timestamp
		window.To = records[len(records)-1].Timestamp
	}

	if cf.from != "" {
		from, err := a.parser.Parse(cf.from)
		if err != nil {
			return cost.Window{}, fmt.Errorf("invalid -from: %w", err)
		}
		window.From = from
	}

	if cf.to != "" {
		to, err := a.parser.Parse(cf.to)
		if err != nil {
			return cost.Window{}, fmt.Errorf("invalid -to: %w", err)
		}
		window.To = to
	}

	return window, nil
}

// computeSummary runs the full pipeline: load inputs, select the
// policy, aggregate over the window.
func (a *app) computeSummary(cf contractFlags, refreshIndex bool) (cost.Summary, error) {
	records, index, err := a.loadInputs(refreshIndex)
	if err != nil {
		return cost.Summary{}, err
	}

	policy, err := a.cfg.Policy(index)
	if err != nil {
		return cost.Summary{}, err
	}

	window, err := a.resolveWindow(cf, records)
	if err != nil {
		return cost.Summary{}, err
	}

	return cost.Aggregate(records, window, policy)
}

// formatter builds the output formatter, honoring a flag override.
func (a *app) formatter(format string, compact bool) display.Formatter {
	cfg := display.Config{
		Format:  display.Format(a.cfg.Display.Format),
		Compact: a.cfg.Display.Compact || compact,
	}
	if format != "" {
		cfg.Format = display.Format(format)
	}

	return display.New(cfg)
}

// costCommand computes the cost and usage summary over a window.
type costCommand struct {
	contractFlags
	format     string
	compact    bool
	configPath string
}

// Execute runs the cost command.
func (c *costCommand) Execute() error {
	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}

	a.applyContractFlags(c.contractFlags)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	summary, err := a.computeSummary(c.contractFlags, false)
	if err != nil {
		return err
	}

	return a.formatter(c.format, c.compact).FormatSummary(os.Stdout, summary)
}

// pricesCommand builds the spot price index and reports its facts.
type pricesCommand struct {
	refresh    bool
	format     string
	configPath string
}

// Execute runs the prices command.
func (c *pricesCommand) Execute() error {
	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}

	index, err := a.loadIndex(c.refresh)
	if err != nil {
		return err
	}

	return a.formatter(c.format, false).FormatIndex(os.Stdout, index)
}

// watchCommand recomputes and prints the summary whenever an input
// file changes.
type watchCommand struct {
	contractFlags
	format     string
	debounce   time.Duration
	configPath string
}

// Execute runs the watch command. It blocks until interrupted.
func (c *watchCommand) Execute() error {
	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}

	a.applyContractFlags(c.contractFlags)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	fmtr := a.formatter(c.format, false)

	w, err := watcher.New(watcher.Config{DebounceInterval: c.debounce}, a.log)
	if err != nil {
		return err
	}
	defer w.Close()

	paths := []string{a.cfg.Usage.File}
	if a.cfg.Contract.Kind == "spot" {
		paths = append(paths, a.cfg.Pricing.SpotFiles...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.Start(ctx, paths)
	})

	g.Go(func() error {
		// Initial pass before any change arrives.
		if err := c.recompute(a, fmtr); err != nil {
			return err
		}

		for {
			select {
			case <-ctx.Done():
				return nil

			case event := <-w.Events():
				a.log.Info("input changed, recomputing", "path", event.Path)
				if err := c.recompute(a, fmtr); err != nil {
					return err
				}

			case err := <-w.Errors():
				a.log.Error("watch error", "error", err)
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// recompute runs the pipeline once and prints the summary. The price
// index is rebuilt so edits to the price files take effect.
func (c *watchCommand) recompute(a *app, fmtr display.Formatter) error {
	summary, err := a.computeSummary(c.contractFlags, true)
	if err != nil {
		return err
	}

	return fmtr.FormatSummary(os.Stdout, summary)
}

// publishCommand computes the summary and publishes it over MQTT.
type publishCommand struct {
	contractFlags
	configPath string
}

// Execute runs the publish command.
func (c *publishCommand) Execute() error {
	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}

	a.applyContractFlags(c.contractFlags)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	summary, err := a.computeSummary(c.contractFlags, false)
	if err != nil {
		return err
	}

	pub, err := publisher.New(a.cfg.HomeAssistant, a.log)
	if err != nil {
		return err
	}
	defer pub.Close()

	if err := pub.Publish(summary); err != nil {
		return err
	}

	fmt.Printf("Published summary: %.2f EUR over %d hours\n", summary.TotalCost, summary.Records)
	return nil
}
