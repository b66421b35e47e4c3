package pricing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/timeparse"
)

// DefaultVAT is the value-added-tax multiplier applied to raw market
// prices. 1.24 is the Finnish 24% electricity VAT rate. This is
// policy, not arithmetic: change it through BuilderConfig when the
// rate changes.
const DefaultVAT = 1.24

// rawEntry is one timestamped price in a source file.
type rawEntry struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// envelope is the wrapped source shape, exposing the entries under a
// "prices" field. Some exports are bare arrays, some are wrapped;
// both are accepted.
type envelope struct {
	Prices []rawEntry `json:"prices"`
}

// Builder merges raw spot price sources into an Index.
type Builder interface {
	// Build parses each JSON source and merges them into one index.
	//
	// Each source is either a bare array of {date, value} entries or
	// an object wrapping such an array under a "prices" field. The
	// raw value is the untaxed market price in cents; the stored
	// price is value/10 (converted to the per-kWh billing unit)
	// adjusted by the VAT multiplier.
	//
	// When multiple sources price the same hour, later sources win.
	Build(sources ...[]byte) (*Index, error)
}

// BuilderConfig contains price index builder configuration.
type BuilderConfig struct {
	// VAT is the tax multiplier applied to every price.
	// Defaults to DefaultVAT.
	VAT float64
}

// builder implements the Builder interface.
type builder struct {
	config BuilderConfig
	logger logger.Logger
}

// NewBuilder creates a price index builder.
func NewBuilder(cfg BuilderConfig, log logger.Logger) Builder {
	if cfg.VAT == 0 {
		cfg.VAT = DefaultVAT
	}

	return &builder{
		config: cfg,
		logger: log,
	}
}

// Build implements Builder.Build.
func (b *builder) Build(sources ...[]byte) (*Index, error) {
	prices := make(map[string]float64)
	entryCount := 0

	for i, source := range sources {
		entries, err := decodeSource(source)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}

		for _, entry := range entries {
			ts, err := time.Parse(time.RFC3339, entry.Date)
			if err != nil {
				return nil, fmt.Errorf("source %d: %w",
					i+1, &InvalidSourceError{Date: entry.Date, Err: err})
			}

			// Later sources overwrite earlier ones.
			prices[timeparse.Key(ts)] = entry.Value / 10 * b.config.VAT
		}

		entryCount += len(entries)
	}

	b.logger.Info("built spot price index",
		"sources", len(sources),
		"entries", entryCount,
		"hours", len(prices))

	return &Index{prices: prices}, nil
}

// decodeSource parses one source, accepting both the bare and the
// wrapped shape.
func decodeSource(source []byte) ([]rawEntry, error) {
	var entries []rawEntry
	if err := json.Unmarshal(source, &entries); err == nil {
		return entries, nil
	}

	var wrapped envelope
	if err := json.Unmarshal(source, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if wrapped.Prices == nil {
		return nil, fmt.Errorf("%w: no price entries found", ErrMalformedSource)
	}

	return wrapped.Prices, nil
}

// NewIndex creates an index from already-canonical entries. Used when
// restoring a cached index; normal construction goes through Build.
func NewIndex(entries map[string]float64) *Index {
	prices := make(map[string]float64, len(entries))
	for key, price := range entries {
		prices[key] = price
	}
	return &Index{prices: prices}
}

// Entries returns a copy of the index contents, keyed by canonical
// timestamp string.
func (ix *Index) Entries() map[string]float64 {
	entries := make(map[string]float64, len(ix.prices))
	for key, price := range ix.prices {
		entries[key] = price
	}
	return entries
}
