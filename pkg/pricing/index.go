// Package pricing builds the spot price index and prices usage records
// under one of three contract variants: flat rate, day/night rate, or
// hourly spot market rate.
//
// Prices stored in the index are tax-inclusive and denominated in
// currency per kWh. The index is built once from raw price sources and
// read-only afterwards.
//
// Example usage:
//
//	b := pricing.NewBuilder(pricing.BuilderConfig{}, log)
//	index, err := b.Build(raw2019, raw2020)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	policy := pricing.Spot(index)
//	cost, err := policy.Price(record)
package pricing

import (
	"time"

	"github.com/jtuomin/sahkolasku/pkg/timeparse"
)

// Index maps timestamps to tax-inclusive unit prices (currency/kWh).
//
// Entries are keyed by the canonical timestamp string (timeparse.Key).
// The index is read-only after construction; absence of an hour is
// absence, there is no gap filling or interpolation.
type Index struct {
	prices map[string]float64
}

// Lookup returns the unit price for a timestamp's hour.
func (ix *Index) Lookup(t time.Time) (float64, bool) {
	price, ok := ix.prices[timeparse.Key(t)]
	return price, ok
}

// LookupKey returns the unit price for an already-canonical key.
func (ix *Index) LookupKey(key string) (float64, bool) {
	price, ok := ix.prices[key]
	return price, ok
}

// Len returns the number of priced hours in the index.
func (ix *Index) Len() int {
	return len(ix.prices)
}

// Span returns the earliest and latest priced hours, in UTC. The ok
// result is false for an empty index.
func (ix *Index) Span() (first, last time.Time, ok bool) {
	for key := range ix.prices {
		t, err := time.Parse(timeparse.KeyLayout, key)
		if err != nil {
			continue
		}
		if !ok || t.Before(first) {
			first = t
		}
		if !ok || t.After(last) {
			last = t
		}
		ok = true
	}
	return first, last, ok
}
