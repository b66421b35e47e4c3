// Package usage normalizes raw metering export rows into a canonical
// series of hourly energy consumption records.
//
// Export rows carry a weekday-prefixed local date string and a usage
// quantity that is either a decimal-comma number or a fixed "no data"
// sentinel phrase. Quantities that cannot be read normalize to zero by
// design; malformed dates are errors.
//
// Example usage:
//
//	n := usage.NewNormalizer(usage.Config{}, parser, log)
//	records, err := n.Normalize(rows)
//	if err != nil {
//	    log.Error("failed to normalize usage", "error", err)
//	}
package usage

import (
	"time"
)

// NoDataSentinel is the exact phrase the export writes for an hour
// with no metering data.
const NoDataSentinel = "Ei kulutustietoja tällä ajanjaksolla."

// Row is one raw line of a usage export, before normalization.
type Row struct {
	// DateText is the weekday-prefixed local date string,
	// e.g. "tiistai 1.1.2019 00:00".
	DateText string

	// UsageText is the metered quantity, e.g. "2,69", or the no-data
	// sentinel phrase.
	UsageText string
}

// Record is one normalized hourly consumption reading.
//
// Invariant: KWh is finite and >= 0. Rows with missing or unreadable
// quantities normalize to exactly 0, never to a missing value.
type Record struct {
	// Timestamp is the start of the metering interval.
	Timestamp time.Time

	// KWh is the energy consumed during the interval.
	KWh float64
}

// Config contains normalizer configuration.
type Config struct {
	// Sentinel is the no-data phrase recognized in the usage column.
	// Defaults to NoDataSentinel.
	Sentinel string
}
