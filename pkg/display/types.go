// Package display provides output formatting for cost summaries.
//
// It supports multiple output formats (table, JSON, simple text).
// Costs render with two decimals, usage with whole kWh.
package display

import (
	"io"

	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays results in a formatted table.
	FormatTable Format = "table"

	// FormatJSON displays results as JSON.
	FormatJSON Format = "json"

	// FormatSimple displays results in simple text format.
	FormatSimple Format = "simple"
)

// Formatter formats and displays cost computation results.
type Formatter interface {
	// FormatSummary formats a windowed cost summary.
	FormatSummary(w io.Writer, summary cost.Summary) error

	// FormatIndex formats spot price index facts: priced hours and
	// the covered span.
	FormatIndex(w io.Writer, index *pricing.Index) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	Format Format

	// Compact trims headers and indentation.
	Compact bool
}
