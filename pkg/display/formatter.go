package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

// timeLayout is how window bounds render in human-readable output.
const timeLayout = "2.1.2006 15:04"

// New creates a formatter based on configuration.
func New(cfg Config) Formatter {
	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// formatCost renders a cost rounded to two decimals with thousand
// separators.
func formatCost(v float64) string {
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// formatKWh renders usage rounded to whole units.
func formatKWh(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// writeHeader writes a section header unless compact mode is on.
func writeHeader(w io.Writer, title string, compact bool) error {
	if compact {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}

	return nil
}
