package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatSummary implements Formatter.FormatSummary.
func (f *tableFormatter) FormatSummary(w io.Writer, summary cost.Summary) error {
	if err := writeHeader(w, "Electricity Cost Summary", f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"Window", summary.From.Format(timeLayout) + " - " + summary.To.Format(timeLayout)},
		{"Hours", fmt.Sprintf("%d", summary.Records)},
		{"Total Usage (kWh)", formatKWh(summary.TotalKWh)},
		{"Total Cost (EUR)", formatCost(summary.TotalCost)},
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatIndex implements Formatter.FormatIndex.
func (f *tableFormatter) FormatIndex(w io.Writer, index *pricing.Index) error {
	if err := writeHeader(w, "Spot Price Index", f.config.Compact); err != nil {
		return err
	}

	rows := [][]string{
		{"Priced Hours", fmt.Sprintf("%d", index.Len())},
	}

	if first, last, ok := index.Span(); ok {
		rows = append(rows,
			[]string{"First Hour (UTC)", first.Format(timeLayout)},
			[]string{"Last Hour (UTC)", last.Format(timeLayout)},
		)
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// writeTable writes a two-column aligned table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if !f.config.Compact {
		if err := writeRow(header); err != nil {
			return err
		}

		separators := make([]string, len(header))
		for i, width := range widths {
			separators[i] = strings.Repeat("-", width)
		}
		if err := writeRow(separators); err != nil {
			return err
		}
	}

	for _, row := range rows {
		if err := writeRow(row); err != nil {
			return err
		}
	}

	return nil
}
