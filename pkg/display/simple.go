package display

import (
	"fmt"
	"io"

	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

// simpleFormatter formats output as simple text, one line per result.
type simpleFormatter struct {
	config Config
}

// FormatSummary implements Formatter.FormatSummary.
func (f *simpleFormatter) FormatSummary(w io.Writer, summary cost.Summary) error {
	_, err := fmt.Fprintf(w, "Total cost %s EUR, usage %s kWh over %d hours\n",
		formatCost(summary.TotalCost),
		formatKWh(summary.TotalKWh),
		summary.Records)
	return err
}

// FormatIndex implements Formatter.FormatIndex.
func (f *simpleFormatter) FormatIndex(w io.Writer, index *pricing.Index) error {
	first, last, ok := index.Span()
	if !ok {
		_, err := fmt.Fprintln(w, "Price index is empty")
		return err
	}

	_, err := fmt.Fprintf(w, "%d priced hours, %s - %s UTC\n",
		index.Len(),
		first.Format(timeLayout),
		last.Format(timeLayout))
	return err
}
