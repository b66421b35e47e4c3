package display

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jtuomin/sahkolasku/pkg/cost"
	"github.com/jtuomin/sahkolasku/pkg/pricing"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

// FormatSummary implements Formatter.FormatSummary.
func (f *jsonFormatter) FormatSummary(w io.Writer, summary cost.Summary) error {
	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(summary)
}

// indexInfo is the JSON shape for price index facts.
type indexInfo struct {
	Hours int        `json:"hours"`
	First *time.Time `json:"first,omitempty"`
	Last  *time.Time `json:"last,omitempty"`
}

// FormatIndex implements Formatter.FormatIndex.
func (f *jsonFormatter) FormatIndex(w io.Writer, index *pricing.Index) error {
	info := indexInfo{Hours: index.Len()}
	if first, last, ok := index.Span(); ok {
		info.First = &first
		info.Last = &last
	}

	encoder := json.NewEncoder(w)
	if !f.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(info)
}
