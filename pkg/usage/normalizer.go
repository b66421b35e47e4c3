package usage

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jtuomin/sahkolasku/pkg/logger"
	"github.com/jtuomin/sahkolasku/pkg/timeparse"
)

// Normalizer converts raw export rows into Records.
type Normalizer interface {
	// Normalize converts rows into records, preserving input order.
	//
	// Each row's date goes through the weekday-stripping parser; a
	// date that fails to parse aborts normalization with the parse
	// error. Unreadable quantities normalize to zero and are not
	// errors.
	Normalize(rows []Row) ([]Record, error)
}

// normalizer implements the Normalizer interface.
type normalizer struct {
	config Config
	parser timeparse.Parser
	logger logger.Logger
}

// NewNormalizer creates a normalizer using the given date parser.
func NewNormalizer(cfg Config, parser timeparse.Parser, log logger.Logger) Normalizer {
	if cfg.Sentinel == "" {
		cfg.Sentinel = NoDataSentinel
	}

	return &normalizer{
		config: cfg,
		parser: parser,
		logger: log,
	}
}

// Normalize implements Normalizer.Normalize.
func (n *normalizer) Normalize(rows []Row) ([]Record, error) {
	records := make([]Record, 0, len(rows))

	for i, row := range rows {
		ts, err := n.parser.ParseUsageDate(row.DateText)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		records = append(records, Record{
			Timestamp: ts,
			KWh:       ParseQuantity(row.UsageText, n.config.Sentinel),
		})
	}

	// Row count is reported for observability only; callers must not
	// depend on it.
	n.logger.Info("normalized usage rows", "rows", len(records))

	return records, nil
}

// ParseQuantity converts a usage column value into kWh.
//
// The value is a decimal number with a comma as the fractional
// separator ("2,69"). The sentinel phrase, any unparseable text, and
// non-finite or negative results all normalize to 0 by design.
func ParseQuantity(text, sentinel string) float64 {
	if sentinel == "" {
		sentinel = NoDataSentinel
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == sentinel {
		return 0
	}

	q, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64)
	if err != nil {
		return 0
	}

	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}

	return q
}
