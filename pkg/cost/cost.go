// Package cost reduces a usage series to total cost and total
// consumption over a date window under a pricing policy.
//
// Example usage:
//
//	summary, err := cost.Aggregate(records, cost.Window{From: from, To: to}, policy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%.2f EUR for %.0f kWh\n", summary.TotalCost, summary.TotalKWh)
package cost

import (
	"time"

	"github.com/jtuomin/sahkolasku/pkg/pricing"
	"github.com/jtuomin/sahkolasku/pkg/usage"
)

// Window is a date range, inclusive on both ends.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether a timestamp falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Summary is the fold result over a filtered usage series.
type Summary struct {
	// TotalCost is the summed cost in currency units.
	TotalCost float64 `json:"total_cost"`

	// TotalKWh is the summed consumption.
	TotalKWh float64 `json:"total_kwh"`

	// Records is the number of usage records inside the window.
	Records int `json:"records"`

	// From and To echo the requested window.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Aggregate filters records to the window and folds them under the
// policy in input order.
//
// The first policy error aborts the fold; partial sums are discarded,
// not returned. An empty filtered set yields a zero Summary, not an
// error.
func Aggregate(records []usage.Record, window Window, policy pricing.Policy) (Summary, error) {
	summary := Summary{From: window.From, To: window.To}

	for _, rec := range records {
		if !window.Contains(rec.Timestamp) {
			continue
		}

		price, err := policy.Price(rec)
		if err != nil {
			return Summary{}, err
		}

		summary.TotalCost += price
		summary.TotalKWh += rec.KWh
		summary.Records++
	}

	return summary, nil
}
