package pricing

import (
	"time"

	"github.com/jtuomin/sahkolasku/pkg/usage"
)

// Kind identifies a pricing contract variant.
type Kind string

const (
	// KindFlat prices every hour at one fixed rate.
	KindFlat Kind = "flat"

	// KindDayNight prices day hours and night hours at two fixed
	// rates.
	KindDayNight Kind = "daynight"

	// KindSpot prices each hour at its spot market rate from an
	// Index.
	KindSpot Kind = "spot"
)

// Day window boundaries for the day/night contract: hour 7 inclusive
// through hour 22 exclusive, in the record's local time.
const (
	dayStartHour = 7
	dayEndHour   = 22
)

// Policy is a pricing contract. It is a tagged variant: Kind selects
// the computation and the matching fields carry its parameters. All
// variants share the single Price operation.
type Policy struct {
	// Kind selects the contract variant.
	Kind Kind

	// Rate is the flat contract's unit price.
	Rate float64

	// DayRate and NightRate are the day/night contract's unit prices.
	DayRate   float64
	NightRate float64

	// Index is the spot contract's price lookup.
	Index *Index
}

// Flat creates a fixed-rate policy.
func Flat(rate float64) Policy {
	return Policy{Kind: KindFlat, Rate: rate}
}

// DayNight creates a two-rate time-of-day policy.
func DayNight(dayRate, nightRate float64) Policy {
	return Policy{Kind: KindDayNight, DayRate: dayRate, NightRate: nightRate}
}

// Spot creates a spot-market policy backed by a price index.
func Spot(index *Index) Policy {
	return Policy{Kind: KindSpot, Index: index}
}

// Price returns the cost of one usage record under this policy.
//
// The spot variant fails with a *PriceNotFoundError when the record's
// hour is absent from the index; there is no zero-cost substitution.
func (p Policy) Price(rec usage.Record) (float64, error) {
	switch p.Kind {
	case KindFlat:
		return rec.KWh * p.Rate, nil

	case KindDayNight:
		if IsDayHour(rec.Timestamp) {
			return rec.KWh * p.DayRate, nil
		}
		return rec.KWh * p.NightRate, nil

	case KindSpot:
		if p.Index == nil {
			return 0, ErrNoIndex
		}
		price, ok := p.Index.Lookup(rec.Timestamp)
		if !ok {
			return 0, &PriceNotFoundError{Timestamp: rec.Timestamp}
		}
		return rec.KWh * price, nil

	default:
		return 0, &UnknownKindError{Kind: p.Kind}
	}
}

// Validate checks that the policy's kind is known and its parameters
// are usable.
func (p Policy) Validate() error {
	switch p.Kind {
	case KindFlat, KindDayNight:
		return nil
	case KindSpot:
		if p.Index == nil {
			return ErrNoIndex
		}
		return nil
	default:
		return &UnknownKindError{Kind: p.Kind}
	}
}

// IsDayHour reports whether a timestamp falls inside the day tariff
// window, hour 7 inclusive through hour 22 exclusive, evaluated on the
// timestamp's own location.
func IsDayHour(t time.Time) bool {
	h := t.Hour()
	return h >= dayStartHour && h < dayEndHour
}
