// Package timeparse converts locale-formatted date/time strings from
// Finnish electricity exports into canonical timestamps.
//
// Usage exports (Caruna) prefix each date with a weekday name
// ("tiistai 1.1.2019 00:00"); spot price feeds use plain
// "1.1.2019 00:00" shapes. Both resolve to a time.Time in an
// explicitly configured timezone, never the runtime default.
//
// Example usage:
//
//	p, err := timeparse.New(timeparse.Config{Timezone: "Europe/Helsinki"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ts, err := p.ParseUsageDate("tiistai 1.1.2019 00:00")
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyLayout is the canonical string form of a timestamp, used as the
// join key between usage records and the spot price index. It matches
// the ISO-8601 UTC form spot price feeds key their entries by.
const KeyLayout = "2006-01-02T15:04:05.000Z"

// DefaultTimezone is the zone usage exports are assumed to be in when
// the configuration does not name one.
const DefaultTimezone = "Europe/Helsinki"

// Parser converts export date strings into timestamps.
type Parser interface {
	// Parse parses a combined "D.M.YYYY HH:MM" string.
	//
	// Day and month may be zero-padded or not. Returns a *ParseError
	// if the text does not match that shape or names an invalid
	// calendar date.
	Parse(text string) (time.Time, error)

	// ParseParts parses separate date ("D.M.YYYY") and time ("HH:MM")
	// strings into one timestamp.
	ParseParts(dateText, timeText string) (time.Time, error)

	// ParseUsageDate parses a usage-export date string with a leading
	// weekday-name token, e.g. "tiistai 1.1.2019 00:00". The weekday
	// token is stripped, not validated against the date.
	ParseUsageDate(text string) (time.Time, error)

	// Location returns the timezone all parsed timestamps carry.
	Location() *time.Location
}

// Config contains parser configuration.
type Config struct {
	// Timezone is the IANA zone name the numeric date fields are
	// interpreted in. Defaults to DefaultTimezone. Making the zone
	// explicit keeps results independent of the host environment.
	Timezone string
}

// localeParser implements the Parser interface.
type localeParser struct {
	loc *time.Location
}

// New creates a parser for the configured timezone.
//
// Returns an error if the zone name cannot be resolved.
func New(cfg Config) (Parser, error) {
	name := cfg.Timezone
	if name == "" {
		name = DefaultTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	return &localeParser{loc: loc}, nil
}

// NewInLocation creates a parser using an already-resolved location.
func NewInLocation(loc *time.Location) Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &localeParser{loc: loc}
}

// Parse implements Parser.Parse.
func (p *localeParser) Parse(text string) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(text), " ")
	if !ok {
		return time.Time{}, &ParseError{Input: text, Err: ErrBadDateShape}
	}

	return p.ParseParts(datePart, timePart)
}

// ParseParts implements Parser.ParseParts.
func (p *localeParser) ParseParts(dateText, timeText string) (time.Time, error) {
	day, month, year, err := splitDate(dateText)
	if err != nil {
		return time.Time{}, &ParseError{Input: dateText, Err: err}
	}

	hour, minute, err := splitClock(timeText)
	if err != nil {
		return time.Time{}, &ParseError{Input: timeText, Err: err}
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, 0, 0, p.loc)

	// time.Date normalizes out-of-range fields (31.2. becomes 2.3.),
	// so an invalid calendar date shows up as a shifted result.
	if ts.Day() != day || int(ts.Month()) != month || ts.Year() != year {
		return time.Time{}, &ParseError{
			Input: dateText + " " + timeText,
			Err:   ErrInvalidDate,
		}
	}

	return ts, nil
}

// ParseUsageDate implements Parser.ParseUsageDate.
func (p *localeParser) ParseUsageDate(text string) (time.Time, error) {
	_, rest, ok := strings.Cut(strings.TrimSpace(text), " ")
	if !ok {
		return time.Time{}, &ParseError{Input: text, Err: ErrBadDateShape}
	}

	return p.Parse(rest)
}

// Location implements Parser.Location.
func (p *localeParser) Location() *time.Location {
	return p.loc
}

// Key returns the canonical string form of a timestamp. Two timestamps
// naming the same instant produce the same key regardless of zone.
func Key(t time.Time) string {
	return t.UTC().Format(KeyLayout)
}

// splitDate parses "D.M.YYYY" into numeric fields.
func splitDate(text string) (day, month, year int, err error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return 0, 0, 0, ErrBadDateShape
	}

	day, err = atoiField(parts[0])
	if err != nil {
		return 0, 0, 0, err
	}
	month, err = atoiField(parts[1])
	if err != nil {
		return 0, 0, 0, err
	}
	year, err = atoiField(parts[2])
	if err != nil {
		return 0, 0, 0, err
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return 0, 0, 0, ErrInvalidDate
	}

	return day, month, year, nil
}

// splitClock parses "HH:MM" into numeric fields.
func splitClock(text string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(text, ":")
	if !ok {
		return 0, 0, ErrBadDateShape
	}

	hour, err = atoiField(hh)
	if err != nil {
		return 0, 0, err
	}
	minute, err = atoiField(mm)
	if err != nil {
		return 0, 0, err
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidDate
	}

	return hour, minute, nil
}

// atoiField parses one numeric date field, rejecting empty and
// non-digit text.
func atoiField(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrBadDateShape
	}
	return n, nil
}
