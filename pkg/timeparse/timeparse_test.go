package timeparse

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestParser(t *testing.T) Parser {
	t.Helper()

	p, err := New(Config{Timezone: "Europe/Helsinki"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	tests := []struct {
		input string
		want  string // local formatting "2.1.2006 15:04"
	}{
		{"1.1.2019 00:00", "1.1.2019 00:00"},
		{"01.01.2019 00:00", "1.1.2019 00:00"},
		{"31.7.2021 23:00", "31.7.2021 23:00"},
		{"29.2.2020 12:30", "29.2.2020 12:30"},
	}

	for _, tt := range tests {
		ts, err := p.Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.input, err)
			continue
		}
		if got := ts.Format("2.1.2006 15:04"); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
		if ts.Location() != p.Location() {
			t.Errorf("Parse(%q) location = %v, want %v", tt.input, ts.Location(), p.Location())
		}
	}
}

// Parsing then re-formatting round-trips the date fields for any valid
// "D.M.YYYY HH:MM" input.
func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	for month := 1; month <= 12; month++ {
		for _, day := range []int{1, 15, 28} {
			input := fmt.Sprintf("%d.%d.2019 %02d:00", day, month, (day+month)%24)

			ts, err := p.Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}

			if got := ts.Format("2.1.2006 15:04"); got != input {
				t.Errorf("round trip: Parse(%q) formats as %q", input, got)
			}
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrBadDateShape},
		{"no time", "1.1.2019", ErrBadDateShape},
		{"two dots", "1.1 2019 00:00", ErrBadDateShape},
		{"letters in day", "x.1.2019 00:00", ErrBadDateShape},
		{"no colon", "1.1.2019 0000", ErrBadDateShape},
		{"month 13", "1.13.2019 00:00", ErrInvalidDate},
		{"day 32", "32.1.2019 00:00", ErrInvalidDate},
		{"feb 30", "30.2.2019 00:00", ErrInvalidDate},
		{"feb 29 non-leap", "29.2.2019 00:00", ErrInvalidDate},
		{"hour 24", "1.1.2019 24:00", ErrInvalidDate},
		{"minute 60", "1.1.2019 10:60", ErrInvalidDate},
	}

	for _, tt := range tests {
		_, err := p.Parse(tt.input)
		if err == nil {
			t.Errorf("%s: Parse(%q) expected error, got nil", tt.name, tt.input)
			continue
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%s: error type = %T, want *ParseError", tt.name, err)
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: Parse(%q) error = %v, want %v", tt.name, tt.input, err, tt.want)
		}
	}
}

func TestParseUsageDate(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	ts, err := p.ParseUsageDate("tiistai 1.1.2019 00:00")
	if err != nil {
		t.Fatalf("ParseUsageDate() error = %v", err)
	}

	want, err := p.Parse("1.1.2019 00:00")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !ts.Equal(want) {
		t.Errorf("ParseUsageDate() = %v, want %v", ts, want)
	}
}

func TestParseUsageDate_MissingWeekday(t *testing.T) {
	t.Parallel()

	p := newTestParser(t)

	// Without the weekday token the remainder no longer carries a
	// clock time, so parsing must fail rather than guess.
	if _, err := p.ParseUsageDate("1.1.2019 00:00"); err == nil {
		t.Error("ParseUsageDate() without weekday token expected error, got nil")
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Fatalf("LoadLocation() error = %v", err)
	}

	// 1.1.2019 02:00 Helsinki is 00:00 UTC (EET, +02:00).
	ts := time.Date(2019, 1, 1, 2, 0, 0, 0, loc)

	if got := Key(ts); got != "2019-01-01T00:00:00.000Z" {
		t.Errorf("Key() = %s, want 2019-01-01T00:00:00.000Z", got)
	}

	// Same instant in a different zone yields the same key.
	if got := Key(ts.UTC()); got != Key(ts) {
		t.Errorf("Key() not zone-independent: %s != %s", got, Key(ts))
	}
}

func TestNew_UnknownZone(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{Timezone: "Not/AZone"}); err == nil {
		t.Error("New() with unknown zone expected error, got nil")
	}
}

func TestNew_DefaultZone(t *testing.T) {
	t.Parallel()

	p, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := p.Location().String(); got != DefaultTimezone {
		t.Errorf("Location() = %s, want %s", got, DefaultTimezone)
	}
}
