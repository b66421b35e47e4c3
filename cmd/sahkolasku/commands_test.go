package main

import (
	"flag"
	"testing"
	"time"

	"github.com/jtuomin/sahkolasku/pkg/config"
	"github.com/jtuomin/sahkolasku/pkg/timeparse"
	"github.com/jtuomin/sahkolasku/pkg/usage"
)

// testApp builds an app with defaults and a UTC parser, no file IO.
func testApp() *app {
	return &app{
		cfg:    config.Default(),
		parser: timeparse.NewInLocation(time.UTC),
	}
}

// TestResolveWindowDefaults tests that a missing bound falls back to
// the corresponding edge of the export.
func TestResolveWindowDefaults(t *testing.T) {
	a := testApp()

	first := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2021, 7, 31, 23, 0, 0, 0, time.UTC)
	records := []usage.Record{
		{Timestamp: first, KWh: 1},
		{Timestamp: last, KWh: 2},
	}

	window, err := a.resolveWindow(contractFlags{}, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !window.From.Equal(first) {
		t.Errorf("From = %v, want %v", window.From, first)
	}
	if !window.To.Equal(last) {
		t.Errorf("To = %v, want %v", window.To, last)
	}
}

// TestResolveWindowFlags tests explicit -from/-to bounds.
func TestResolveWindowFlags(t *testing.T) {
	a := testApp()

	records := []usage.Record{
		{Timestamp: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), KWh: 1},
	}

	cf := contractFlags{
		from: "31.7.2019 00:00",
		to:   "31.7.2021 23:00",
	}

	window, err := a.resolveWindow(cf, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrom := time.Date(2019, 7, 31, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2021, 7, 31, 23, 0, 0, 0, time.UTC)

	if !window.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", window.From, wantFrom)
	}
	if !window.To.Equal(wantTo) {
		t.Errorf("To = %v, want %v", window.To, wantTo)
	}
}

// TestResolveWindowBadBound tests that an unparsable bound fails.
func TestResolveWindowBadBound(t *testing.T) {
	a := testApp()

	_, err := a.resolveWindow(contractFlags{from: "not a date"}, nil)
	if err == nil {
		t.Fatal("expected error for unparsable -from")
	}
}

// parseContractFlags runs args through a real flag set, the way the
// command runners do.
func parseContractFlags(t *testing.T, args []string) contractFlags {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	var cf contractFlags
	cf.register(fs)

	if err := fs.Parse(args); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	cf.capture(fs)

	return cf
}

// TestApplyContractFlags tests flag overlay on the configured
// contract.
func TestApplyContractFlags(t *testing.T) {
	// All base rates nonzero so a zero override is observable.
	base := config.ContractConfig{Kind: "daynight", Rate: 4.2, DayRate: 6, NightRate: 5}

	tests := []struct {
		name string
		args []string
		want config.ContractConfig
	}{
		{
			name: "no overrides keep config",
			args: []string{},
			want: base,
		},
		{
			name: "contract kind override",
			args: []string{"-contract", "spot"},
			want: config.ContractConfig{Kind: "spot", Rate: 4.2, DayRate: 6, NightRate: 5},
		},
		{
			name: "flat with rate",
			args: []string{"-contract", "flat", "-rate", "9.9"},
			want: config.ContractConfig{Kind: "flat", Rate: 9.9, DayRate: 6, NightRate: 5},
		},
		{
			name: "daynight rates override",
			args: []string{"-day-rate", "7.5", "-night-rate", "3.5"},
			want: config.ContractConfig{Kind: "daynight", Rate: 4.2, DayRate: 7.5, NightRate: 3.5},
		},
		{
			name: "explicit zero rate overrides",
			args: []string{"-contract", "flat", "-rate", "0"},
			want: config.ContractConfig{Kind: "flat", Rate: 0, DayRate: 6, NightRate: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testApp()
			a.cfg.Contract = base

			a.applyContractFlags(parseContractFlags(t, tt.args))

			if a.cfg.Contract != tt.want {
				t.Errorf("contract = %+v, want %+v", a.cfg.Contract, tt.want)
			}
		})
	}
}
