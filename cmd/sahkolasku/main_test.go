package main

import (
	"flag"
	"testing"
	"time"
)

// TestRunCostCommand tests cost command flag parsing.
func TestRunCostCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCmd   costCommand
		wantError bool
	}{
		{
			name: "default flags",
			args: []string{},
			wantCmd: costCommand{
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "explicit window",
			args: []string{"-from", "31.7.2019 00:00", "-to", "31.7.2021 23:00"},
			wantCmd: costCommand{
				contractFlags: contractFlags{
					from: "31.7.2019 00:00",
					to:   "31.7.2021 23:00",
				},
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "flat contract",
			args: []string{"-contract", "flat", "-rate", "4.2"},
			wantCmd: costCommand{
				contractFlags: contractFlags{
					contract: "flat",
					rate:     4.2,
				},
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "daynight contract",
			args: []string{"-contract", "daynight", "-day-rate", "6", "-night-rate", "5"},
			wantCmd: costCommand{
				contractFlags: contractFlags{
					contract:  "daynight",
					dayRate:   6,
					nightRate: 5,
				},
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "JSON format",
			args: []string{"-format", "json"},
			wantCmd: costCommand{
				format:     "json",
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "compact output",
			args: []string{"-compact"},
			wantCmd: costCommand{
				compact:    true,
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "combined flags",
			args: []string{
				"-from", "1.1.2021 00:00",
				"-contract", "spot",
				"-format", "simple",
			},
			wantCmd: costCommand{
				contractFlags: contractFlags{
					from:     "1.1.2021 00:00",
					contract: "spot",
				},
				format:     "simple",
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Parse flags
			fs := flag.NewFlagSet("cost", flag.ContinueOnError)

			var cf contractFlags
			cf.register(fs)
			format := fs.String("format", "", "output format")
			compact := fs.Bool("compact", false, "compact output")

			err := fs.Parse(tt.args)
			if tt.wantError && err == nil {
				t.Fatal("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantError {
				return
			}

			// Create command
			got := &costCommand{
				contractFlags: cf,
				format:        *format,
				compact:       *compact,
				configPath:    "/test/config.yaml",
			}

			// Verify fields
			if got.from != tt.wantCmd.from {
				t.Errorf("from = %q, want %q", got.from, tt.wantCmd.from)
			}
			if got.to != tt.wantCmd.to {
				t.Errorf("to = %q, want %q", got.to, tt.wantCmd.to)
			}
			if got.contract != tt.wantCmd.contract {
				t.Errorf("contract = %q, want %q", got.contract, tt.wantCmd.contract)
			}
			if got.rate != tt.wantCmd.rate {
				t.Errorf("rate = %v, want %v", got.rate, tt.wantCmd.rate)
			}
			if got.dayRate != tt.wantCmd.dayRate {
				t.Errorf("dayRate = %v, want %v", got.dayRate, tt.wantCmd.dayRate)
			}
			if got.nightRate != tt.wantCmd.nightRate {
				t.Errorf("nightRate = %v, want %v", got.nightRate, tt.wantCmd.nightRate)
			}
			if got.format != tt.wantCmd.format {
				t.Errorf("format = %q, want %q", got.format, tt.wantCmd.format)
			}
			if got.compact != tt.wantCmd.compact {
				t.Errorf("compact = %v, want %v", got.compact, tt.wantCmd.compact)
			}
		})
	}
}

// TestRunWatchCommand tests watch command flag parsing.
func TestRunWatchCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantCmd   watchCommand
		wantError bool
	}{
		{
			name: "default flags",
			args: []string{},
			wantCmd: watchCommand{
				debounce:   200 * time.Millisecond,
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "custom debounce",
			args: []string{"-debounce", "500ms"},
			wantCmd: watchCommand{
				debounce:   500 * time.Millisecond,
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
		{
			name: "spot contract with format",
			args: []string{"-contract", "spot", "-format", "simple"},
			wantCmd: watchCommand{
				contractFlags: contractFlags{
					contract: "spot",
				},
				format:     "simple",
				debounce:   200 * time.Millisecond,
				configPath: "/test/config.yaml",
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Parse flags
			fs := flag.NewFlagSet("watch", flag.ContinueOnError)

			var cf contractFlags
			cf.register(fs)
			format := fs.String("format", "", "output format")
			debounce := fs.Duration("debounce", 200*time.Millisecond, "coalesce window")

			err := fs.Parse(tt.args)
			if tt.wantError && err == nil {
				t.Fatal("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantError {
				return
			}

			// Create command
			got := &watchCommand{
				contractFlags: cf,
				format:        *format,
				debounce:      *debounce,
				configPath:    "/test/config.yaml",
			}

			// Verify fields
			if got.contract != tt.wantCmd.contract {
				t.Errorf("contract = %q, want %q", got.contract, tt.wantCmd.contract)
			}
			if got.debounce != tt.wantCmd.debounce {
				t.Errorf("debounce = %v, want %v", got.debounce, tt.wantCmd.debounce)
			}
			if got.format != tt.wantCmd.format {
				t.Errorf("format = %q, want %q", got.format, tt.wantCmd.format)
			}
		})
	}
}

// TestCommandRouting tests that commands are routed correctly.
func TestCommandRouting(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		shouldRoute bool
	}{
		{"cost command", "cost", true},
		{"prices command", "prices", true},
		{"watch command", "watch", true},
		{"publish command", "publish", true},
		{"config command", "config", true},
		{"help command", "help", true},
		{"unknown command", "unknown", false},
		{"invalid command", "invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Verify command name can be parsed
			validCommands := map[string]bool{
				"cost":    true,
				"prices":  true,
				"watch":   true,
				"publish": true,
				"config":  true,
				"help":    true,
			}

			isValid := validCommands[tt.command]
			if isValid != tt.shouldRoute {
				t.Errorf("command %q validity = %v, want %v", tt.command, isValid, tt.shouldRoute)
			}
		})
	}
}

// TestVersionFlag tests version flag handling.
func TestVersionFlag(t *testing.T) {
	// Set version
	version = "v0.1.0"

	// Test that version is set correctly
	if version != "v0.1.0" {
		t.Errorf("version = %q, want %q", version, "v0.1.0")
	}

	// Reset to dev for other tests
	version = "dev"
}
