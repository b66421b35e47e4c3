package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoTimezone is returned when no timezone is configured.
	ErrNoTimezone = errors.New("no timezone configured")

	// ErrNoUsageFile is returned when no usage export path is configured.
	ErrNoUsageFile = errors.New("no usage export file configured")

	// ErrInvalidVAT is returned when the VAT multiplier is <= 0.
	ErrInvalidVAT = errors.New("invalid VAT multiplier: must be > 0")

	// ErrInvalidContractKind is returned when the contract kind is not
	// flat, daynight, or spot.
	ErrInvalidContractKind = errors.New("invalid contract kind: must be flat, daynight, or spot")

	// ErrNegativeRate is returned when a contract rate is negative.
	ErrNegativeRate = errors.New("invalid contract rate: must be >= 0")

	// ErrNoSpotFiles is returned when the spot contract has no price
	// source files.
	ErrNoSpotFiles = errors.New("spot contract requires at least one price source file")

	// ErrInvalidDisplayFormat is returned when the display format is
	// not recognized.
	ErrInvalidDisplayFormat = errors.New("invalid display format: must be table, json, or simple")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrNoBroker is returned when publishing is enabled without a
	// broker address.
	ErrNoBroker = errors.New("home assistant publishing requires a broker address")

	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML
	// syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
