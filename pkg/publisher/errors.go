package publisher

import "errors"

// Common errors returned by the publisher package.
var (
	// ErrPublishingDisabled is returned when publishing is not
	// enabled in the configuration.
	ErrPublishingDisabled = errors.New("home assistant publishing is not enabled")

	// ErrNoBroker is returned when no broker address is configured.
	ErrNoBroker = errors.New("no MQTT broker configured")

	// ErrPublishTimeout is returned when the broker does not
	// acknowledge a publish in time.
	ErrPublishTimeout = errors.New("publish timed out")
)
