package service

import "time"

// ConfigParams is the runtime-updatable engine configuration.
type ConfigParams struct {
	SafetyTempF       float64 // over-temperature shutoff ceiling, °F
	ControlIntervalMS int     // informational tick interval
}

// LogFilter narrows audit-log queries by time range and event type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", or one of the models.Event* constants
}
