package models

// LogEntry is a point-in-time capture taken by the history log.
// Timestamp is uptime seconds at capture time, never wall clock, so
// exported documents stay comparable across restarts of the twin.
type LogEntry struct {
	Timestamp      int       `json:"timestamp"`
	TemperatureF   float64   `json:"temperature_f"`
	State          HeatState `json:"state"`
	RelayMain      bool      `json:"relay_main"`
	RelayAux       bool      `json:"relay_aux"`
	ScheduleActive bool      `json:"schedule_active"`
	ScheduleName   string    `json:"schedule_name"`
	ScheduleStep   int       `json:"schedule_step"`
}

// HistoryStats aggregates the whole history buffer. All fields are zero
// when the buffer is empty.
type HistoryStats struct {
	MinTempF        float64 `json:"min_temp_f"`
	MaxTempF        float64 `json:"max_temp_f"`
	AvgTempF        float64 `json:"avg_temp_f"`
	DurationSeconds int     `json:"duration_seconds"`
	EntryCount      int     `json:"entry_count"`
}
