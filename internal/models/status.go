package models

// Status is an immutable snapshot of the whole appliance, produced fresh
// on every query. Cross-thread readers rely on it being copied under the
// engine's single mutation point.
type Status struct {
	State                 HeatState `json:"state"`
	TemperatureF          float64   `json:"temperature_f"`
	UptimeSeconds         int       `json:"uptime_seconds"`
	SensorFault           bool      `json:"sensor_fault"`
	RelayMain             bool      `json:"relay_main"`
	RelayAux              bool      `json:"relay_aux"`
	ScheduleActive        bool      `json:"schedule_active"`
	ScheduleName          string    `json:"schedule_name,omitempty"`
	ScheduleStep          int       `json:"schedule_step"`
	ScheduleTotalSteps    int       `json:"schedule_total_steps"`
	ScheduleStepRemaining int       `json:"schedule_step_remaining"`
	ScheduleStepProgress  float64   `json:"schedule_step_progress"`
}
