package models

import "fmt"

// ScheduleStep is a single (state, duration) step of a cooking schedule.
// DurationSeconds == 0 means "hold indefinitely" and is only meaningful
// as the final step.
type ScheduleStep struct {
	State           HeatState `json:"state"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Schedule is an ordered, optionally repeating sequence of steps,
// identified by name for lookup and persistence.
type Schedule struct {
	Name   string         `json:"name"`
	Steps  []ScheduleStep `json:"steps"`
	Repeat bool           `json:"repeat"`
}

// TotalDuration returns the summed duration of all steps in seconds.
// An indefinite final step contributes zero.
func (s Schedule) TotalDuration() int {
	total := 0
	for _, step := range s.Steps {
		total += step.DurationSeconds
	}
	return total
}

// FormatDuration renders a second count as "3h 30m", "45m" or "indefinite".
func FormatDuration(seconds int) string {
	if seconds == 0 {
		return "indefinite"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
