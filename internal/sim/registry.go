package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crockpot_twin/internal/models"
)

// Presets returns the built-in cooking programs. A fresh slice is built
// per call so callers can never mutate the presets.
func Presets() []models.Schedule {
	return []models.Schedule{
		{
			Name: "Slow Cook",
			Steps: []models.ScheduleStep{
				{State: models.HeatHigh, DurationSeconds: 3 * 3600},
				{State: models.HeatLow, DurationSeconds: 6 * 3600},
				{State: models.HeatWarm, DurationSeconds: 0},
			},
		},
		{
			Name: "Quick Warm",
			Steps: []models.ScheduleStep{
				{State: models.HeatHigh, DurationSeconds: 1 * 3600},
				{State: models.HeatWarm, DurationSeconds: 0},
			},
		},
		{
			Name: "All Day",
			Steps: []models.ScheduleStep{
				{State: models.HeatLow, DurationSeconds: 8 * 3600},
				{State: models.HeatWarm, DurationSeconds: 0},
			},
		},
	}
}

// scheduleDocument is the on-disk shape of the custom registry.
type scheduleDocument struct {
	Schedules []models.Schedule `json:"schedules"`
}

// Registry holds custom cooking programs alongside the built-in presets
// and persists the custom set to a JSON document. The path is injected
// so tests get isolated storage.
type Registry struct {
	path   string
	custom []models.Schedule
}

// NewRegistry loads any existing document at path. A missing or
// malformed document is not an error; the registry starts empty.
func NewRegistry(path string) *Registry {
	r := &Registry{path: path}
	r.load()
	return r
}

// All returns presets followed by custom schedules, in that order.
func (r *Registry) All() []models.Schedule {
	out := Presets()
	return append(out, r.custom...)
}

// Custom returns only the user-defined schedules.
func (r *Registry) Custom() []models.Schedule {
	out := make([]models.Schedule, len(r.custom))
	copy(out, r.custom)
	return out
}

// Get resolves a schedule by name, presets first.
func (r *Registry) Get(name string) (models.Schedule, bool) {
	for _, s := range r.All() {
		if s.Name == name {
			return s, true
		}
	}
	return models.Schedule{}, false
}

// Add stores a custom schedule, replacing any existing entry with the
// same name, and persists the registry.
func (r *Registry) Add(schedule models.Schedule) error {
	for i, s := range r.custom {
		if s.Name == schedule.Name {
			r.custom[i] = schedule
			return r.save()
		}
	}
	r.custom = append(r.custom, schedule)
	return r.save()
}

// Remove deletes a custom schedule by name, reporting whether it was
// found. Presets cannot be removed.
func (r *Registry) Remove(name string) (bool, error) {
	for i, s := range r.custom {
		if s.Name == name {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			return true, r.save()
		}
	}
	return false, nil
}

func (r *Registry) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}
	var doc scheduleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// Invalid file, start fresh.
		r.custom = nil
		return
	}
	r.custom = doc.Schedules
}

func (r *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create schedule dir: %w", err)
	}
	data, err := json.MarshalIndent(scheduleDocument{Schedules: r.custom}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedules: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write schedules: %w", err)
	}
	return nil
}
