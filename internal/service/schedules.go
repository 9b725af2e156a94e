package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crockpot_twin/internal/models"
)

var (
	errScheduleNoName     = errors.New("schedule name is required")
	errScheduleNoSteps    = errors.New("schedule needs at least one step")
	errNegativeDuration   = errors.New("step duration cannot be negative")
	errIndefiniteNotFinal = errors.New("indefinite step must be the final step")
)

// ScheduleService validates and manages cooking programs. Preset
// programs are read-only; custom ones live in the file-backed registry.
type ScheduleService struct {
	engine *Engine
}

func NewScheduleService(engine *Engine) *ScheduleService {
	return &ScheduleService{engine: engine}
}

func (s *ScheduleService) List() []models.Schedule {
	return s.engine.Schedules()
}

func (s *ScheduleService) Get(name string) (models.Schedule, bool) {
	return s.engine.Schedule(name)
}

// Save validates and upserts a custom schedule.
func (s *ScheduleService) Save(ctx context.Context, schedule models.Schedule) error {
	if err := validateSchedule(schedule); err != nil {
		return err
	}
	return s.engine.SaveSchedule(schedule)
}

// Delete removes a custom schedule. Returns false when the name is
// unknown or refers to a preset.
func (s *ScheduleService) Delete(ctx context.Context, name string) (bool, error) {
	return s.engine.DeleteSchedule(name)
}

func validateSchedule(schedule models.Schedule) error {
	if strings.TrimSpace(schedule.Name) == "" {
		return errScheduleNoName
	}
	if len(schedule.Steps) == 0 {
		return errScheduleNoSteps
	}
	for i, step := range schedule.Steps {
		if !step.State.Valid() {
			return fmt.Errorf("step %d: invalid heat state %d", i+1, int(step.State))
		}
		if step.DurationSeconds < 0 {
			return fmt.Errorf("step %d: %w", i+1, errNegativeDuration)
		}
		// A zero duration holds forever, so nothing after it can run.
		if step.DurationSeconds == 0 && i != len(schedule.Steps)-1 {
			return fmt.Errorf("step %d: %w", i+1, errIndefiniteNotFinal)
		}
	}
	return nil
}
