package service

import (
	"context"
	"errors"
	"fmt"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/repository"
	"crockpot_twin/internal/sim"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrEmptySchedule    = errors.New("schedule has no steps")

	errInvalidState     = errors.New("invalid heat state")
	errInvalidSafetyCfg = errors.New("invalid config: safety_temp_f and control_interval_ms must be positive")
)

// ApplianceService applies commands to the engine and records every
// resulting notification in the audit log. Persistence failures are
// logged by the caller but never roll back an applied command: the
// appliance state already changed, exactly as on the real board.
type ApplianceService struct {
	engine *Engine
	events repository.EventRepo
}

func NewApplianceService(engine *Engine, events repository.EventRepo) *ApplianceService {
	return &ApplianceService{engine: engine, events: events}
}

func (s *ApplianceService) persist(ctx context.Context, notes []models.ApplianceEvent) {
	for _, ev := range notes {
		// Best effort: an audit write failure must not fail the command.
		_ = s.events.Append(ctx, ev)
	}
}

// SetState switches the heat state. All four states are reachable from
// any state, so the only rejected input is an undefined value.
func (s *ApplianceService) SetState(ctx context.Context, state models.HeatState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: %d", errInvalidState, int(state))
	}
	notes := s.engine.do(func(pot *sim.Crockpot) { pot.SetState(state) })
	s.persist(ctx, notes)
	return nil
}

// StartSchedule resolves a schedule by name and starts it.
func (s *ApplianceService) StartSchedule(ctx context.Context, name string) error {
	schedule, ok := s.engine.Schedule(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrScheduleNotFound, name)
	}

	started := false
	notes := s.engine.do(func(pot *sim.Crockpot) { started = pot.StartSchedule(schedule) })
	if !started {
		return fmt.Errorf("%w: %q", ErrEmptySchedule, name)
	}

	// The start event precedes the state/step notifications it caused.
	notes = append([]models.ApplianceEvent{{
		Type:        models.EventScheduleStart,
		Description: "Schedule " + name + " started",
		Metadata:    map[string]any{"name": name, "steps": len(schedule.Steps), "repeat": schedule.Repeat},
	}}, notes...)
	s.persist(ctx, notes)
	return nil
}

// StopSchedule cancels the running schedule. Stopping when idle is a
// no-op, not an error.
func (s *ApplianceService) StopSchedule(ctx context.Context) error {
	wasActive := false
	var name string
	notes := s.engine.do(func(pot *sim.Crockpot) {
		wasActive = pot.Runner().Active()
		name = pot.Runner().ActiveName()
		pot.StopSchedule()
	})
	if wasActive {
		notes = append(notes, models.ApplianceEvent{
			Type:        models.EventScheduleStop,
			Description: "Schedule " + name + " stopped",
			Metadata:    map[string]any{"name": name},
		})
	}
	s.persist(ctx, notes)
	return nil
}

// InjectFault flips the simulated sensor fault.
func (s *ApplianceService) InjectFault(ctx context.Context, active bool) error {
	notes := s.engine.do(func(pot *sim.Crockpot) { pot.InjectFault(active) })
	notes = append(notes, models.ApplianceEvent{
		Type:        models.EventFaultInjected,
		Description: fmt.Sprintf("Sensor fault override set to %v", active),
		Metadata:    map[string]any{"active": active},
	})
	s.persist(ctx, notes)
	return nil
}

// UpdateConfig applies a new safety ceiling and tick interval.
func (s *ApplianceService) UpdateConfig(ctx context.Context, p ConfigParams) error {
	if p.SafetyTempF <= 0 || p.ControlIntervalMS <= 0 {
		return errInvalidSafetyCfg
	}
	notes := s.engine.do(func(pot *sim.Crockpot) {
		pot.UpdateConfig(p.SafetyTempF, p.ControlIntervalMS)
	})
	notes = append(notes, models.ApplianceEvent{
		Type:        models.EventConfigUpdate,
		Description: "Configuration updated",
		Metadata:    map[string]any{"safety_temp_f": p.SafetyTempF, "control_interval_ms": p.ControlIntervalMS},
	})
	s.persist(ctx, notes)
	return nil
}
