package service

import (
	"fmt"
	"sync"

	"crockpot_twin/internal/models"
	"crockpot_twin/internal/sim"
)

// Engine serializes all access to the simulation core. The sim package
// is single-threaded by contract; this mutex is the single mutation
// point that makes status snapshots tear-free for concurrent readers.
//
// Engine callbacks collect notifications instead of doing I/O: the
// tick path must never touch the database, so pending events are
// drained by the caller after the lock is released.
type Engine struct {
	mu       sync.Mutex
	pot      *sim.Crockpot
	registry *sim.Registry
	pending  []models.ApplianceEvent
}

// NewEngine wires the state machine to a notification collector. The
// temperature model and history may be nil for defaults.
func NewEngine(cfg sim.Config, temp *sim.TempModel, history *sim.History, registry *sim.Registry) *Engine {
	e := &Engine{registry: registry}
	e.pot = sim.NewCrockpot(cfg, temp, history, sim.Callbacks{
		OnStateChange: func(s models.HeatState) {
			e.push(models.EventStateChange, "State set to "+s.String(),
				map[string]any{"state": s.String()})
		},
		OnSafetyShutoff: func(reason string) {
			e.push(models.EventSafetyShutoff, reason, nil)
		},
		OnStepChange: func(i int, step models.ScheduleStep) {
			e.push(models.EventScheduleStep,
				fmt.Sprintf("Schedule advanced to step %d (%s)", i+1, step.State),
				map[string]any{"step": i, "state": step.State.String(), "duration_s": step.DurationSeconds})
		},
		OnScheduleComplete: func(name string) {
			e.push(models.EventScheduleComplete, "Schedule "+name+" completed",
				map[string]any{"name": name})
		},
	})
	return e
}

// push is only called from sim callbacks, which fire while mu is held.
func (e *Engine) push(typ, description string, meta map[string]any) {
	ev := models.ApplianceEvent{Type: typ, Description: description}
	if meta != nil {
		ev.Metadata = meta
	}
	e.pending = append(e.pending, ev)
}

// do runs f under the engine lock and returns the notifications the
// operation produced, leaving the pending queue empty.
func (e *Engine) do(f func(pot *sim.Crockpot)) []models.ApplianceEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	f(e.pot)
	notes := e.pending
	e.pending = nil
	return notes
}

// Tick advances the twin one second and returns the notifications.
func (e *Engine) Tick() []models.ApplianceEvent {
	return e.do(func(pot *sim.Crockpot) { pot.Tick() })
}

// Status snapshots the appliance atomically.
func (e *Engine) Status() models.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pot.Status()
}

// ScheduleStatus formats the running schedule for display.
func (e *Engine) ScheduleStatus() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pot.Runner().FormatStatus()
}

// Registry accessors stay behind the engine lock so registry edits and
// StartSchedule lookups cannot interleave.

func (e *Engine) Schedules() []models.Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.All()
}

func (e *Engine) Schedule(name string) (models.Schedule, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Get(name)
}

func (e *Engine) SaveSchedule(s models.Schedule) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Add(s)
}

func (e *Engine) DeleteSchedule(name string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Remove(name)
}

// History accessors. The history log lives inside the tick path, so
// reads and exports share the engine lock.

func (e *Engine) withHistory(f func(h *sim.History)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if h := e.pot.History(); h != nil {
		f(h)
	}
}
