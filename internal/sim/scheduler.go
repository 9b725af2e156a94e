package sim

import (
	"fmt"

	"crockpot_twin/internal/models"
)

// RunnerCallbacks are fired synchronously from Start/Tick. The runner
// holds no reference to the state machine; the owner wires the state
// callback back into it, which keeps the dependency one-directional.
type RunnerCallbacks struct {
	OnStateChange      func(models.HeatState)
	OnStepChange       func(stepIndex int, step models.ScheduleStep)
	OnScheduleComplete func(name string)
}

// ScheduleRunner executes one schedule at a time, one tick per second.
// It is Idle whenever no schedule is loaded.
type ScheduleRunner struct {
	callbacks RunnerCallbacks

	active      *models.Schedule
	stepIndex   int
	stepElapsed int
}

func NewScheduleRunner(callbacks RunnerCallbacks) *ScheduleRunner {
	return &ScheduleRunner{callbacks: callbacks}
}

// Active reports whether a schedule is currently running.
func (r *ScheduleRunner) Active() bool { return r.active != nil }

// ActiveName returns the running schedule's name, or "".
func (r *ScheduleRunner) ActiveName() string {
	if r.active == nil {
		return ""
	}
	return r.active.Name
}

// StepIndex returns the 0-based index of the current step.
func (r *ScheduleRunner) StepIndex() int { return r.stepIndex }

// TotalSteps returns the step count of the active schedule, 0 when idle.
func (r *ScheduleRunner) TotalSteps() int {
	if r.active == nil {
		return 0
	}
	return len(r.active.Steps)
}

func (r *ScheduleRunner) currentStep() (models.ScheduleStep, bool) {
	if r.active == nil || r.stepIndex >= len(r.active.Steps) {
		return models.ScheduleStep{}, false
	}
	return r.active.Steps[r.stepIndex], true
}

// StepRemaining returns seconds left in the current step, 0 for an
// indefinite step or when idle.
func (r *ScheduleRunner) StepRemaining() int {
	step, ok := r.currentStep()
	if !ok || step.DurationSeconds == 0 {
		return 0
	}
	remaining := step.DurationSeconds - r.stepElapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StepProgress returns elapsed/duration clamped to [0,1], 0.0 for
// indefinite steps.
func (r *ScheduleRunner) StepProgress() float64 {
	step, ok := r.currentStep()
	if !ok || step.DurationSeconds == 0 {
		return 0.0
	}
	p := float64(r.stepElapsed) / float64(step.DurationSeconds)
	if p > 1.0 {
		return 1.0
	}
	return p
}

// Start begins executing a schedule from step 0, applying the first
// step's state immediately. A schedule with no steps is rejected and
// leaves the runner idle.
func (r *ScheduleRunner) Start(schedule models.Schedule) bool {
	if len(schedule.Steps) == 0 {
		return false
	}

	// Copy so later registry edits cannot mutate the running schedule.
	steps := make([]models.ScheduleStep, len(schedule.Steps))
	copy(steps, schedule.Steps)
	schedule.Steps = steps

	r.active = &schedule
	r.stepIndex = 0
	r.stepElapsed = 0

	first := schedule.Steps[0]
	if r.callbacks.OnStateChange != nil {
		r.callbacks.OnStateChange(first.State)
	}
	if r.callbacks.OnStepChange != nil {
		r.callbacks.OnStepChange(0, first)
	}
	return true
}

// Stop clears the run state. Idempotent.
func (r *ScheduleRunner) Stop() {
	r.active = nil
	r.stepIndex = 0
	r.stepElapsed = 0
}

// Tick advances the schedule by one second. A step with duration 0
// holds forever; only Stop or a new Start moves past it.
func (r *ScheduleRunner) Tick() {
	step, ok := r.currentStep()
	if !ok {
		return
	}

	r.stepElapsed++

	if step.DurationSeconds > 0 && r.stepElapsed >= step.DurationSeconds {
		r.advanceStep()
	}
}

func (r *ScheduleRunner) advanceStep() {
	next := r.stepIndex + 1

	if next >= len(r.active.Steps) {
		if r.active.Repeat {
			next = 0
		} else {
			name := r.active.Name
			r.Stop()
			if r.callbacks.OnScheduleComplete != nil {
				r.callbacks.OnScheduleComplete(name)
			}
			return
		}
	}

	r.stepIndex = next
	r.stepElapsed = 0

	step := r.active.Steps[next]
	if r.callbacks.OnStateChange != nil {
		r.callbacks.OnStateChange(step.State)
	}
	if r.callbacks.OnStepChange != nil {
		r.callbacks.OnStepChange(next, step)
	}
}

// FormatStatus renders the run state for display, e.g.
// "Slow Cook - Step 1/3: HIGH (3h left)".
func (r *ScheduleRunner) FormatStatus() string {
	step, ok := r.currentStep()
	if !ok {
		return "No schedule"
	}
	pos := r.stepIndex + 1
	total := len(r.active.Steps)
	if step.DurationSeconds > 0 {
		return fmt.Sprintf("%s - Step %d/%d: %s (%s left)",
			r.active.Name, pos, total, step.State, models.FormatDuration(r.StepRemaining()))
	}
	return fmt.Sprintf("%s - Step %d/%d: %s (indefinite)", r.active.Name, pos, total, step.State)
}
