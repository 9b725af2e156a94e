package sim

import (
	"testing"

	"crockpot_twin/internal/models"
)

// runnerRecorder captures everything the runner fires.
type runnerRecorder struct {
	states    []models.HeatState
	steps     []int
	completed []string
}

func (r *runnerRecorder) callbacks() RunnerCallbacks {
	return RunnerCallbacks{
		OnStateChange:      func(s models.HeatState) { r.states = append(r.states, s) },
		OnStepChange:       func(i int, _ models.ScheduleStep) { r.steps = append(r.steps, i) },
		OnScheduleComplete: func(name string) { r.completed = append(r.completed, name) },
	}
}

func tickN(r *ScheduleRunner, n int) {
	for i := 0; i < n; i++ {
		r.Tick()
	}
}

func TestRunner_StartRejectsEmptySchedule(t *testing.T) {
	rec := &runnerRecorder{}
	r := NewScheduleRunner(rec.callbacks())

	if r.Start(models.Schedule{Name: "empty"}) {
		t.Fatalf("expected start to reject a schedule with no steps")
	}
	if r.Active() {
		t.Fatalf("runner should stay idle")
	}
	if len(rec.states) != 0 || len(rec.steps) != 0 {
		t.Fatalf("no callbacks expected, got states=%v steps=%v", rec.states, rec.steps)
	}
}

func TestRunner_StartAppliesFirstStepImmediately(t *testing.T) {
	rec := &runnerRecorder{}
	r := NewScheduleRunner(rec.callbacks())

	ok := r.Start(models.Schedule{
		Name:  "Roast",
		Steps: []models.ScheduleStep{{State: models.HeatHigh, DurationSeconds: 60}},
	})
	if !ok {
		t.Fatalf("start failed")
	}
	if len(rec.states) != 1 || rec.states[0] != models.HeatHigh {
		t.Fatalf("expected immediate HIGH, got %v", rec.states)
	}
	if len(rec.steps) != 1 || rec.steps[0] != 0 {
		t.Fatalf("expected step-change for index 0, got %v", rec.steps)
	}
}

func TestRunner_StepAdvanceTiming(t *testing.T) {
	rec := &runnerRecorder{}
	r := NewScheduleRunner(rec.callbacks())

	r.Start(models.Schedule{
		Name: "Slow Cook",
		Steps: []models.ScheduleStep{
			{State: models.HeatHigh, DurationSeconds: 3600},
			{State: models.HeatLow, DurationSeconds: 21600},
			{State: models.HeatWarm, DurationSeconds: 0},
		},
	})

	tickN(r, 3599)
	if r.StepIndex() != 0 {
		t.Fatalf("advanced too early: step %d", r.StepIndex())
	}
	r.Tick() // second 3600
	if r.StepIndex() != 1 {
		t.Fatalf("after 3600 ticks: step %d, want 1", r.StepIndex())
	}
	if rec.states[len(rec.states)-1] != models.HeatLow {
		t.Fatalf("expected LOW applied, got %v", rec.states)
	}

	tickN(r, 21600)
	if r.StepIndex() != 2 {
		t.Fatalf("after 3600+21600 ticks: step %d, want 2", r.StepIndex())
	}
	if rec.states[len(rec.states)-1] != models.HeatWarm {
		t.Fatalf("expected WARM applied, got %v", rec.states)
	}
	if r.StepRemaining() != 0 {
		t.Fatalf("indefinite step remaining = %d, want 0", r.StepRemaining())
	}
	if !r.Active() {
		t.Fatalf("indefinite hold must never auto-complete")
	}

	// Still holding far later.
	tickN(r, 100000)
	if !r.Active() || r.StepIndex() != 2 {
		t.Fatalf("indefinite hold drifted: active=%v step=%d", r.Active(), r.StepIndex())
	}
	if len(rec.completed) != 0 {
		t.Fatalf("unexpected completion %v", rec.completed)
	}
}

func TestRunner_CompletesWithoutRepeat(t *testing.T) {
	rec := &runnerRecorder{}
	r := NewScheduleRunner(rec.callbacks())

	r.Start(models.Schedule{
		Name:  "Short",
		Steps: []models.ScheduleStep{{State: models.HeatLow, DurationSeconds: 2}},
	})
	tickN(r, 2)

	if r.Active() {
		t.Fatalf("expected idle after final timed step")
	}
	if len(rec.completed) != 1 || rec.completed[0] != "Short" {
		t.Fatalf("expected completion for Short, got %v", rec.completed)
	}
}

func TestRunner_RepeatWrapsToFirstStep(t *testing.T) {
	rec := &runnerRecorder{}
	r := NewScheduleRunner(rec.callbacks())

	r.Start(models.Schedule{
		Name:   "Cycle",
		Repeat: true,
		Steps: []models.ScheduleStep{
			{State: models.HeatLow, DurationSeconds: 2},
			{State: models.HeatHigh, DurationSeconds: 3},
		},
	})

	tickN(r, 5) // 2 + 3 → wrap
	if !r.Active() {
		t.Fatalf("repeating schedule must stay active")
	}
	if r.StepIndex() != 0 {
		t.Fatalf("expected wrap to step 0, got %d", r.StepIndex())
	}
	if len(rec.completed) != 0 {
		t.Fatalf("repeating schedule must never complete, got %v", rec.completed)
	}
	// start LOW, advance HIGH, wrap LOW
	want := []models.HeatState{models.HeatLow, models.HeatHigh, models.HeatLow}
	if len(rec.states) != len(want) {
		t.Fatalf("state changes %v, want %v", rec.states, want)
	}
	for i := range want {
		if rec.states[i] != want[i] {
			t.Fatalf("state change %d = %v, want %v", i, rec.states[i], want[i])
		}
	}
}

func TestRunner_StopIsIdempotent(t *testing.T) {
	r := NewScheduleRunner(RunnerCallbacks{})
	r.Start(models.Schedule{
		Name:  "x",
		Steps: []models.ScheduleStep{{State: models.HeatWarm, DurationSeconds: 10}},
	})

	r.Stop()
	r.Stop()
	if r.Active() || r.StepIndex() != 0 || r.TotalSteps() != 0 {
		t.Fatalf("expected clean idle state after stop")
	}
	r.Tick() // no-op while idle
	if r.StepRemaining() != 0 || r.StepProgress() != 0 {
		t.Fatalf("idle queries must be zero")
	}
}

func TestRunner_ProgressAndRemaining(t *testing.T) {
	r := NewScheduleRunner(RunnerCallbacks{})
	r.Start(models.Schedule{
		Name:  "p",
		Steps: []models.ScheduleStep{{State: models.HeatLow, DurationSeconds: 10}, {State: models.HeatWarm, DurationSeconds: 0}},
	})

	tickN(r, 4)
	if got := r.StepRemaining(); got != 6 {
		t.Fatalf("remaining = %d, want 6", got)
	}
	if got := r.StepProgress(); got != 0.4 {
		t.Fatalf("progress = %.2f, want 0.40", got)
	}

	tickN(r, 6) // advance to indefinite step
	if got := r.StepProgress(); got != 0.0 {
		t.Fatalf("indefinite progress = %.2f, want 0", got)
	}
}

func TestRunner_FormatStatus(t *testing.T) {
	r := NewScheduleRunner(RunnerCallbacks{})
	if got := r.FormatStatus(); got != "No schedule" {
		t.Fatalf("idle status = %q", got)
	}

	r.Start(models.Schedule{
		Name: "Slow Cook",
		Steps: []models.ScheduleStep{
			{State: models.HeatHigh, DurationSeconds: 3 * 3600},
			{State: models.HeatWarm, DurationSeconds: 0},
		},
	})
	if got, want := r.FormatStatus(), "Slow Cook - Step 1/2: HIGH (3h left)"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}

	tickN(r, 3*3600)
	if got, want := r.FormatStatus(), "Slow Cook - Step 2/2: WARM (indefinite)"; got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}
