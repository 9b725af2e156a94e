package sim

import (
	"fmt"

	"crockpot_twin/internal/models"
)

// MaxSensorFaults is the persistent-fault counter threshold. The counter
// must exceed it (strictly) before the shutoff fires, matching the
// firmware's behavior of tolerating exactly ten faulted reads.
const MaxSensorFaults = 10

// Defaults mirror the firmware header constants.
const (
	DefaultSafetyTempF       = 300.0
	DefaultControlIntervalMS = 1000
)

// RelayPair is one row of the state→relay wiring table.
type RelayPair struct {
	Main bool
	Aux  bool
}

// DefaultRelayTable is the stock wiring: WARM drives the aux relay only,
// LOW the main relay only, HIGH both. Firmware revisions differ, so the
// table is configuration rather than code.
var DefaultRelayTable = [models.NumHeatStates]RelayPair{
	models.HeatOff:  {Main: false, Aux: false},
	models.HeatWarm: {Main: false, Aux: true},
	models.HeatLow:  {Main: true, Aux: false},
	models.HeatHigh: {Main: true, Aux: true},
}

// Config carries the tunables read from configuration at construction
// and updatable at runtime via UpdateConfig.
type Config struct {
	SafetyTempF       float64
	ControlIntervalMS int
	RelayTable        [models.NumHeatStates]RelayPair
}

// DefaultConfig returns the stock firmware configuration.
func DefaultConfig() Config {
	return Config{
		SafetyTempF:       DefaultSafetyTempF,
		ControlIntervalMS: DefaultControlIntervalMS,
		RelayTable:        DefaultRelayTable,
	}
}

// Callbacks are the engine's notification surface. They fire
// synchronously inside Tick/SetState and must not re-enter the engine.
type Callbacks struct {
	OnStateChange      func(models.HeatState)
	OnSafetyShutoff    func(reason string)
	OnStepChange       func(stepIndex int, step models.ScheduleStep)
	OnScheduleComplete func(name string)
}

// Crockpot is the digital twin of the controller board's state machine.
// It owns the authoritative heat state, the temperature model, the
// schedule runner and the history log, and is advanced by exactly one
// driver calling Tick once per simulated second. It is not safe for
// concurrent use; callers serialize access at the boundary.
type Crockpot struct {
	cfg       Config
	callbacks Callbacks

	state             models.HeatState
	uptime            int
	consecutiveFaults int
	relayMain         bool
	relayAux          bool

	temp    *TempModel
	runner  *ScheduleRunner
	history *History
}

// NewCrockpot builds an engine in the Off state at ambient temperature.
// The history log may be nil to disable sampling.
func NewCrockpot(cfg Config, temp *TempModel, history *History, callbacks Callbacks) *Crockpot {
	if temp == nil {
		temp = NewTempModel()
	}
	c := &Crockpot{
		cfg:       cfg,
		callbacks: callbacks,
		state:     models.HeatOff,
		temp:      temp,
		history:   history,
	}
	// The runner feeds state changes back through applyScheduledState so
	// it never holds a reference to the engine itself.
	c.runner = NewScheduleRunner(RunnerCallbacks{
		OnStateChange:      c.applyScheduledState,
		OnStepChange:       callbacks.OnStepChange,
		OnScheduleComplete: callbacks.OnScheduleComplete,
	})
	return c
}

// State returns the current authoritative heat state.
func (c *Crockpot) State() models.HeatState { return c.state }

// Runner exposes the schedule runner for queries.
func (c *Crockpot) Runner() *ScheduleRunner { return c.runner }

// History exposes the history log, which may be nil.
func (c *Crockpot) History() *History { return c.history }

// SetState unconditionally switches the heat state and recomputes relay
// outputs. All transitions are legal; it always succeeds.
func (c *Crockpot) SetState(state models.HeatState) bool {
	old := c.state
	c.state = state
	c.applyRelays()

	if old != state && c.callbacks.OnStateChange != nil {
		c.callbacks.OnStateChange(state)
	}
	return true
}

// applyScheduledState is the runner's state-change sink. Same semantics
// as SetState; kept separate so the wiring stays one-directional.
func (c *Crockpot) applyScheduledState(state models.HeatState) {
	old := c.state
	c.state = state
	c.applyRelays()

	if old != state && c.callbacks.OnStateChange != nil {
		c.callbacks.OnStateChange(state)
	}
}

func (c *Crockpot) applyRelays() {
	pair := RelayPair{}
	if c.state.Valid() {
		pair = c.cfg.RelayTable[c.state]
	}
	c.relayMain = pair.Main
	c.relayAux = pair.Aux
}

// Tick advances the twin by one second. Order is fixed: temperature,
// uptime, safety checks, scheduler, history. Faults never propagate out;
// they resolve to a state change plus a notification before Tick returns.
func (c *Crockpot) Tick() {
	temp := c.temp.Advance(c.state, c.relayMain, 1.0)
	sensorFault := c.temp.HasFault()

	c.uptime++

	// Safety check A: over-temperature, only on a valid reading.
	if !sensorFault && temp > c.cfg.SafetyTempF && c.state != models.HeatOff {
		c.safetyShutoff(fmt.Sprintf("Temperature %.1fF exceeds limit", temp))
	}

	// Safety check B: persistent sensor fault while heating. The counter
	// does not reset on a fault-free reading; only a shutoff clears it.
	if sensorFault && c.state != models.HeatOff {
		c.consecutiveFaults++
		if c.consecutiveFaults > MaxSensorFaults {
			c.safetyShutoff("Persistent sensor fault")
			c.consecutiveFaults = 0
		}
	}

	c.runner.Tick()

	if c.history != nil {
		if c.runner.Active() {
			c.history.SetScheduleInfo(true, c.runner.ActiveName(), c.runner.StepIndex())
		} else {
			c.history.SetScheduleInfo(false, "", 0)
		}
		c.history.Tick(c.Status())
	}
}

// safetyShutoff forces everything off and cancels any running schedule.
// This is the only path that cancels a schedule outside an explicit stop.
func (c *Crockpot) safetyShutoff(reason string) {
	c.relayMain = false
	c.relayAux = false
	c.state = models.HeatOff

	if c.runner.Active() {
		c.runner.Stop()
	}

	if c.callbacks.OnSafetyShutoff != nil {
		c.callbacks.OnSafetyShutoff(reason)
	}
}

// StartSchedule begins a cooking schedule. Returns false for a schedule
// with no steps.
func (c *Crockpot) StartSchedule(schedule models.Schedule) bool {
	return c.runner.Start(schedule)
}

// StopSchedule cancels the running schedule, if any.
func (c *Crockpot) StopSchedule() {
	c.runner.Stop()
}

// InjectFault flips the simulated sensor fault for testing.
func (c *Crockpot) InjectFault(fault bool) {
	c.temp.InjectFault(fault)
}

// UpdateConfig applies new safety ceiling and tick interval. The
// interval is informational; the driver owns real cadence.
func (c *Crockpot) UpdateConfig(safetyTempF float64, controlIntervalMS int) {
	c.cfg.SafetyTempF = safetyTempF
	c.cfg.ControlIntervalMS = controlIntervalMS
}

// Config returns the current configuration.
func (c *Crockpot) Config() Config { return c.cfg }

// Status assembles a complete immutable snapshot.
func (c *Crockpot) Status() models.Status {
	st := models.Status{
		State:         c.state,
		TemperatureF:  c.temp.Temperature(),
		UptimeSeconds: c.uptime,
		SensorFault:   c.temp.HasFault(),
		RelayMain:     c.relayMain,
		RelayAux:      c.relayAux,
	}
	if c.runner.Active() {
		st.ScheduleActive = true
		st.ScheduleName = c.runner.ActiveName()
		st.ScheduleStep = c.runner.StepIndex()
		st.ScheduleTotalSteps = c.runner.TotalSteps()
		st.ScheduleStepRemaining = c.runner.StepRemaining()
		st.ScheduleStepProgress = c.runner.StepProgress()
	}
	return st
}
