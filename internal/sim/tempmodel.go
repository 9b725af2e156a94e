package sim

import (
	"math/rand"

	"crockpot_twin/internal/models"
)

// ----------- Physical model constants -----------
const (
	RoomTempF        = 70.0 // ambient temperature °F
	HeatingRateFPS   = 2.0  // °F per second while the main relay is on
	CoolingCoeff     = 0.02 // exponential decay coefficient toward ambient
	NoiseAmplitudeF  = 0.5  // sensor jitter bound, ±°F per tick
	OvershootMarginF = 10.0 // allowed rise above target while heating
	MinTempF         = RoomTempF - 10
	MaxTempF         = 400.0
)

// targetTempsF maps each heat state to its steady-state target, indexed
// by the state's ordinal value.
var targetTempsF = [models.NumHeatStates]float64{
	models.HeatOff:  RoomTempF,
	models.HeatWarm: 150.0,
	models.HeatLow:  200.0,
	models.HeatHigh: 300.0,
}

// NoiseSource produces one bounded jitter sample per tick. It is
// injectable so tests can pin the sequence.
type NoiseSource interface {
	Jitter() float64
}

type randNoise struct{ amplitude float64 }

func (n randNoise) Jitter() float64 {
	return (rand.Float64()*2 - 1) * n.amplitude
}

// TempModel is a first-order approximation of pot temperature: linear
// ramp toward the state target while heating, exponential decay toward
// ambient otherwise. Not a PID-accurate simulation.
type TempModel struct {
	temperature   float64
	faultInjected bool
	faulted       bool
	noise         NoiseSource
}

// NewTempModel returns a model at ambient with entropy-seeded jitter.
func NewTempModel() *TempModel {
	return NewTempModelWithNoise(randNoise{amplitude: NoiseAmplitudeF})
}

// NewTempModelWithNoise allows tests to supply a deterministic source.
func NewTempModelWithNoise(noise NoiseSource) *TempModel {
	return &TempModel{temperature: RoomTempF, noise: noise}
}

// Advance moves the temperature one step of dt seconds and returns the
// new reading. While a fault is injected the last reading is returned
// unchanged and no heating/cooling math runs.
func (m *TempModel) Advance(state models.HeatState, heaterOn bool, dt float64) float64 {
	if m.faultInjected {
		m.faulted = true
		return m.temperature
	}
	m.faulted = false

	target := RoomTempF
	if state.Valid() {
		target = targetTempsF[state]
	}

	if heaterOn && m.temperature < target {
		m.temperature += HeatingRateFPS * dt
		if m.temperature > target+OvershootMarginF {
			m.temperature = target + OvershootMarginF
		}
	} else {
		diff := m.temperature - RoomTempF
		m.temperature -= diff * CoolingCoeff * dt
	}

	m.temperature += m.noise.Jitter()

	if m.temperature < MinTempF {
		m.temperature = MinTempF
	}
	if m.temperature > MaxTempF {
		m.temperature = MaxTempF
	}
	return m.temperature
}

// InjectFault flips the operator fault override. No other side effects.
func (m *TempModel) InjectFault(fault bool) {
	m.faultInjected = fault
}

// HasFault reports whether the last reading was faulted.
func (m *TempModel) HasFault() bool { return m.faulted }

// Temperature returns the current reading without advancing the model.
func (m *TempModel) Temperature() float64 { return m.temperature }
