package sim

import (
	"math"
	"testing"

	"crockpot_twin/internal/models"
)

// ---- Test doubles ----

// zeroNoise removes jitter so temperature math is exact.
type zeroNoise struct{}

func (zeroNoise) Jitter() float64 { return 0 }

// fixedNoise returns the same sample every tick.
type fixedNoise struct{ v float64 }

func (n fixedNoise) Jitter() float64 { return n.v }

// ---- Tests ----

func TestTempModel_HeatsLinearlyTowardTarget(t *testing.T) {
	m := NewTempModelWithNoise(zeroNoise{})

	got := m.Advance(models.HeatHigh, true, 1.0)
	want := RoomTempF + HeatingRateFPS
	if got != want {
		t.Fatalf("got %.2f, want %.2f", got, want)
	}

	got = m.Advance(models.HeatHigh, true, 2.0)
	want += HeatingRateFPS * 2
	if got != want {
		t.Fatalf("got %.2f, want %.2f", got, want)
	}
}

func TestTempModel_ClampsOvershootAboveTarget(t *testing.T) {
	m := NewTempModelWithNoise(zeroNoise{})

	// A single huge step would jump far past the WARM target.
	got := m.Advance(models.HeatWarm, true, 500)
	want := targetTempsF[models.HeatWarm] + OvershootMarginF
	if got != want {
		t.Fatalf("got %.2f, want %.2f (target + overshoot margin)", got, want)
	}
}

func TestTempModel_CoolsExponentiallyTowardAmbient(t *testing.T) {
	m := NewTempModelWithNoise(zeroNoise{})
	m.Advance(models.HeatHigh, true, 50) // heat to 170

	before := m.Temperature()
	got := m.Advance(models.HeatOff, false, 1.0)
	want := before - (before-RoomTempF)*CoolingCoeff
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %.4f, want %.4f", got, want)
	}
}

func TestTempModel_HeaterOffMeansDecayEvenWhenBelowTarget(t *testing.T) {
	m := NewTempModelWithNoise(zeroNoise{})
	m.Advance(models.HeatHigh, true, 30) // 130F, well below HIGH target

	before := m.Temperature()
	got := m.Advance(models.HeatHigh, false, 1.0)
	if got >= before {
		t.Fatalf("expected decay with heater off, got %.2f from %.2f", got, before)
	}
}

func TestTempModel_FaultFreezesReadingAndClears(t *testing.T) {
	m := NewTempModelWithNoise(zeroNoise{})
	m.Advance(models.HeatHigh, true, 10)
	frozen := m.Temperature()

	m.InjectFault(true)
	for i := 0; i < 5; i++ {
		if got := m.Advance(models.HeatHigh, true, 1.0); got != frozen {
			t.Fatalf("tick %d: faulted reading moved: got %.2f, want %.2f", i, got, frozen)
		}
	}
	if !m.HasFault() {
		t.Fatalf("expected fault flag while injected")
	}

	m.InjectFault(false)
	got := m.Advance(models.HeatHigh, true, 1.0)
	if got != frozen+HeatingRateFPS {
		t.Fatalf("expected normal progression after clearing fault, got %.2f", got)
	}
	if m.HasFault() {
		t.Fatalf("residual fault flag after clearing")
	}
}

func TestTempModel_JitterStaysWithinAmplitudeBound(t *testing.T) {
	m := NewTempModel()

	// Hold OFF at ambient: the deterministic part of each step is the
	// decay term, so any residual move must be bounded by the jitter
	// amplitude plus that decay. The bound is the invariant, not the
	// sampled values.
	for i := 0; i < 1000; i++ {
		before := m.Temperature()
		after := m.Advance(models.HeatOff, false, 1.0)
		decay := math.Abs(before-RoomTempF) * CoolingCoeff
		if math.Abs(after-before) > NoiseAmplitudeF+decay+1e-9 {
			t.Fatalf("tick %d: step %.4f exceeds jitter bound", i, after-before)
		}
	}
}

func TestTempModel_ClampsToPhysicalBounds(t *testing.T) {
	m := NewTempModelWithNoise(fixedNoise{v: -1000})
	if got := m.Advance(models.HeatOff, false, 1.0); got != MinTempF {
		t.Fatalf("got %.2f, want floor %.2f", got, MinTempF)
	}

	m = NewTempModelWithNoise(fixedNoise{v: 1000})
	if got := m.Advance(models.HeatOff, false, 1.0); got != MaxTempF {
		t.Fatalf("got %.2f, want ceiling %.2f", got, MaxTempF)
	}
}
