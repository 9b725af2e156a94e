package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HeatState is the single authoritative control mode of the appliance.
// The ordinal value indexes the target-temperature table in the simulator.
type HeatState int

const (
	HeatOff HeatState = iota
	HeatWarm
	HeatLow
	HeatHigh
)

const NumHeatStates = 4

var heatStateNames = [NumHeatStates]string{"OFF", "WARM", "LOW", "HIGH"}

// String returns the symbolic name ("OFF", "WARM", "LOW", "HIGH").
func (s HeatState) String() string {
	if s < 0 || int(s) >= NumHeatStates {
		return fmt.Sprintf("HeatState(%d)", int(s))
	}
	return heatStateNames[s]
}

// Valid reports whether s is one of the four defined states.
func (s HeatState) Valid() bool {
	return s >= HeatOff && int(s) < NumHeatStates
}

// ParseHeatState parses a state name, case-insensitively.
func ParseHeatState(v string) (HeatState, error) {
	name := strings.ToUpper(strings.TrimSpace(v))
	for i, n := range heatStateNames {
		if n == name {
			return HeatState(i), nil
		}
	}
	return HeatOff, fmt.Errorf("unknown heat state %q", v)
}

// MarshalJSON encodes the state by its symbolic name so persisted
// documents stay readable and stable across firmware revisions.
func (s HeatState) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid heat state %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *HeatState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseHeatState(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
