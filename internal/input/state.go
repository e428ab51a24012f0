// Package input abstracts the device side of the engine: a Source exposes an
// ordered profile candidate list, a handedness, and a raw gamepad snapshot.
// The SDL3 reader implements Source for physical joysticks.
package input

import "math"

// Button is the raw state of one physical button.
type Button struct {
	Value   float64 `json:"value"`
	Touched bool    `json:"touched"`
	Pressed bool    `json:"pressed"`
}

// Snapshot is one tick's worth of raw device state.
type Snapshot struct {
	Connected bool      `json:"connected"`
	Name      string    `json:"name,omitempty"`
	Buttons   []Button  `json:"buttons"`
	Axes      []float64 `json:"axes"`
}

// NormalizeAxis converts a raw SDL axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}
