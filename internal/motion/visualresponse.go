// Package motion is the runtime mapping engine. It derives each component's
// raw values and discrete state from device input every tick and turns them
// into normalized presentation weights for the renderer.
package motion

import (
	"math"

	"github.com/soar/XRControllerView/backend/internal/profile"
)

// ComponentValues is one component's derived per-tick state.
type ComponentValues struct {
	Button *float64
	XAxis  *float64
	YAxis  *float64
	State  profile.State
}

// VisualResponse computes one presentation weight from a component's values.
// Transform responses carry a weight in [0,1]; visibility responses carry a
// boolean.
type VisualResponse struct {
	desc    *profile.VisualResponseDescription
	weight  float64
	visible bool
}

// NewVisualResponse validates the description and returns a response with its
// node-name defaults applied.
func NewVisualResponse(desc *profile.VisualResponseDescription) (*VisualResponse, error) {
	if desc == nil {
		return nil, &profile.ValidationError{Reason: "visual response description is required"}
	}
	if desc.RootNodeName == "" {
		return nil, &profile.ValidationError{Path: "visualResponse", Reason: "rootNodeName is required"}
	}
	switch desc.Source {
	case profile.SourceButton, profile.SourceXAxis, profile.SourceYAxis, profile.SourceState:
	default:
		return nil, &profile.ValidationError{Path: desc.RootNodeName, Reason: "a valid source is required"}
	}
	if len(desc.States) == 0 {
		return nil, &profile.ValidationError{Path: desc.RootNodeName, Reason: "states must be non-empty"}
	}
	if desc.Property == "" {
		desc.Property = profile.PropertyTransform
	}
	if desc.Property == profile.PropertyVisibility && desc.Source != profile.SourceState {
		return nil, &profile.ValidationError{Path: desc.RootNodeName, Reason: "visibility responses require the state source"}
	}
	if desc.TargetNodeName == "" {
		desc.TargetNodeName = profile.DefaultTargetNodeName
	}
	if desc.MinNodeName == "" {
		desc.MinNodeName = profile.DefaultMinNodeName
	}
	if desc.MaxNodeName == "" {
		desc.MaxNodeName = profile.DefaultMaxNodeName
	}
	return &VisualResponse{desc: desc}, nil
}

// Description returns the validated description.
func (v *VisualResponse) Description() *profile.VisualResponseDescription {
	return v.desc
}

// Weight returns the current transform weight in [0,1]. Meaningless for
// visibility responses.
func (v *VisualResponse) Weight() float64 {
	return v.weight
}

// Visible returns the current visibility. Meaningless for transform
// responses.
func (v *VisualResponse) Visible() bool {
	return v.visible
}

// UpdateFromComponent recomputes the weight from the component's current
// values.
//
// Axis-sourced responses gate to the neutral center 0.5 when their state gate
// is closed, never to 0: half travel is the rest pose of a two-axis control.
// When open, the (x, y) vector is confined to the unit disk before each axis
// is remapped to [0,1], so diagonal deflection never exceeds the travel of an
// axis-aligned one.
func (v *VisualResponse) UpdateFromComponent(values ComponentValues) {
	active := v.desc.ActiveFor(values.State)

	switch v.desc.Source {
	case profile.SourceState:
		if v.desc.Property == profile.PropertyVisibility {
			v.visible = active
		} else if active {
			v.weight = 1
		} else {
			v.weight = 0
		}

	case profile.SourceButton:
		if active {
			v.weight = floatValue(values.Button)
		} else {
			v.weight = 0
		}

	case profile.SourceXAxis, profile.SourceYAxis:
		if !active {
			v.weight = 0.5
			return
		}
		x := floatValue(values.XAxis)
		y := floatValue(values.YAxis)
		if m := math.Sqrt(x*x + y*y); m > 1 {
			x /= m
			y /= m
		}
		if v.desc.Source == profile.SourceXAxis {
			v.weight = (x + 1) / 2
		} else {
			v.weight = (y + 1) / 2
		}
	}
}

func floatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
