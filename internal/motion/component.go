package motion

import (
	"fmt"
	"math"

	"github.com/soar/XRControllerView/backend/internal/input"
	"github.com/soar/XRControllerView/backend/internal/profile"
)

// Thresholds are the configured touch-detection cutoffs. A button whose
// clamped analog value exceeds ButtonTouch counts as touched even when the
// device does not report touch; an axis whose magnitude exceeds AxisTouch
// marks its component touched if nothing stronger already did.
type Thresholds struct {
	ButtonTouch float64
	AxisTouch   float64
}

// DefaultThresholds returns the stock cutoffs: 0.05 for buttons, 0.10 for
// axes.
func DefaultThresholds() Thresholds {
	return Thresholds{ButtonTouch: 0.05, AxisTouch: 0.10}
}

// Component owns one physical control: its raw values, its discrete state,
// and the visual responses it drives.
type Component struct {
	id        string
	desc      *profile.ComponentDescription
	values    ComponentValues
	responses map[string]*VisualResponse
}

// NewComponent builds a component and all of its visual responses. Any
// nested construction failure propagates; no partial component is returned.
func NewComponent(id string, desc *profile.ComponentDescription) (*Component, error) {
	if id == "" {
		return nil, &profile.ValidationError{Reason: "component id is required"}
	}
	if desc == nil {
		return nil, &profile.ValidationError{Path: id, Reason: "component description is required"}
	}
	if desc.VisualResponses == nil {
		return nil, &profile.ValidationError{Path: id, Reason: "visualResponses is required"}
	}
	if !desc.GamepadIndices.HasAny() {
		return nil, &profile.ValidationError{Path: id, Reason: "gamepadIndices must assign at least one input"}
	}
	gi := desc.GamepadIndices
	if (gi.Button != nil && *gi.Button < 0) ||
		(gi.XAxis != nil && *gi.XAxis < 0) ||
		(gi.YAxis != nil && *gi.YAxis < 0) {
		return nil, &profile.ValidationError{Path: id, Reason: "gamepadIndices must not be negative"}
	}

	c := &Component{
		id:        id,
		desc:      desc,
		values:    ComponentValues{State: profile.StateDefault},
		responses: make(map[string]*VisualResponse, len(desc.VisualResponses)),
	}
	if desc.GamepadIndices.Button != nil {
		c.values.Button = new(float64)
	}
	if desc.GamepadIndices.XAxis != nil {
		c.values.XAxis = new(float64)
	}
	if desc.GamepadIndices.YAxis != nil {
		c.values.YAxis = new(float64)
	}

	for _, respDesc := range desc.VisualResponses {
		resp, err := NewVisualResponse(respDesc)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", id, err)
		}
		c.responses[respDesc.RootNodeName] = resp
	}
	return c, nil
}

// ID returns the component id.
func (c *Component) ID() string {
	return c.id
}

// Description returns the component description.
func (c *Component) Description() *profile.ComponentDescription {
	return c.desc
}

// Values returns the current derived values.
func (c *Component) Values() ComponentValues {
	return c.values
}

// Responses returns the owned visual responses keyed by root node name.
func (c *Component) Responses() map[string]*VisualResponse {
	return c.responses
}

// UpdateFromGamepad rederives values and state from the device snapshot and
// pushes them through every visual response.
//
// A snapshot with fewer buttons/axes than this component maps is treated as a
// no-op for this tick; other components must keep updating.
func (c *Component) UpdateFromGamepad(pad input.Snapshot, th Thresholds) {
	idx := c.desc.GamepadIndices
	if idx.Button != nil && (*idx.Button < 0 || *idx.Button >= len(pad.Buttons)) {
		return
	}
	if idx.XAxis != nil && (*idx.XAxis < 0 || *idx.XAxis >= len(pad.Axes)) {
		return
	}
	if idx.YAxis != nil && (*idx.YAxis < 0 || *idx.YAxis >= len(pad.Axes)) {
		return
	}

	c.values.State = profile.StateDefault

	if idx.Button != nil {
		btn := pad.Buttons[*idx.Button]
		value := clamp(btn.Value, 0, 1)
		*c.values.Button = value
		if btn.Pressed || value == 1 {
			c.values.State = profile.StatePressed
		} else if btn.Touched || value > th.ButtonTouch {
			c.values.State = profile.StateTouched
		}
	}

	if idx.XAxis != nil {
		value := clamp(pad.Axes[*idx.XAxis], -1, 1)
		*c.values.XAxis = value
		// Button state wins over axis-derived touch.
		if c.values.State == profile.StateDefault && math.Abs(value) > th.AxisTouch {
			c.values.State = profile.StateTouched
		}
	}

	if idx.YAxis != nil {
		value := clamp(pad.Axes[*idx.YAxis], -1, 1)
		*c.values.YAxis = value
		if c.values.State == profile.StateDefault && math.Abs(value) > th.AxisTouch {
			c.values.State = profile.StateTouched
		}
	}

	for _, resp := range c.responses {
		resp.UpdateFromComponent(c.values)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
