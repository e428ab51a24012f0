package motion

import (
	"fmt"

	"github.com/soar/XRControllerView/backend/internal/input"
	"github.com/soar/XRControllerView/backend/internal/profile"
)

// Controller binds one input source to one resolved profile layout and owns
// the component set built from it. Controllers are replaced wholesale when
// the active device or profile changes, never mutated in place.
type Controller struct {
	source     input.Source
	profile    *profile.Profile
	assetURL   string
	thresholds Thresholds
	components map[string]*Component
}

// NewController selects the layout matching the source's handedness, inverts
// the layout's positional gamepad mapping into per-component indices, and
// constructs every declared component. Any failure aborts the whole
// controller.
func NewController(src input.Source, prof *profile.Profile, assetURL string, th Thresholds) (*Controller, error) {
	layout, ok := prof.Layouts[src.Handedness()]
	if !ok {
		return nil, &ConfigurationError{ProfileID: prof.ProfileID, Handedness: string(src.Handedness())}
	}

	indices := invertGamepadMapping(layout)

	components := make(map[string]*Component, len(layout.Components))
	for id, desc := range layout.Components {
		// Copy so the derived indices never leak into the shared profile.
		d := *desc
		if idx, ok := indices[id]; ok {
			d.GamepadIndices = idx
		}
		comp, err := NewComponent(id, &d)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", prof.ProfileID, err)
		}
		components[id] = comp
	}

	return &Controller{
		source:     src,
		profile:    prof,
		assetURL:   assetURL,
		thresholds: th,
		components: components,
	}, nil
}

// invertGamepadMapping turns the positional button/axis arrays (array index
// names the physical slot) into per-component index records. The positional
// arrays never escape into runtime components.
func invertGamepadMapping(layout *profile.Layout) map[string]profile.GamepadIndices {
	out := make(map[string]profile.GamepadIndices)
	if layout.Gamepad == nil {
		return out
	}
	for i, id := range layout.Gamepad.Buttons {
		if id == nil {
			continue
		}
		slot := i
		entry := out[*id]
		entry.Button = &slot
		out[*id] = entry
	}
	for i, assign := range layout.Gamepad.Axes {
		if assign == nil {
			continue
		}
		slot := i
		entry := out[assign.ComponentID]
		if assign.Axis == "yAxis" {
			entry.YAxis = &slot
		} else {
			entry.XAxis = &slot
		}
		out[assign.ComponentID] = entry
	}
	return out
}

// Source returns the bound input source.
func (m *Controller) Source() input.Source {
	return m.source
}

// Profile returns the resolved profile.
func (m *Controller) Profile() *profile.Profile {
	return m.profile
}

// AssetURL returns the location of the 3D asset for this layout.
func (m *Controller) AssetURL() string {
	return m.assetURL
}

// Components returns the owned components keyed by component id.
func (m *Controller) Components() map[string]*Component {
	return m.components
}

// UpdateFromGamepad reads the current device snapshot and updates every
// component once.
func (m *Controller) UpdateFromGamepad() {
	pad := m.source.Gamepad()
	for _, comp := range m.components {
		comp.UpdateFromGamepad(pad, m.thresholds)
	}
}

// Data returns a serializable snapshot of every component's state, raw
// values, and response weights.
func (m *Controller) Data() ControllerData {
	data := make(ControllerData, len(m.components))
	for id, comp := range m.components {
		data[id] = comp.Data()
	}
	return data
}
