package profile

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var profileIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)+$`)

// document is the raw JSON shape before arrangement keys are expanded and
// defaults applied.
type document struct {
	ProfileID          string             `json:"profileId"`
	FallbackProfileIDs []string           `json:"fallbackProfileIds"`
	Layouts            map[string]*Layout `json:"layouts"`
}

// arrangements maps each legal layout key to the concrete hands it covers.
var arrangements = map[string][]Handedness{
	arrangementNone:          {HandNone},
	arrangementLeft:          {HandLeft},
	arrangementRight:         {HandRight},
	arrangementLeftRight:     {HandLeft, HandRight},
	arrangementLeftRightNone: {HandLeft, HandRight, HandNone},
}

// Parse decodes and validates a profile document. The returned Profile has
// its layouts expanded to concrete handedness keys and all visual response
// defaults applied. Any structural problem yields a *ValidationError.
func Parse(data []byte) (*Profile, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, validationErrorf("", "malformed JSON: %v", err)
	}

	if !profileIDPattern.MatchString(doc.ProfileID) {
		return nil, validationErrorf("profileId", "%q does not match %s", doc.ProfileID, profileIDPattern)
	}
	seen := make(map[string]bool, len(doc.FallbackProfileIDs))
	for i, id := range doc.FallbackProfileIDs {
		path := fmt.Sprintf("fallbackProfileIds[%d]", i)
		if !profileIDPattern.MatchString(id) {
			return nil, validationErrorf(path, "%q does not match %s", id, profileIDPattern)
		}
		if seen[id] {
			return nil, validationErrorf(path, "duplicate id %q", id)
		}
		seen[id] = true
	}

	if len(doc.Layouts) == 0 {
		return nil, validationErrorf("layouts", "at least one layout is required")
	}

	prof := &Profile{
		ProfileID:          doc.ProfileID,
		FallbackProfileIDs: doc.FallbackProfileIDs,
		Layouts:            make(map[Handedness]*Layout),
	}

	for key, layout := range doc.Layouts {
		hands, ok := arrangements[key]
		if !ok {
			return nil, validationErrorf("layouts."+key, "unknown handedness arrangement")
		}
		if err := validateLayout("layouts."+key, layout); err != nil {
			return nil, err
		}
		for _, hand := range hands {
			if _, dup := prof.Layouts[hand]; dup {
				return nil, validationErrorf("layouts."+key, "handedness %q covered by more than one arrangement", hand)
			}
			prof.Layouts[hand] = layout
		}
	}

	return prof, nil
}

func validateLayout(path string, layout *Layout) error {
	if layout == nil {
		return validationErrorf(path, "layout must be an object")
	}
	if len(layout.Components) == 0 {
		return validationErrorf(path+".components", "at least one component is required")
	}
	for id, desc := range layout.Components {
		compPath := path + ".components." + id
		if id == "" {
			return validationErrorf(path+".components", "blank component id")
		}
		if desc == nil {
			return validationErrorf(compPath, "component must be an object")
		}
		if desc.RootNodeName == "" {
			return validationErrorf(compPath, "rootNodeName is required")
		}
		if err := validateGamepadIndices(compPath+".gamepadIndices", desc.GamepadIndices); err != nil {
			return err
		}
		for i, resp := range desc.VisualResponses {
			respPath := fmt.Sprintf("%s.visualResponses[%d]", compPath, i)
			if err := validateVisualResponse(respPath, resp); err != nil {
				return err
			}
		}
	}
	if layout.Gamepad != nil {
		if err := validateGamepadMapping(path+".gamepad", layout); err != nil {
			return err
		}
	}
	return nil
}

// validateVisualResponse checks a response description and applies defaults
// in place.
func validateVisualResponse(path string, d *VisualResponseDescription) error {
	if d == nil {
		return validationErrorf(path, "visual response must be an object")
	}
	if d.RootNodeName == "" {
		return validationErrorf(path, "rootNodeName is required")
	}
	if !d.Source.valid() {
		return validationErrorf(path, "unknown source %q", d.Source)
	}
	if len(d.States) == 0 {
		return validationErrorf(path, "states must be non-empty")
	}
	for _, s := range d.States {
		if !s.valid() {
			return validationErrorf(path, "unknown state %q", s)
		}
	}
	switch d.Property {
	case "":
		d.Property = PropertyTransform
	case PropertyTransform:
	case PropertyVisibility:
		if d.Source != SourceState {
			return validationErrorf(path, "property %q requires source %q, got %q", PropertyVisibility, SourceState, d.Source)
		}
	default:
		return validationErrorf(path, "unknown property %q", d.Property)
	}
	if d.TargetNodeName == "" {
		d.TargetNodeName = DefaultTargetNodeName
	}
	if d.MinNodeName == "" {
		d.MinNodeName = DefaultMinNodeName
	}
	if d.MaxNodeName == "" {
		d.MaxNodeName = DefaultMaxNodeName
	}
	return nil
}

// validateGamepadIndices rejects negative device indices; a negative index
// can never address a button or axis slot.
func validateGamepadIndices(path string, gi GamepadIndices) error {
	if gi.Button != nil && *gi.Button < 0 {
		return validationErrorf(path+".button", "index must not be negative, got %d", *gi.Button)
	}
	if gi.XAxis != nil && *gi.XAxis < 0 {
		return validationErrorf(path+".xAxis", "index must not be negative, got %d", *gi.XAxis)
	}
	if gi.YAxis != nil && *gi.YAxis < 0 {
		return validationErrorf(path+".yAxis", "index must not be negative, got %d", *gi.YAxis)
	}
	return nil
}

func validateGamepadMapping(path string, layout *Layout) error {
	gm := layout.Gamepad
	for i, id := range gm.Buttons {
		if id == nil {
			continue
		}
		if _, ok := layout.Components[*id]; !ok {
			return validationErrorf(fmt.Sprintf("%s.buttons[%d]", path, i), "unknown component %q", *id)
		}
	}
	for i, a := range gm.Axes {
		if a == nil {
			continue
		}
		axisPath := fmt.Sprintf("%s.axes[%d]", path, i)
		if _, ok := layout.Components[a.ComponentID]; !ok {
			return validationErrorf(axisPath, "unknown component %q", a.ComponentID)
		}
		if a.Axis != "xAxis" && a.Axis != "yAxis" {
			return validationErrorf(axisPath, "axis must be xAxis or yAxis, got %q", a.Axis)
		}
	}
	return nil
}
