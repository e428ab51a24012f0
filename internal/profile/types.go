// Package profile defines the declarative controller profile model: which
// components a device exposes, how gamepad button/axis indices map onto them,
// and which visual responses each component drives on the 3D asset.
package profile

// Handedness identifies which hand a layout applies to.
type Handedness string

const (
	HandNone  Handedness = "none"
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
)

// Layout documents key their layouts by one of these arrangements. A single
// key may cover several concrete hands; parsing expands them so that
// Profile.Layouts is always keyed by a concrete Handedness.
const (
	arrangementNone          = "none"
	arrangementLeft          = "left"
	arrangementRight         = "right"
	arrangementLeftRight     = "left-right"
	arrangementLeftRightNone = "left-right-none"
)

// Source names which component value feeds a visual response.
type Source string

const (
	SourceButton Source = "button"
	SourceXAxis  Source = "xAxis"
	SourceYAxis  Source = "yAxis"
	SourceState  Source = "state"
)

func (s Source) valid() bool {
	switch s {
	case SourceButton, SourceXAxis, SourceYAxis, SourceState:
		return true
	}
	return false
}

// Property names what a visual response drives on its target node.
type Property string

const (
	PropertyTransform  Property = "transform"
	PropertyVisibility Property = "visibility"
)

// State is the discrete interaction state of a component, derived each tick.
// Priority is pressed > touched > default.
type State string

const (
	StateDefault State = "default"
	StateTouched State = "touched"
	StatePressed State = "pressed"
)

func (s State) valid() bool {
	switch s {
	case StateDefault, StateTouched, StatePressed:
		return true
	}
	return false
}

// Default node names applied when a visual response omits them.
const (
	DefaultTargetNodeName = "VALUE"
	DefaultMinNodeName    = "MIN"
	DefaultMaxNodeName    = "MAX"
)

// VisualResponseDescription declares one mapping from a component value to a
// weight on a named asset node.
type VisualResponseDescription struct {
	RootNodeName   string   `json:"rootNodeName"`
	TargetNodeName string   `json:"targetNodeName,omitempty"`
	MinNodeName    string   `json:"minNodeName,omitempty"`
	MaxNodeName    string   `json:"maxNodeName,omitempty"`
	Source         Source   `json:"source"`
	States         []State  `json:"states"`
	Property       Property `json:"property,omitempty"`
}

// ActiveFor reports whether the response's state gate admits the given state.
func (d *VisualResponseDescription) ActiveFor(state State) bool {
	for _, s := range d.States {
		if s == state {
			return true
		}
	}
	return false
}

// GamepadIndices locates a component's inputs inside the device's raw
// buttons/axes arrays. All fields are optional but at least one must be set
// for a component to be constructible.
type GamepadIndices struct {
	Button *int `json:"button,omitempty"`
	XAxis  *int `json:"xAxis,omitempty"`
	YAxis  *int `json:"yAxis,omitempty"`
}

// HasAny reports whether at least one index is assigned.
func (g GamepadIndices) HasAny() bool {
	return g.Button != nil || g.XAxis != nil || g.YAxis != nil
}

// ComponentDescription declares one physical control.
//
// GamepadIndices may be present directly (registry-merged documents) or be
// derived from the layout's positional gamepad mapping at controller
// construction; the positional mapping wins when both exist.
type ComponentDescription struct {
	Type                string                       `json:"type"`
	RootNodeName        string                       `json:"rootNodeName"`
	LabelAnchorNodeName string                       `json:"labelAnchorNodeName,omitempty"`
	TouchPointNodeName  string                       `json:"touchPointNodeName,omitempty"`
	GamepadIndices      GamepadIndices               `json:"gamepadIndices,omitempty"`
	VisualResponses     []*VisualResponseDescription `json:"visualResponses"`
}

// AxisAssignment binds one positional axis slot to a component axis.
type AxisAssignment struct {
	ComponentID string `json:"componentId"`
	Axis        string `json:"axis"` // "xAxis" or "yAxis"
}

// GamepadMapping is the positional button/axis layout of the raw device.
// Index i of Buttons names the component owning physical button i; nil slots
// are unused. Same for Axes.
type GamepadMapping struct {
	Mapping string            `json:"mapping,omitempty"`
	Buttons []*string         `json:"buttons"`
	Axes    []*AxisAssignment `json:"axes"`
}

// Layout is the component set and device mapping for one handedness.
type Layout struct {
	RootNodeName string                           `json:"rootNodeName,omitempty"`
	AssetPath    string                           `json:"assetPath,omitempty"`
	Components   map[string]*ComponentDescription `json:"components"`
	Gamepad      *GamepadMapping                  `json:"gamepad,omitempty"`
}

// Profile is the full declarative description of one device. Immutable once
// parsed.
type Profile struct {
	ProfileID          string
	FallbackProfileIDs []string
	Layouts            map[Handedness]*Layout
}

// Handednesses returns the concrete hands this profile has layouts for, in a
// stable order.
func (p *Profile) Handednesses() []Handedness {
	out := make([]Handedness, 0, len(p.Layouts))
	for _, h := range []Handedness{HandNone, HandLeft, HandRight} {
		if _, ok := p.Layouts[h]; ok {
			out = append(out, h)
		}
	}
	return out
}
