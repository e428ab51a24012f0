package motion

import (
	"math"

	"github.com/soar/XRControllerView/backend/internal/profile"
)

// ResponseData is the wire form of one visual response's current value.
// Transform responses carry Weight; visibility responses carry Visible.
type ResponseData struct {
	TargetNodeName string           `json:"targetNodeName"`
	MinNodeName    string           `json:"minNodeName,omitempty"`
	MaxNodeName    string           `json:"maxNodeName,omitempty"`
	Property       profile.Property `json:"property"`
	Weight         *float64         `json:"weight,omitempty"`
	Visible        *bool            `json:"visible,omitempty"`
}

// ComponentData is the wire form of one component's per-tick snapshot.
type ComponentData struct {
	State     profile.State           `json:"state"`
	Button    *float64                `json:"button,omitempty"`
	XAxis     *float64                `json:"xAxis,omitempty"`
	YAxis     *float64                `json:"yAxis,omitempty"`
	Responses map[string]ResponseData `json:"responses,omitempty"`
}

// ControllerData maps component id to its snapshot.
type ControllerData map[string]ComponentData

// Data returns a copy of the component's current state; the copy shares no
// pointers with the live component.
func (c *Component) Data() ComponentData {
	d := ComponentData{
		State:  c.values.State,
		Button: copyFloat(c.values.Button),
		XAxis:  copyFloat(c.values.XAxis),
		YAxis:  copyFloat(c.values.YAxis),
	}
	if len(c.responses) > 0 {
		d.Responses = make(map[string]ResponseData, len(c.responses))
		for name, resp := range c.responses {
			d.Responses[name] = resp.Data()
		}
	}
	return d
}

// Data returns the wire form of the response's current value.
func (v *VisualResponse) Data() ResponseData {
	d := ResponseData{
		TargetNodeName: v.desc.TargetNodeName,
		Property:       v.desc.Property,
	}
	if v.desc.Property == profile.PropertyVisibility {
		visible := v.visible
		d.Visible = &visible
	} else {
		weight := v.weight
		d.Weight = &weight
		d.MinNodeName = v.desc.MinNodeName
		d.MaxNodeName = v.desc.MaxNodeName
	}
	return d
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return floatEqual(*a, *b)
}

func boolPtrEqual(a, b *bool) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func (r ResponseData) equal(o ResponseData) bool {
	return r.TargetNodeName == o.TargetNodeName &&
		r.Property == o.Property &&
		floatPtrEqual(r.Weight, o.Weight) &&
		boolPtrEqual(r.Visible, o.Visible)
}

func (c ComponentData) equal(o ComponentData) bool {
	if c.State != o.State ||
		!floatPtrEqual(c.Button, o.Button) ||
		!floatPtrEqual(c.XAxis, o.XAxis) ||
		!floatPtrEqual(c.YAxis, o.YAxis) ||
		len(c.Responses) != len(o.Responses) {
		return false
	}
	for name, resp := range c.Responses {
		other, ok := o.Responses[name]
		if !ok || !resp.equal(other) {
			return false
		}
	}
	return true
}

// Diff returns the components of next whose snapshot differs from prev,
// using an epsilon comparison for analog values. An empty result means
// nothing worth broadcasting changed.
func Diff(prev, next ControllerData) ControllerData {
	delta := make(ControllerData)
	for id, data := range next {
		if old, ok := prev[id]; !ok || !old.equal(data) {
			delta[id] = data
		}
	}
	return delta
}
