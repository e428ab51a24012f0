package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/XRControllerView/backend/internal/profile"
)

func float64Ptr(v float64) *float64 { return &v }

func newResponse(t *testing.T, desc *profile.VisualResponseDescription) *VisualResponse {
	t.Helper()
	resp, err := NewVisualResponse(desc)
	require.NoError(t, err)
	return resp
}

func TestNewVisualResponse_AppliesDefaults(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "trigger_pressed",
		Source:       profile.SourceButton,
		States:       []profile.State{profile.StateDefault},
	})

	desc := resp.Description()
	assert.Equal(t, profile.PropertyTransform, desc.Property)
	assert.Equal(t, "VALUE", desc.TargetNodeName)
	assert.Equal(t, "MIN", desc.MinNodeName)
	assert.Equal(t, "MAX", desc.MaxNodeName)
}

func TestNewVisualResponse_Validation(t *testing.T) {
	cases := []struct {
		name string
		desc *profile.VisualResponseDescription
	}{
		{"nil description", nil},
		{"missing root node", &profile.VisualResponseDescription{
			Source: profile.SourceButton,
			States: []profile.State{profile.StateDefault},
		}},
		{"missing source", &profile.VisualResponseDescription{
			RootNodeName: "n",
			States:       []profile.State{profile.StateDefault},
		}},
		{"empty states", &profile.VisualResponseDescription{
			RootNodeName: "n",
			Source:       profile.SourceButton,
		}},
		{"visibility with button source", &profile.VisualResponseDescription{
			RootNodeName: "n",
			Source:       profile.SourceButton,
			States:       []profile.State{profile.StateDefault},
			Property:     profile.PropertyVisibility,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVisualResponse(tc.desc)
			var verr *profile.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestStateSource_Transform(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceState,
		States:       []profile.State{profile.StatePressed},
	})

	resp.UpdateFromComponent(ComponentValues{State: profile.StatePressed})
	assert.Equal(t, 1.0, resp.Weight())

	resp.UpdateFromComponent(ComponentValues{State: profile.StateDefault})
	assert.Equal(t, 0.0, resp.Weight())
}

func TestStateSource_Visibility(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceState,
		States:       []profile.State{profile.StateTouched, profile.StatePressed},
		Property:     profile.PropertyVisibility,
	})

	resp.UpdateFromComponent(ComponentValues{State: profile.StateTouched})
	assert.True(t, resp.Visible())

	resp.UpdateFromComponent(ComponentValues{State: profile.StateDefault})
	assert.False(t, resp.Visible())
}

func TestButtonSource_GatesToZero(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceButton,
		States:       []profile.State{profile.StateDefault},
	})

	resp.UpdateFromComponent(ComponentValues{
		Button: float64Ptr(0.8),
		State:  profile.StateDefault,
	})
	assert.Equal(t, 0.8, resp.Weight())

	// State not in the gate: weight drops to zero, not neutral.
	resp.UpdateFromComponent(ComponentValues{
		Button: float64Ptr(0.8),
		State:  profile.StateTouched,
	})
	assert.Equal(t, 0.0, resp.Weight())
}

func TestAxisSource_GatesToNeutralCenter(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceXAxis,
		States:       []profile.State{profile.StateTouched},
	})

	// Gate closed: 0.5 regardless of deflection magnitude.
	resp.UpdateFromComponent(ComponentValues{
		XAxis: float64Ptr(1),
		YAxis: float64Ptr(-1),
		State: profile.StateDefault,
	})
	assert.Equal(t, 0.5, resp.Weight())
}

func TestAxisSource_InsideUnitDiskIsExact(t *testing.T) {
	xResp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "nx",
		Source:       profile.SourceXAxis,
		States:       []profile.State{profile.StateTouched},
	})
	yResp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "ny",
		Source:       profile.SourceYAxis,
		States:       []profile.State{profile.StateTouched},
	})

	values := ComponentValues{
		XAxis: float64Ptr(0.2),
		YAxis: float64Ptr(0.3),
		State: profile.StateTouched,
	}
	xResp.UpdateFromComponent(values)
	yResp.UpdateFromComponent(values)

	assert.Equal(t, 0.6, xResp.Weight())
	assert.Equal(t, 0.65, yResp.Weight())
}

func TestAxisSource_CircularClamp(t *testing.T) {
	xResp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "nx",
		Source:       profile.SourceXAxis,
		States:       []profile.State{profile.StatePressed},
	})
	yResp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "ny",
		Source:       profile.SourceYAxis,
		States:       []profile.State{profile.StatePressed},
	})

	// Full diagonal deflection gets pulled back onto the unit circle.
	values := ComponentValues{
		XAxis: float64Ptr(1),
		YAxis: float64Ptr(1),
		State: profile.StatePressed,
	}
	xResp.UpdateFromComponent(values)
	yResp.UpdateFromComponent(values)

	assert.InDelta(t, 0.8536, xResp.Weight(), 1e-4)
	assert.InDelta(t, 0.8536, yResp.Weight(), 1e-4)
}

func TestAxisSource_ClampPreservesDirection(t *testing.T) {
	xResp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "nx",
		Source:       profile.SourceXAxis,
		States:       []profile.State{profile.StateTouched},
	})

	x, y := -0.9, 0.8
	m := math.Sqrt(x*x + y*y)
	xResp.UpdateFromComponent(ComponentValues{
		XAxis: float64Ptr(x),
		YAxis: float64Ptr(y),
		State: profile.StateTouched,
	})
	assert.InDelta(t, (x/m+1)/2, xResp.Weight(), 1e-4)
}

func TestAxisSource_ZeroVectorSkipsRescale(t *testing.T) {
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceYAxis,
		States:       []profile.State{profile.StateDefault},
	})

	resp.UpdateFromComponent(ComponentValues{
		XAxis: float64Ptr(0),
		YAxis: float64Ptr(0),
		State: profile.StateDefault,
	})
	assert.Equal(t, 0.5, resp.Weight())
}

func TestAxisSource_SingleAxisComponent(t *testing.T) {
	// A component with only an xAxis still normalizes against y = 0.
	resp := newResponse(t, &profile.VisualResponseDescription{
		RootNodeName: "n",
		Source:       profile.SourceXAxis,
		States:       []profile.State{profile.StateDefault},
	})

	resp.UpdateFromComponent(ComponentValues{
		XAxis: float64Ptr(-1),
		State: profile.StateDefault,
	})
	assert.Equal(t, 0.0, resp.Weight())
}
