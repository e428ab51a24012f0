package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileJSON = `{
  "profileId": "acme-superpad",
  "fallbackProfileIds": ["generic-trigger"],
  "layouts": {
    "left-right-none": {
      "rootNodeName": "superpad",
      "assetPath": "superpad.glb",
      "components": {
        "trigger": {
          "type": "trigger",
          "rootNodeName": "trigger",
          "visualResponses": [
            {
              "rootNodeName": "trigger_pressed",
              "source": "button",
              "states": ["default", "touched", "pressed"]
            }
          ]
        }
      },
      "gamepad": {
        "mapping": "standard",
        "buttons": ["trigger"],
        "axes": []
      }
    }
  }
}`

func TestParse_Valid(t *testing.T) {
	prof, err := Parse([]byte(validProfileJSON))
	require.NoError(t, err)

	assert.Equal(t, "acme-superpad", prof.ProfileID)
	assert.Equal(t, []string{"generic-trigger"}, prof.FallbackProfileIDs)

	// "left-right-none" expands to all three concrete hands sharing one layout.
	require.Len(t, prof.Layouts, 3)
	assert.Same(t, prof.Layouts[HandLeft], prof.Layouts[HandRight])
	assert.Same(t, prof.Layouts[HandLeft], prof.Layouts[HandNone])
	assert.Equal(t, []Handedness{HandNone, HandLeft, HandRight}, prof.Handednesses())

	resp := prof.Layouts[HandNone].Components["trigger"].VisualResponses[0]
	assert.Equal(t, PropertyTransform, resp.Property)
	assert.Equal(t, "VALUE", resp.TargetNodeName)
	assert.Equal(t, "MIN", resp.MinNodeName)
	assert.Equal(t, "MAX", resp.MaxNodeName)
}

func TestParse_RejectsBadProfileIDs(t *testing.T) {
	for _, id := range []string{"", "single", "Has-Upper", "trailing-", "-leading", "with_underscore"} {
		_, err := Parse([]byte(`{"profileId": "` + id + `", "layouts": {"none": {}}}`))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "id %q should be rejected", id)
	}
}

func TestParse_RejectsDuplicateFallbacks(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "fallbackProfileIds": ["generic-trigger", "generic-trigger"],
	  "layouts": {"none": {"components": {"b": {"rootNodeName": "b", "visualResponses": []}}}}
	}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "duplicate")
}

func TestParse_RejectsOverlappingArrangements(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "left": {"components": {"b": {"rootNodeName": "b", "visualResponses": []}}},
	    "left-right": {"components": {"b": {"rootNodeName": "b", "visualResponses": []}}}
	  }
	}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "more than one arrangement")
}

func TestParse_RejectsUnknownArrangement(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {"both": {"components": {"b": {"rootNodeName": "b", "visualResponses": []}}}}
	}`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParse_RejectsVisibilityWithNonStateSource(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {
	        "trigger": {
	          "rootNodeName": "trigger",
	          "visualResponses": [
	            {"rootNodeName": "n", "source": "button", "states": ["pressed"], "property": "visibility"}
	          ]
	        }
	      }
	    }
	  }
	}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "visibility")
}

func TestParse_VisibilityWithStateSource(t *testing.T) {
	prof, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {
	        "trigger": {
	          "rootNodeName": "trigger",
	          "visualResponses": [
	            {"rootNodeName": "n", "source": "state", "states": ["pressed"], "property": "visibility"}
	          ]
	        }
	      }
	    }
	  }
	}`))
	require.NoError(t, err)
	resp := prof.Layouts[HandNone].Components["trigger"].VisualResponses[0]
	assert.Equal(t, PropertyVisibility, resp.Property)
}

func TestParse_RejectsMappingToUnknownComponent(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {"trigger": {"rootNodeName": "trigger", "visualResponses": []}},
	      "gamepad": {"mapping": "standard", "buttons": ["ghost"], "axes": []}
	    }
	  }
	}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "unknown component")
}

func TestParse_RejectsBadAxisName(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {"stick": {"rootNodeName": "stick", "visualResponses": []}},
	      "gamepad": {"mapping": "standard", "buttons": [], "axes": [{"componentId": "stick", "axis": "zAxis"}]}
	    }
	  }
	}`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParse_NullMappingSlotsAllowed(t *testing.T) {
	prof, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {"trigger": {"rootNodeName": "trigger", "visualResponses": []}},
	      "gamepad": {"mapping": "standard", "buttons": [null, "trigger", null], "axes": [null]}
	    }
	  }
	}`))
	require.NoError(t, err)
	require.Len(t, prof.Layouts[HandNone].Gamepad.Buttons, 3)
	assert.Nil(t, prof.Layouts[HandNone].Gamepad.Buttons[0])
}

func TestParse_RejectsNegativeGamepadIndex(t *testing.T) {
	_, err := Parse([]byte(`{
	  "profileId": "acme-superpad",
	  "layouts": {
	    "none": {
	      "components": {
	        "trigger": {"rootNodeName": "trigger", "gamepadIndices": {"button": -1}, "visualResponses": []}
	      }
	    }
	  }
	}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "negative")
}

func TestParse_RejectsEmptyLayouts(t *testing.T) {
	_, err := Parse([]byte(`{"profileId": "acme-superpad", "layouts": {}}`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
