package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/registry"
)

func newRepoBackedServer(t *testing.T) *Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generic-trigger": "generic-trigger/profile.json"}`))
	})
	mux.HandleFunc("/generic-trigger/profile.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
		  "profileId": "generic-trigger",
		  "layouts": {
		    "left-right-none": {
		      "components": {
		        "trigger": {"rootNodeName": "trigger", "visualResponses": []}
		      },
		      "gamepad": {"mapping": "standard", "buttons": ["trigger"], "axes": []}
		    }
		  }
		}`))
	})
	repo := httptest.NewServer(mux)
	t.Cleanup(repo.Close)

	resolver := registry.New(repo.URL, zap.NewNop())
	return New(nil, nil, nil, resolver, nil, ":0", zap.NewNop())
}

func TestHandleIndex(t *testing.T) {
	s := newRepoBackedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var index map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &index))
	assert.Equal(t, "generic-trigger/profile.json", index["generic-trigger"])
}

func TestHandlePreview(t *testing.T) {
	s := newRepoBackedServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/generic-trigger", nil)
	req.SetPathValue("id", "generic-trigger")
	rec := httptest.NewRecorder()
	s.handlePreview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ProfileID    string   `json:"profileId"`
		Handednesses []string `json:"handednesses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "generic-trigger", body.ProfileID)
	assert.ElementsMatch(t, []string{"none", "left", "right"}, body.Handednesses)
}

func TestHandleIndex_RepoDown(t *testing.T) {
	resolver := registry.New("http://127.0.0.1:1", zap.NewNop())
	s := New(nil, nil, nil, resolver, nil, ":0", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rec := httptest.NewRecorder()
	s.handleIndex(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
