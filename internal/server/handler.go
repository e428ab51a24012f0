package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/hub"
	"github.com/soar/XRControllerView/backend/internal/registry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func (s *Server) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}

		client := hub.NewClient(s.hub, conn)
		s.hub.Register(client)

		// Send the resolved profile and current state to the new client
		s.broadcaster.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(s.switcher)
	}
}

// handleIndex returns the repository index as seen through the resolver.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index, err := s.resolver.Index(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, index)
}

// handlePreview returns a profile's available handedness values without
// binding to a device.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	prof, err := s.resolver.Preview(r.Context(), []string{id})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]any{
		"profileId":    prof.ProfileID,
		"handednesses": prof.Handednesses(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var notFound *registry.NotFoundError
	status := http.StatusBadGateway
	if errors.As(err, &notFound) {
		status = http.StatusNotFound
	}
	s.log.Warn("api request failed", zap.Error(err))
	http.Error(w, err.Error(), status)
}
