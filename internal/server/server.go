package server

import (
	"context"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/hub"
	"github.com/soar/XRControllerView/backend/internal/registry"
)

// Server exposes the WebSocket endpoint, the profile repository, and the
// preview API.
type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	switcher    hub.DeviceSwitcher
	resolver    *registry.Resolver
	profilesFS  fs.FS
	addr        string
	log         *zap.Logger
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, switcher hub.DeviceSwitcher, resolver *registry.Resolver, profilesFS fs.FS, addr string, log *zap.Logger) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		switcher:    switcher,
		resolver:    resolver,
		profilesFS:  profilesFS,
		addr:        addr,
		log:         log.Named("server"),
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket())

	// Built-in profile repository
	mux.Handle("/profiles/", http.StripPrefix("/profiles/", http.FileServer(http.FS(s.profilesFS))))

	// Preview API
	mux.HandleFunc("GET /api/profiles", s.handleIndex)
	mux.HandleFunc("GET /api/profiles/{id}", s.handlePreview)

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.log.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
