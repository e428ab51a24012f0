package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/config"
	"github.com/soar/XRControllerView/backend/internal/hub"
	"github.com/soar/XRControllerView/backend/internal/input"
	"github.com/soar/XRControllerView/backend/internal/logging"
	"github.com/soar/XRControllerView/backend/internal/motion"
	"github.com/soar/XRControllerView/backend/internal/registry"
	"github.com/soar/XRControllerView/backend/internal/server"
	"github.com/soar/XRControllerView/backend/internal/session"
	"github.com/soar/XRControllerView/backend/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

const shutdownTimeout = 5 * time.Second

// viewerURL builds the local browser URL for a listen address. The addr may
// carry a bind host ("0.0.0.0:8080"); only the port matters for the viewer.
func viewerURL(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return "http://localhost:" + port
	}
	return "http://localhost" + addr
}

func main() {
	configPath := pflag.String("config", "", "path to config file")
	addr := pflag.String("addr", "", "listen address (overrides config)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Create the SDL joystick reader
	reader := input.NewReader(log)

	// Profile resolver against the configured repository
	resolver := registry.New(cfg.Registry.BaseURL, log,
		registry.WithHTTPClient(&http.Client{Timeout: cfg.Registry.RequestTimeout}))

	// Session owns the active device selection and the tick loop
	thresholds := motion.Thresholds{
		ButtonTouch: cfg.Engine.ButtonTouchThreshold,
		AxisTouch:   cfg.Engine.AxisTouchThreshold,
	}
	sess := session.New(resolver, thresholds, cfg.Engine.TickInterval, log)
	go sess.Run(ctx, reader.Events())

	// Create and start hub
	h := hub.NewHub(log)
	go h.Run()

	// Create broadcaster
	broadcaster := hub.NewBroadcaster(h, sess.Updates(), log)
	go broadcaster.Run()

	// Create and start HTTP server
	srv := server.New(h, broadcaster, reader, resolver, getProfilesFS(), cfg.Server.Addr, log)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	log.Info("XRControllerView backend started", zap.String("addr", cfg.Server.Addr))

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	// Initialize system tray on Windows only
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(viewerURL(cfg.Server.Addr), func() {
				close(shutdownRequested)
			}, log)
			t.Run(nil)
		}()
	} else {
		log.Info("press Ctrl+C to exit")
	}

	// Run reader in goroutine (SDL main-thread handling is inside).
	// Cancelling the context makes reader.Run return.
	readerDone := make(chan struct{})
	go func() {
		reader.Run(ctx)
		close(readerDone)
	}()

	// Wait for shutdown signal, tray request, or server error
	select {
	case <-sigCh:
		log.Info("shutting down")
		cancel()
	case <-shutdownRequested:
		log.Info("shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Error("HTTP server error", zap.Error(err))
		cancel()
	}

	// Wait for reader to finish
	<-readerDone

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("XRControllerView backend stopped")
}
