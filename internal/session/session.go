// Package session owns the active device selection. It resolves a profile
// whenever a device attaches, builds one motion controller per selection,
// drives the per-tick update, and emits snapshot updates for broadcasting.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/input"
	"github.com/soar/XRControllerView/backend/internal/motion"
	"github.com/soar/XRControllerView/backend/internal/profile"
	"github.com/soar/XRControllerView/backend/internal/registry"
)

// Resolver is the slice of the registry resolver the session needs.
type Resolver interface {
	Resolve(ctx context.Context, candidates []string, hand profile.Handedness) (*registry.Resolution, error)
}

// Update is one broadcastable state change: either a disconnect
// (Connected=false) or a tick snapshot of the current controller.
type Update struct {
	Connected  bool
	ProfileID  string
	AssetURL   string
	Handedness profile.Handedness
	Data       motion.ControllerData
}

// Session serializes all controller construction and updates. A resolution
// that finishes after a newer device selection has been made is detected by
// its generation number and discarded; in-flight fetches are never cancelled.
type Session struct {
	resolver   Resolver
	thresholds motion.Thresholds
	tick       time.Duration
	updates    chan Update
	log        *zap.Logger

	mu         sync.Mutex
	generation uint64
	controller *motion.Controller
	profileID  string
	assetURL   string
	handedness profile.Handedness
}

func New(resolver Resolver, th motion.Thresholds, tick time.Duration, log *zap.Logger) *Session {
	return &Session{
		resolver:   resolver,
		thresholds: th,
		tick:       tick,
		updates:    make(chan Update, 64),
		log:        log.Named("session"),
	}
}

// Updates returns the channel on which state updates are sent.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Current returns the most recent full snapshot, for priming new clients.
func (s *Session) Current() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller == nil {
		return Update{}
	}
	return Update{
		Connected:  true,
		ProfileID:  s.profileID,
		AssetURL:   s.assetURL,
		Handedness: s.handedness,
		Data:       s.controller.Data(),
	}
}

// Run drives the session until the context is cancelled: device events
// replace the active selection, the ticker updates the current controller.
func (s *Session) Run(ctx context.Context, events <-chan input.Event) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleEvent(ctx, ev)
		case <-ticker.C:
			s.tickOnce()
		}
	}
}

func (s *Session) handleEvent(ctx context.Context, ev input.Event) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.controller = nil
	s.profileID = ""
	s.assetURL = ""
	s.mu.Unlock()

	if ev.Kind == input.DeviceDetached {
		s.log.Info("device detached")
		s.emit(Update{Connected: false})
		return
	}

	go s.resolve(ctx, gen, ev.Source)
}

// resolve runs off the session loop; the generation check on completion is
// what keeps a slow fetch from overwriting a newer selection.
func (s *Session) resolve(ctx context.Context, gen uint64, src input.Source) {
	res, err := s.resolver.Resolve(ctx, src.Profiles(), src.Handedness())
	if err != nil {
		s.log.Error("profile resolution failed",
			zap.Strings("candidates", src.Profiles()), zap.Error(err))
		return
	}

	ctrl, err := motion.NewController(src, res.Profile, res.AssetURL, s.thresholds)
	if err != nil {
		s.log.Error("controller construction failed",
			zap.String("profileId", res.Profile.ProfileID), zap.Error(err))
		return
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		s.log.Debug("discarding stale resolution",
			zap.String("profileId", res.Profile.ProfileID), zap.Uint64("generation", gen))
		return
	}
	s.controller = ctrl
	s.profileID = res.Profile.ProfileID
	s.assetURL = res.AssetURL
	s.handedness = src.Handedness()
	s.mu.Unlock()

	s.log.Info("controller ready",
		zap.String("profileId", res.Profile.ProfileID),
		zap.String("assetUrl", res.AssetURL))
	s.emit(s.Current())
}

func (s *Session) tickOnce() {
	s.mu.Lock()
	if s.controller == nil {
		s.mu.Unlock()
		return
	}
	s.controller.UpdateFromGamepad()
	update := Update{
		Connected:  true,
		ProfileID:  s.profileID,
		AssetURL:   s.assetURL,
		Handedness: s.handedness,
		Data:       s.controller.Data(),
	}
	s.mu.Unlock()

	s.emit(update)
}

func (s *Session) emit(u Update) {
	select {
	case s.updates <- u:
	default:
		// Drop if the channel is full to avoid blocking the tick loop
	}
}
