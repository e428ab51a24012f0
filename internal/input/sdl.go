package input

import (
	"context"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/profile"
)

const (
	deadzone    = 0.05
	pollDelayNS = 16_000_000 // ~60Hz
)

type joystickInfo struct {
	joystick *sdl.Joystick
	device   *DeviceProfile
	name     string
	id       sdl.JoystickID
}

// Reader reads joystick input from the SDL3 Joystick API. The first connected
// joystick becomes the active Source; clients may switch with
// SetActiveByIndex. Lifecycle changes are published on Events.
//
// mu guards the joystick registry and the active snapshot; SetActiveByIndex
// may be called from any goroutine, everything else runs on the SDL thread.
type Reader struct {
	mu        sync.RWMutex
	joysticks map[sdl.JoystickID]*joystickInfo
	order     []sdl.JoystickID // attach order, for 1-based index selection
	activeID  sdl.JoystickID
	hasActive bool
	snapshot  Snapshot

	events chan Event
	log    *zap.Logger
}

func NewReader(log *zap.Logger) *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		events:    make(chan Event, 8),
		log:       log.Named("input"),
	}
}

// Events returns the channel on which device lifecycle events are sent.
func (r *Reader) Events() <-chan Event {
	return r.events
}

// CurrentSnapshot returns the latest snapshot of the active device.
func (r *Reader) CurrentSnapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// deviceSource binds a Source to one joystick instance. Its snapshot goes
// inert once the joystick stops being the active device.
type deviceSource struct {
	reader *Reader
	id     sdl.JoystickID
	device *DeviceProfile
	name   string
}

func (s *deviceSource) Profiles() []string {
	return s.device.Profiles
}

func (s *deviceSource) Handedness() profile.Handedness {
	return s.device.Handedness
}

func (s *deviceSource) Gamepad() Snapshot {
	s.reader.mu.RLock()
	defer s.reader.mu.RUnlock()
	if !s.reader.hasActive || s.reader.activeID != s.id {
		return Snapshot{}
	}
	return s.reader.snapshot
}

// Run initializes SDL and runs the event+polling loop on the current thread.
// Must be called from a dedicated goroutine; it locks the OS thread for SDL.
func (r *Reader) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		r.log.Fatal("SDL init failed", zap.String("error", sdl.GetError()))
	}
	defer sdl.Quit()

	r.log.Info("SDL3 joystick subsystem initialized")

	// Check for already-connected joysticks
	ids := sdl.GetJoysticks()
	for _, id := range ids {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		default:
		}

		r.processEvents()
		r.pollState()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			devEvent := event.JDevice()
			r.openJoystick(devEvent.Which)

		case sdl.EventJoystickRemoved:
			devEvent := event.JDevice()
			r.removeJoystick(devEvent.Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	r.mu.RLock()
	_, exists := r.joysticks[instanceID]
	r.mu.RUnlock()
	if exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.log.Warn("failed to open joystick",
			zap.Int32("instance", int32(instanceID)), zap.String("error", sdl.GetError()))
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	device := GetDeviceProfile(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		device:   device,
		name:     name,
		id:       jsID,
	}

	r.mu.Lock()
	r.joysticks[jsID] = info
	r.order = append(r.order, jsID)
	activate := !r.hasActive
	if activate {
		r.setActiveLocked(info)
	}
	r.mu.Unlock()

	r.log.Info("joystick connected",
		zap.String("name", name),
		zap.Uint16("vendor", vendorID),
		zap.Uint16("product", productID),
		zap.Strings("profiles", device.Profiles))

	if activate {
		r.announce(info)
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	r.mu.Lock()
	info, exists := r.joysticks[instanceID]
	if !exists {
		r.mu.Unlock()
		return
	}

	delete(r.joysticks, instanceID)
	for i, id := range r.order {
		if id == instanceID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	wasActive := r.hasActive && r.activeID == instanceID
	var promoted *joystickInfo
	if wasActive {
		r.hasActive = false
		r.snapshot = Snapshot{}
		// Promote the next available joystick
		for _, id := range r.order {
			if js, ok := r.joysticks[id]; ok && sdl.JoystickConnected(js.joystick) {
				r.setActiveLocked(js)
				promoted = js
				break
			}
		}
	}
	r.mu.Unlock()

	r.log.Info("joystick disconnected", zap.String("name", info.name))
	sdl.CloseJoystick(info.joystick)

	if !wasActive {
		return
	}
	if promoted != nil {
		r.announce(promoted)
	} else {
		r.emit(Event{Kind: DeviceDetached})
	}
}

// setActiveLocked requires r.mu to be held.
func (r *Reader) setActiveLocked(info *joystickInfo) {
	r.activeID = info.id
	r.hasActive = true
	r.snapshot = Snapshot{Connected: true, Name: info.name}
}

// announce publishes a DeviceAttached event for the given joystick.
func (r *Reader) announce(info *joystickInfo) {
	r.log.Info("active joystick set", zap.String("name", info.name), zap.Int32("id", int32(info.id)))
	r.emit(Event{Kind: DeviceAttached, Source: &deviceSource{
		reader: r,
		id:     info.id,
		device: info.device,
		name:   info.name,
	}})
}

// SetActiveByIndex switches the active device to the i-th attached joystick
// (1-based). Returns false if no such joystick exists. Safe to call from any
// goroutine.
func (r *Reader) SetActiveByIndex(index int) bool {
	r.mu.Lock()
	if index < 1 || index > len(r.order) {
		r.mu.Unlock()
		return false
	}
	info, ok := r.joysticks[r.order[index-1]]
	if !ok {
		r.mu.Unlock()
		return false
	}
	if r.hasActive && r.activeID == info.id {
		r.mu.Unlock()
		return true
	}
	r.setActiveLocked(info)
	r.mu.Unlock()

	r.announce(info)
	return true
}

func (r *Reader) closeAll() {
	r.mu.Lock()
	infos := make([]*joystickInfo, 0, len(r.joysticks))
	for id, info := range r.joysticks {
		infos = append(infos, info)
		delete(r.joysticks, id)
	}
	r.order = nil
	r.hasActive = false
	r.mu.Unlock()

	for _, info := range infos {
		sdl.CloseJoystick(info.joystick)
	}
}

func (r *Reader) pollState() {
	r.mu.RLock()
	if !r.hasActive {
		r.mu.RUnlock()
		return
	}
	info, exists := r.joysticks[r.activeID]
	r.mu.RUnlock()

	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}

	js := info.joystick
	snap := Snapshot{
		Connected: true,
		Name:      info.name,
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	snap.Buttons = make([]Button, numButtons)
	for i := int32(0); i < numButtons; i++ {
		pressed := sdl.GetJoystickButton(js, i)
		var value float64
		if pressed {
			value = 1
		}
		// Plain joystick buttons are digital; touched mirrors pressed.
		snap.Buttons[i] = Button{Value: value, Touched: pressed, Pressed: pressed}
	}

	numAxes := sdl.GetNumJoystickAxes(js)
	snap.Axes = make([]float64, numAxes)
	for i := int32(0); i < numAxes; i++ {
		raw := sdl.GetJoystickAxis(js, i)
		snap.Axes[i] = ApplyDeadzone(NormalizeAxis(raw), deadzone)
	}

	r.mu.Lock()
	if r.hasActive && r.activeID == info.id {
		r.snapshot = snap
	}
	r.mu.Unlock()
}

func (r *Reader) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		// Drop if the channel is full to avoid blocking the SDL thread
	}
}
