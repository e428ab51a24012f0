package input

import "github.com/soar/XRControllerView/backend/internal/profile"

// Source is a live input device as seen by the mapping engine.
type Source interface {
	// Profiles returns the ordered profile id candidates for this device,
	// most specific first.
	Profiles() []string
	// Handedness reports which hand the device is bound to.
	Handedness() profile.Handedness
	// Gamepad returns the current raw device snapshot.
	Gamepad() Snapshot
}

// EventKind discriminates device lifecycle events.
type EventKind int

const (
	// DeviceAttached fires when a device becomes the active source,
	// either on connect or on promotion after the previous active device
	// disappeared.
	DeviceAttached EventKind = iota
	// DeviceDetached fires when no device remains active.
	DeviceDetached
)

// Event is a device lifecycle notification. Source is non-nil only for
// DeviceAttached.
type Event struct {
	Kind   EventKind
	Source Source
}
