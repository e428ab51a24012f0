package hub

import (
	"time"

	"github.com/soar/XRControllerView/backend/internal/motion"
	"github.com/soar/XRControllerView/backend/internal/profile"
)

// ProfileInfo tells the renderer which profile was resolved and where to load
// the 3D asset from.
type ProfileInfo struct {
	ProfileID  string             `json:"profileId"`
	AssetURL   string             `json:"assetUrl,omitempty"`
	Handedness profile.Handedness `json:"handedness"`
}

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type            string                `json:"type"`                 // "full", "delta", "profile", "disconnected", "controller_selected"
	Seq             int64                 `json:"seq"`                  // Sequence number for ordering
	Timestamp       int64                 `json:"timestamp"`            // Unix timestamp in milliseconds
	Profile         *ProfileInfo          `json:"profile,omitempty"`    // Resolved profile for type "profile"
	Data            motion.ControllerData `json:"data,omitempty"`       // Full snapshot for type "full"
	Changes         motion.ControllerData `json:"changes,omitempty"`    // Changed components for type "delta"
	ControllerIndex int                   `json:"controllerIndex,omitempty"` // For type "controller_selected"
}

// NewFullMessage creates a "full" message containing a complete snapshot.
func NewFullMessage(seq int64, data motion.ControllerData) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewDeltaMessage creates a "delta" message containing only changed
// components.
func NewDeltaMessage(seq int64, changes motion.ControllerData) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewProfileMessage announces the resolved profile and asset location.
func NewProfileMessage(seq int64, info ProfileInfo) *WSMessage {
	return &WSMessage{
		Type:      "profile",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Profile:   &info,
	}
}

// NewDisconnectedMessage announces that no device is active.
func NewDisconnectedMessage(seq int64) *WSMessage {
	return &WSMessage{
		Type:      "disconnected",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewControllerSelectedMessage confirms a client's device switch.
func NewControllerSelectedMessage(index int) *WSMessage {
	return &WSMessage{
		Type:            "controller_selected",
		Timestamp:       time.Now().UnixMilli(),
		ControllerIndex: index,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type            string `json:"type"`
	ControllerIndex int    `json:"controllerIndex,omitempty"`
}
