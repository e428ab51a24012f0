package hub

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DeviceSwitcher switches the active controller to the i-th attached device.
type DeviceSwitcher interface {
	SetActiveByIndex(int) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
	log  *zap.Logger
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		id:   id,
		log:  hub.log.With(zap.String("client", id)),
	}
}

// ID returns the client's identity, used for logging.
func (c *Client) ID() string {
	return c.id
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and handles client
// commands.
func (c *Client) ReadPumpWithHandler(switcher DeviceSwitcher) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.log.Warn("unparseable client message", zap.Error(err))
			continue
		}

		switch clientMsg.Type {
		case "select_controller":
			if switcher.SetActiveByIndex(clientMsg.ControllerIndex) {
				msg := NewControllerSelectedMessage(clientMsg.ControllerIndex)
				data, _ := json.Marshal(msg)
				c.send <- data
				c.log.Info("client switched controller", zap.Int("index", clientMsg.ControllerIndex))
			} else {
				c.log.Warn("invalid controller index", zap.Int("index", clientMsg.ControllerIndex))
			}
		}
	}
}
