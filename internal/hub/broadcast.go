package hub

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/soar/XRControllerView/backend/internal/motion"
	"github.com/soar/XRControllerView/backend/internal/session"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for session updates and broadcasts them to the hub,
// sending deltas between ticks and periodic full syncs.
type Broadcaster struct {
	hub     *Hub
	updates <-chan session.Update
	log     *zap.Logger

	mu        sync.Mutex
	last      session.Update
	seq       int64
	deltaRuns int64
}

func NewBroadcaster(h *Hub, updates <-chan session.Update, log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		updates: updates,
		log:     log.Named("broadcast"),
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-b.updates:
			if !ok {
				return
			}
			b.handle(update)

		case <-ticker.C:
			b.mu.Lock()
			if b.last.Connected {
				b.seq++
				b.send(NewFullMessage(b.seq, b.last.Data))
			}
			b.mu.Unlock()
		}
	}
}

func (b *Broadcaster) handle(update session.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !update.Connected {
		if b.last.Connected {
			b.seq++
			b.send(NewDisconnectedMessage(b.seq))
		}
		b.last = session.Update{}
		return
	}

	// A new resolution gets announced with a profile message and a fresh
	// full snapshot. The same profile id can resolve to a different layout
	// (handedness) or asset, so compare the whole identity.
	if !b.last.Connected ||
		update.ProfileID != b.last.ProfileID ||
		update.AssetURL != b.last.AssetURL ||
		update.Handedness != b.last.Handedness {
		b.seq++
		b.send(NewProfileMessage(b.seq, ProfileInfo{
			ProfileID:  update.ProfileID,
			AssetURL:   update.AssetURL,
			Handedness: update.Handedness,
		}))
		b.seq++
		b.send(NewFullMessage(b.seq, update.Data))
		b.last = update
		b.deltaRuns = 0
		return
	}

	delta := motion.Diff(b.last.Data, update.Data)
	b.last = update
	if len(delta) == 0 {
		return
	}

	b.seq++
	b.deltaRuns++

	// Send full sync periodically
	if b.deltaRuns >= deltaCountSync {
		b.send(NewFullMessage(b.seq, update.Data))
		b.deltaRuns = 0
	} else {
		b.send(NewDeltaMessage(b.seq, delta))
	}
}

// SendInitialState sends the resolved profile and current full snapshot to a
// newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.last.Connected {
		return
	}

	b.seq++
	profileMsg := NewProfileMessage(b.seq, ProfileInfo{
		ProfileID:  b.last.ProfileID,
		AssetURL:   b.last.AssetURL,
		Handedness: b.last.Handedness,
	})
	b.seq++
	fullMsg := NewFullMessage(b.seq, b.last.Data)

	for _, msg := range []*WSMessage{profileMsg, fullMsg} {
		data, err := json.Marshal(msg)
		if err != nil {
			b.log.Error("marshal initial state", zap.Error(err))
			return
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (b *Broadcaster) send(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}
