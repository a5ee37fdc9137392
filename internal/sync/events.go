package sync

import (
	"time"

	"github.com/dom/lol-extension-backend/internal/domain"
)

const (
	EventStateChanged = "state_changed"
	EventSyncFinished = "sync_finished"
	EventSyncFailed   = "sync_failed"
)

// Event is one sync status transition, published for the websocket stream.
type Event struct {
	Type      string        `json:"type"`
	Family    domain.Family `json:"family"`
	State     State         `json:"state"`
	Version   string        `json:"version,omitempty"`
	Message   string        `json:"message,omitempty"`
	Synced    int           `json:"synced,omitempty"`
	Failed    int           `json:"failed,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Publisher receives status events. Publish must not block; slow consumers
// drop events rather than stall the sync pipeline.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards events; used when no websocket hub is attached.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
