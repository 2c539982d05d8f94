// AngelaMos | 2026
// event.go

package notify

import (
	"context"
)

const (
	EventNewFarmer     = "newFarmer"
	EventNewActivity   = "newActivity"
	EventNewCollection = "newCollection"
)

// Event is the realtime wire format sent to connected clients.
type Event struct {
	Name    string `json:"event"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

var _ Publisher = Nop{}
