// AngelaMos | 2026
// publisher.go

package testutil

import (
	"context"
	"sync"

	"github.com/agritrace/agritrace-api/internal/notify"
)

// Recorder is a notify.Publisher that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *Recorder) Publish(_ context.Context, event notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}

var _ notify.Publisher = (*Recorder)(nil)
