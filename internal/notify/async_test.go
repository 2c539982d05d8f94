// AngelaMos | 2026
// async_test.go

package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agritrace/agritrace-api/internal/notify"
)

type capture struct {
	mu     sync.Mutex
	events []notify.Event
	ctxErr error
	err    error
}

func (c *capture) Publish(ctx context.Context, event notify.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	c.ctxErr = ctx.Err()
	return c.err
}

func TestAsyncSurvivesRequestCancellation(t *testing.T) {
	next := &capture{}
	async := notify.NewAsync(next, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, async.Publish(ctx, notify.Event{Name: notify.EventNewCollection}))
	async.Wait()

	next.mu.Lock()
	defer next.mu.Unlock()
	assert.Len(t, next.events, 1)
	assert.NoError(t, next.ctxErr)
}

func TestAsyncSwallowsDeliveryErrors(t *testing.T) {
	next := &capture{err: errors.New("redis down")}
	async := notify.NewAsync(next, time.Second, nil)

	for range 3 {
		assert.NoError(t, async.Publish(context.Background(), notify.Event{Name: notify.EventNewFarmer}))
	}
	async.Wait()

	next.mu.Lock()
	defer next.mu.Unlock()
	assert.Len(t, next.events, 3)
}
