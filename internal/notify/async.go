// AngelaMos | 2026
// async.go

package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agritrace/agritrace-api/internal/core"
)

// Async makes publishing fire-and-forget. Delivery runs on its own
// goroutine with a context detached from the request, and failures are
// only logged.
type Async struct {
	next    Publisher
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsync(next Publisher, timeout time.Duration, logger *slog.Logger) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Async{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

func (a *Async) Publish(ctx context.Context, event Event) error {
	detached := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		pubCtx, cancel := context.WithTimeout(detached, a.timeout)
		defer cancel()

		pubCtx, span := core.StartSpan(pubCtx, "notify.publish",
			attribute.String("event", event.Name),
		)
		defer span.End()

		if err := a.next.Publish(pubCtx, event); err != nil {
			core.SetSpanError(pubCtx, err)
			a.logger.Warn("failed to publish event",
				"event", event.Name,
				"error", err,
			)
			return
		}

		core.AddSpanEvent(pubCtx, "event.delivered")
	}()

	return nil
}

// Wait blocks until in-flight deliveries finish.
func (a *Async) Wait() {
	a.wg.Wait()
}

var _ Publisher = (*Async)(nil)
