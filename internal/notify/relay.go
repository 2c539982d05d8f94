// AngelaMos | 2026
// relay.go

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Broadcaster receives raw event payloads for local delivery.
type Broadcaster interface {
	Broadcast(payload []byte)
}

// RedisRelay publishes events on a Redis channel and feeds everything
// received on that channel to the local hub, so every API instance
// delivers every event.
type RedisRelay struct {
	rdb     *redis.Client
	channel string
	local   Broadcaster
	logger  *slog.Logger
}

func NewRedisRelay(
	rdb *redis.Client,
	channel string,
	local Broadcaster,
	logger *slog.Logger,
) *RedisRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRelay{
		rdb:     rdb,
		channel: channel,
		local:   local,
		logger:  logger,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}

	return nil
}

// Run blocks until ctx is cancelled, forwarding channel messages.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer func() {
		_ = sub.Close() //nolint:errcheck // best-effort unsubscribe
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	r.logger.Info("realtime relay subscribed", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.local.Broadcast([]byte(msg.Payload))
		}
	}
}

var _ Publisher = (*RedisRelay)(nil)
