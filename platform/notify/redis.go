package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultChannel is the redis channel used when none is configured
const DefaultChannel = "notes.changed"

// Redis delivers signals through redis pub/sub, so every process writing to
// the same database wakes up the live queries of the others.
type Redis struct {
	client  *redis.Client
	channel string
	log     *zap.SugaredLogger
}

// NewRedis creates a notifier publishing on channel
func NewRedis(client *redis.Client, channel string, log *zap.SugaredLogger) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, channel: channel, log: log}
}

func (r *Redis) Publish(ctx context.Context) error {
	if err := r.client.Publish(ctx, r.channel, "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", r.channel, err)
	}
	return nil
}

// Subscribe returns after redis confirmed the subscription, so a Publish issued
// after it returns is never missed.
func (r *Redis) Subscribe(ctx context.Context) (<-chan struct{}, error) {
	ps := r.client.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() {
			if err := ps.Close(); err != nil {
				r.log.Errorw("notify", "status", "could not close subscription", "channel", r.channel, "ERROR", err)
			}
		}()

		messages := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				signal(out)
			}
		}
	}()

	return out, nil
}
