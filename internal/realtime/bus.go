// Package realtime delivers chat change events to connected websocket
// clients. Mutations publish a {table, action} event to a Redis channel;
// a subscriber loop fans it out through the hub. Clients refetch on any
// event; the feed carries no row data.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "messwallet:changes"

// Event names the table that changed and what happened to it.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Bus publishes change events over Redis pub/sub so every server instance
// sees every change.
type Bus struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewBus(rdb *redis.Client, logger *zap.Logger) *Bus {
	return &Bus{rdb: rdb, logger: logger}
}

// Publish is best-effort: a failed publish is logged, never surfaced to the
// mutation that triggered it.
func (b *Bus) Publish(ctx context.Context, table, action string) {
	payload, err := json.Marshal(Event{Table: table, Action: action})
	if err != nil {
		b.logger.Error("marshal change event", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		b.logger.Warn("publish change event",
			zap.String("table", table),
			zap.Error(err),
		)
	}
}

// Subscribe pumps events from Redis into the hub until ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, hub *Hub) error {
	sub := b.rdb.Subscribe(ctx, channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis subscription closed")
			}
			hub.Broadcast([]byte(msg.Payload))
		}
	}
}
