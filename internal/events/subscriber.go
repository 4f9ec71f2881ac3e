package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Subscribe delivers decoded events from both channels until ctx is done.
// Malformed payloads are skipped.
func Subscribe(ctx context.Context, rdb *redis.Client, fn func(Event)) error {
	sub := rdb.Subscribe(ctx, AssessmentUpdated, AssessmentEvicted)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			ev, err := Decode(msg.Payload)
			if err != nil {
				continue
			}
			fn(ev)
		}
	}
}

// Decode parses an event payload
func Decode(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Type != AssessmentUpdated && ev.Type != AssessmentEvicted {
		return Event{}, fmt.Errorf("decode event: unknown type %q", ev.Type)
	}
	return ev, nil
}
