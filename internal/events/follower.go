package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// Origin identifies one running process on the event channels
type Origin string

// NewOrigin returns a random origin for this process
func NewOrigin() Origin {
	return Origin(uuid.NewString())
}

// Invalidator drops a cached entry without announcing it.
// *assessment.Store satisfies it.
type Invalidator interface {
	Invalidate(id domain.OpportunityID)
}

// Follower applies changes made by other processes to the local store.
// Events from its own origin are ignored, and invalidation publishes
// nothing, so following never produces events of its own.
type Follower struct {
	origin   Origin
	store    Invalidator
	onChange func(Event)
	logger   *logging.Logger
}

// NewFollower creates a follower. onChange runs after every applied event and may be nil.
func NewFollower(origin Origin, store Invalidator, onChange func(Event), logger *logging.Logger) *Follower {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Follower{origin: origin, store: store, onChange: onChange, logger: logger}
}

// Handle applies one event and reports whether it came from another process
func (f *Follower) Handle(ev Event) bool {
	if ev.Origin == f.origin {
		return false
	}

	f.logger.Debug("change event received", "type", ev.Type, "opportunity_id", ev.OpportunityID, "origin", ev.Origin)
	f.store.Invalidate(ev.OpportunityID)
	if f.onChange != nil {
		f.onChange(ev)
	}
	return true
}

// Run follows both channels until ctx is done
func (f *Follower) Run(ctx context.Context, rdb *redis.Client) error {
	return Subscribe(ctx, rdb, func(ev Event) {
		f.Handle(ev)
	})
}
