// Package events publishes assessment store changes to Redis so other
// processes (a watching CLI session, the MCP server) can drop their cached
// copies. Every event carries the origin of the process that sent it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// Channel names
const (
	AssessmentUpdated = "EVENT_ASSESSMENT_UPDATED"
	AssessmentEvicted = "EVENT_ASSESSMENT_EVICTED"
)

const publishTimeout = 2 * time.Second

// Event is the JSON payload sent on both channels
type Event struct {
	Type           string               `json:"type"`
	Origin         Origin               `json:"origin"`
	OpportunityID  domain.OpportunityID `json:"opportunityId"`
	AssessmentID   int64                `json:"assessmentId,omitempty"`
	FitScore       int                  `json:"fitScore,omitempty"`
	ProfileVersion int                  `json:"profileVersion,omitempty"`
	At             time.Time            `json:"at"`
}

// Redis is the part of *redis.Client the publisher needs
type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher forwards store changes to Redis. Failures are logged and never
// reach the store.
type Publisher struct {
	rdb    Redis
	origin Origin
	logger *logging.Logger
	now    func() time.Time
}

// NewPublisher creates a publisher that stamps events with origin
func NewPublisher(rdb Redis, origin Origin, logger *logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Publisher{rdb: rdb, origin: origin, logger: logger, now: time.Now}
}

// Listener adapts the publisher to assessment.WithListener
func (p *Publisher) Listener() func(assessment.Change) {
	return func(c assessment.Change) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		p.Publish(ctx, c)
	}
}

// Publish sends one change
func (p *Publisher) Publish(ctx context.Context, c assessment.Change) {
	ev := Event{OpportunityID: c.OpportunityID, Origin: p.origin, At: p.now().UTC()}

	switch c.Kind {
	case assessment.ChangeUpserted:
		ev.Type = AssessmentUpdated
		if c.Assessment != nil {
			ev.AssessmentID = c.Assessment.ID
			ev.FitScore = c.Assessment.FitScore
			ev.ProfileVersion = c.Assessment.ProfileVersion
		}
	case assessment.ChangeEvicted:
		ev.Type = AssessmentEvicted
	default:
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Warn("encode event failed", "type", ev.Type, "err", err)
		return
	}

	if err := p.rdb.Publish(ctx, ev.Type, payload).Err(); err != nil {
		p.logger.Warn("publish "+ev.Type+" failed", "opportunity_id", ev.OpportunityID, "err", err)
	}
}
