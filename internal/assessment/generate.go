package assessment

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobfit/internal/domain"
)

type flight struct {
	done    chan struct{}
	cancel  context.CancelFunc
	evicted bool // guarded by Store.mu

	result domain.JobAssessment
	err    error
}

func (f *flight) wait(ctx context.Context) (domain.JobAssessment, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return domain.JobAssessment{}, ctx.Err()
	}
}

// Generate requests a fresh assessment and upserts it on success.
// A call for an opportunity that already has a generation in flight joins
// that call instead of starting another. On failure the cached entry is left
// as it was. If the opportunity is evicted before the response arrives the
// request is cancelled and the result is dropped. Only eviction is checked:
// an Upsert that lands during the request is replaced by its result.
func (s *Store) Generate(ctx context.Context, id domain.OpportunityID, profileID int64) (domain.JobAssessment, error) {
	s.mu.Lock()
	if f, ok := s.flights[id]; ok {
		s.mu.Unlock()
		s.logger.Debug("joining in-flight generation", "opportunity_id", id)
		return f.wait(ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	f := &flight{done: make(chan struct{}), cancel: cancel}
	s.flights[id] = f
	s.mu.Unlock()

	s.logger.Info("generating assessment", "opportunity_id", id, "profile_id", profileID)
	a, err := s.generator.AssessOpportunity(runCtx, id, profileID)
	cancel()

	s.mu.Lock()
	if s.flights[id] == f {
		delete(s.flights, id)
	}
	evicted := f.evicted
	upsert := err == nil && !evicted
	if upsert {
		s.gens[id]++
		s.entries[id] = present(a)
	}
	s.mu.Unlock()

	switch {
	case evicted:
		f.err = fmt.Errorf("generate assessment for opportunity %d: %w", id, ErrEvicted)
	case err != nil:
		s.logger.Warn("assessment generation failed", "opportunity_id", id, "err", err)
		f.err = fmt.Errorf("generate assessment for opportunity %d: %w", id, err)
	default:
		f.result = a
		s.notify(Change{Kind: ChangeUpserted, OpportunityID: id, Assessment: &a})
	}
	close(f.done)

	return f.result, f.err
}
