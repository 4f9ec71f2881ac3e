package assessment

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// fakeBackend serves assessments from a map and counts calls.
// When gate is set, calls block until it is closed.
type fakeBackend struct {
	mu          sync.Mutex
	assessments map[domain.OpportunityID]domain.JobAssessment
	fetchErr    error
	generateErr error
	generated   domain.JobAssessment

	fetchGate    chan struct{}
	generateGate chan struct{}
	started      chan struct{}
	// ignoreCancel makes a gated generation finish after its context is cancelled
	ignoreCancel bool

	fetches   atomic.Int32
	generates atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{assessments: map[domain.OpportunityID]domain.JobAssessment{}}
}

func (f *fakeBackend) GetOpportunityAssessment(ctx context.Context, id domain.OpportunityID) (domain.JobAssessment, error) {
	f.fetches.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.fetchGate != nil {
		select {
		case <-f.fetchGate:
		case <-ctx.Done():
			return domain.JobAssessment{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return domain.JobAssessment{}, f.fetchErr
	}
	a, ok := f.assessments[id]
	if !ok {
		return domain.JobAssessment{}, tracker.ErrNotFound
	}
	return a, nil
}

func (f *fakeBackend) AssessOpportunity(ctx context.Context, id domain.OpportunityID, profileID int64) (domain.JobAssessment, error) {
	f.generates.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.generateGate != nil {
		if f.ignoreCancel {
			<-f.generateGate
		} else {
			select {
			case <-f.generateGate:
			case <-ctx.Done():
				return domain.JobAssessment{}, ctx.Err()
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generateErr != nil {
		return domain.JobAssessment{}, f.generateErr
	}
	a := f.generated
	a.OpportunityID = id
	a.ProfileID = profileID
	f.assessments[id] = a
	return a, nil
}

func (f *fakeBackend) set(a domain.JobAssessment) {
	f.mu.Lock()
	f.assessments[a.OpportunityID] = a
	f.mu.Unlock()
}

func newTestStore(t interface{ Fatalf(string, ...any) }, b *fakeBackend, opts ...Option) *Store {
	s, err := NewStore(b, b, opts...)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}
