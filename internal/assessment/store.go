package assessment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/logging"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

var (
	// ErrNoAssessment is returned when an operation needs a resolved assessment and the store holds none.
	ErrNoAssessment = errors.New("assessment: no assessment for opportunity")

	// ErrEvicted is returned by Generate when the opportunity was evicted while generation was in flight.
	ErrEvicted = errors.New("assessment: opportunity evicted during generation")
)

// Fetcher loads the current assessment of an opportunity.
// tracker.ErrNotFound means none exists yet.
type Fetcher interface {
	GetOpportunityAssessment(ctx context.Context, opportunityID domain.OpportunityID) (domain.JobAssessment, error)
}

// Generator computes a new assessment for an opportunity/profile pair
type Generator interface {
	AssessOpportunity(ctx context.Context, opportunityID domain.OpportunityID, profileID int64) (domain.JobAssessment, error)
}

// Entry is a cached store value: either an assessment or a known absence
type Entry struct {
	assessment *domain.JobAssessment
}

func present(a domain.JobAssessment) Entry {
	return Entry{assessment: &a}
}

// EntryFor wraps a record that did not come from the store, e.g. a list response.
// A nil assessment is an absent entry.
func EntryFor(a *domain.JobAssessment) Entry {
	if a == nil {
		return Entry{}
	}
	return present(*a)
}

// Present reports whether an assessment exists
func (e Entry) Present() bool { return e.assessment != nil }

// Assessment returns a copy of the cached assessment, or nil when absent
func (e Entry) Assessment() *domain.JobAssessment {
	if e.assessment == nil {
		return nil
	}
	a := *e.assessment
	return &a
}

// ChangeKind tells listeners what happened to a key
type ChangeKind int

const (
	ChangeUpserted ChangeKind = iota + 1
	ChangeEvicted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeUpserted:
		return "upserted"
	case ChangeEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}

// Change describes a store mutation
type Change struct {
	Kind          ChangeKind
	OpportunityID domain.OpportunityID
	Assessment    *domain.JobAssessment
}

// Option configures Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithListener registers a callback invoked after every upsert and eviction
func WithListener(fn func(Change)) Option {
	return func(s *Store) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Store caches the latest known assessment per opportunity.
// The map is only mutated through EnsureLoaded, Upsert, Evict and Generate.
type Store struct {
	fetcher   Fetcher
	generator Generator
	logger    *logging.Logger
	listeners []func(Change)

	mu      sync.Mutex
	entries map[domain.OpportunityID]Entry
	// gens is bumped by every Upsert and Evict; never reset, so late results can be detected after eviction.
	gens    map[domain.OpportunityID]uint64
	flights map[domain.OpportunityID]*flight
	loads   singleflight.Group
}

// NewStore creates an empty store
func NewStore(fetcher Fetcher, generator Generator, opts ...Option) (*Store, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("assessment.Store: fetcher is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("assessment.Store: generator is required")
	}

	s := &Store{
		fetcher:   fetcher,
		generator: generator,
		logger:    logging.Nop(),
		entries:   make(map[domain.OpportunityID]Entry),
		gens:      make(map[domain.OpportunityID]uint64),
		flights:   make(map[domain.OpportunityID]*flight),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s, nil
}

// Lookup returns the cached entry without any I/O
func (s *Store) Lookup(id domain.OpportunityID) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	return e, ok
}

// Keys returns the cached opportunity IDs in ascending order
func (s *Store) Keys() []domain.OpportunityID {
	s.mu.Lock()
	keys := make([]domain.OpportunityID, 0, len(s.entries))
	for id := range s.entries {
		keys = append(keys, id)
	}
	s.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// EnsureLoaded returns the cached entry, fetching it on first use.
// A not-found response resolves to an absent entry. Any other failure
// leaves the cache untouched and is returned. Concurrent calls for one key
// share a single fetch.
func (s *Store) EnsureLoaded(ctx context.Context, id domain.OpportunityID) (Entry, error) {
	if e, ok := s.Lookup(id); ok {
		return e, nil
	}

	v, err, _ := s.loads.Do(strconv.FormatInt(id, 10), func() (any, error) {
		s.mu.Lock()
		if e, ok := s.entries[id]; ok {
			s.mu.Unlock()
			return e, nil
		}
		gen := s.gens[id]
		s.mu.Unlock()

		a, err := s.fetcher.GetOpportunityAssessment(ctx, id)

		var fetched Entry
		switch {
		case err == nil:
			fetched = present(a)
		case errors.Is(err, tracker.ErrNotFound):
			fetched = Entry{}
		default:
			s.logger.Warn("assessment fetch failed", "opportunity_id", id, "err", err)
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.gens[id] != gen {
			// An upsert or eviction landed while fetching; it wins.
			s.logger.Debug("discarding stale assessment fetch", "opportunity_id", id)
			if cur, ok := s.entries[id]; ok {
				return cur, nil
			}
			return fetched, nil
		}

		s.entries[id] = fetched
		return fetched, nil
	})
	if err != nil {
		return Entry{}, fmt.Errorf("load assessment for opportunity %d: %w", id, err)
	}

	return v.(Entry), nil
}

// Upsert replaces the cached entry unconditionally
func (s *Store) Upsert(id domain.OpportunityID, a domain.JobAssessment) {
	s.mu.Lock()
	s.gens[id]++
	s.entries[id] = present(a)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeUpserted, OpportunityID: id, Assessment: &a})
}

// Evict removes the entry and cancels an in-flight generation for it.
// The next EnsureLoaded fetches again.
func (s *Store) Evict(id domain.OpportunityID) {
	s.mu.Lock()
	s.gens[id]++
	_, had := s.entries[id]
	delete(s.entries, id)
	if f, ok := s.flights[id]; ok {
		f.evicted = true
		f.cancel()
		// later Generate calls start a new request instead of joining this one
		delete(s.flights, id)
	}
	s.mu.Unlock()

	if had {
		s.notify(Change{Kind: ChangeEvicted, OpportunityID: id})
	}
}

// Invalidate drops the cached entry so the next EnsureLoaded fetches again.
// Unlike Evict it leaves in-flight generations running and notifies no
// listeners: the record itself did not change here.
func (s *Store) Invalidate(id domain.OpportunityID) {
	s.mu.Lock()
	s.gens[id]++
	delete(s.entries, id)
	s.mu.Unlock()

	s.logger.Debug("assessment invalidated", "opportunity_id", id)
}

// Pending reports whether a generation is in flight for the opportunity
func (s *Store) Pending(id domain.OpportunityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.flights[id]
	return ok
}

func (s *Store) notify(c Change) {
	s.logger.Debug("assessment store changed", "kind", c.Kind.String(), "opportunity_id", c.OpportunityID)
	for _, fn := range s.listeners {
		fn(c)
	}
}
