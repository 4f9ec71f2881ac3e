package opportunity

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

const defaultConcurrency = 8

// API is the subset of the tracker backend used for opportunities
type API interface {
	ListOpportunities(ctx context.Context) ([]domain.Opportunity, error)
	CreateOpportunity(ctx context.Context, in domain.OpportunityCreate) (domain.Opportunity, error)
	CreateOpportunityFromLink(ctx context.Context, link string) (domain.Opportunity, error)
	DeleteOpportunity(ctx context.Context, id domain.OpportunityID) error
}

// VersionSource provides the live profile version
type VersionSource interface {
	ProfileVersion() int
}

// Row is an opportunity annotated with its assessment state
type Row struct {
	Opportunity domain.Opportunity
	Entry       assessment.Entry
	Freshness   assessment.Freshness
	Pending     bool
	Err         error // assessment load failure; the row is still shown
}

// Option configures Service
type Option func(*config)

type config struct {
	api         API
	store       *assessment.Store
	versions    VersionSource
	logger      *logging.Logger
	concurrency int
}

// WithAPI sets the backend client
func WithAPI(api API) Option {
	return func(c *config) {
		c.api = api
	}
}

// WithStore sets the assessment store
func WithStore(store *assessment.Store) Option {
	return func(c *config) {
		c.store = store
	}
}

// WithVersionSource sets where the live profile version is read from
func WithVersionSource(v VersionSource) Option {
	return func(c *config) {
		c.versions = v
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithConcurrency bounds parallel assessment loads
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// Service lists and mutates opportunities and keeps the assessment store in step
type Service struct {
	api         API
	store       *assessment.Store
	versions    VersionSource
	logger      *logging.Logger
	concurrency int
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{
		logger:      logging.Nop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return NewServiceWithDeps(cfg.api, cfg.store, cfg.versions, cfg.logger, cfg.concurrency)
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(api API, store *assessment.Store, versions VersionSource, logger *logging.Logger, concurrency int) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("opportunity.Service: api is required")
	}
	if store == nil {
		return nil, fmt.Errorf("opportunity.Service: assessment store is required")
	}
	if versions == nil {
		return nil, fmt.Errorf("opportunity.Service: version source is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Service{
		api:         api,
		store:       store,
		versions:    versions,
		logger:      logger,
		concurrency: concurrency,
	}, nil
}

// List loads every opportunity and makes sure each one's assessment is in the store.
// Assessment loads run concurrently and complete in any order; a failed load is
// reported on its row and does not fail the list.
func (s *Service) List(ctx context.Context) ([]Row, error) {
	opps, err := s.api.ListOpportunities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	rows := make([]Row, len(opps))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i := range opps {
		rows[i].Opportunity = opps[i]
		g.Go(func() error {
			e, err := s.store.EnsureLoaded(ctx, opps[i].ID)
			rows[i].Entry = e
			rows[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Debug("opportunities loaded", "count", len(rows))
	return s.Annotate(rows), nil
}

// Annotate re-reads every row's entry from the store and evaluates it against
// the live profile version
func (s *Service) Annotate(rows []Row) []Row {
	version := s.versions.ProfileVersion()
	for i := range rows {
		id := rows[i].Opportunity.ID
		if e, ok := s.store.Lookup(id); ok {
			rows[i].Entry = e
		}
		rows[i].Freshness = assessment.Evaluate(rows[i].Entry, version)
		rows[i].Pending = s.store.Pending(id)
	}
	return rows
}

// Refresh reloads the list, evicting assessments of opportunities that no longer exist.
// With refetch every cached assessment is invalidated first so all are fetched
// again; nothing changed on the backend, so no change is announced.
func (s *Service) Refresh(ctx context.Context, refetch bool) ([]Row, error) {
	if refetch {
		for _, id := range s.store.Keys() {
			s.store.Invalidate(id)
		}
	}

	rows, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	live := make(map[domain.OpportunityID]struct{}, len(rows))
	for _, r := range rows {
		live[r.Opportunity.ID] = struct{}{}
	}
	for _, id := range s.store.Keys() {
		if _, ok := live[id]; !ok {
			s.logger.Debug("evicting assessment of removed opportunity", "opportunity_id", id)
			s.store.Evict(id)
		}
	}

	return rows, nil
}

// Create validates and creates an opportunity from manual input
func (s *Service) Create(ctx context.Context, in domain.OpportunityCreate) (domain.Opportunity, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	if in.Status == "" {
		in.Status = domain.DefaultStatus
	}
	if err := in.Validate(); err != nil {
		return domain.Opportunity{}, err
	}

	opp, err := s.api.CreateOpportunity(ctx, in)
	if err != nil {
		return domain.Opportunity{}, fmt.Errorf("create opportunity: %w", err)
	}

	s.logger.Info("opportunity created", "opportunity_id", opp.ID, "company", opp.Company)
	return opp, nil
}

// Enrich creates an opportunity from a posting URL; the backend extracts the fields
func (s *Service) Enrich(ctx context.Context, link string) (domain.Opportunity, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return domain.Opportunity{}, &domain.ValidationError{Field: "link", Msg: "please enter a job posting URL"}
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Opportunity{}, &domain.ValidationError{Field: "link", Msg: fmt.Sprintf("%q is not a valid http(s) URL", link)}
	}

	opp, err := s.api.CreateOpportunityFromLink(ctx, link)
	if err != nil {
		return domain.Opportunity{}, fmt.Errorf("enrich opportunity from link: %w", err)
	}

	s.logger.Info("opportunity enriched from link", "opportunity_id", opp.ID, "link", link)
	return opp, nil
}

// Delete removes the opportunity and its cached assessment, cancelling any generation in flight
func (s *Service) Delete(ctx context.Context, id domain.OpportunityID) error {
	if err := s.api.DeleteOpportunity(ctx, id); err != nil {
		return fmt.Errorf("delete opportunity %d: %w", id, err)
	}

	s.store.Evict(id)
	s.logger.Info("opportunity deleted", "opportunity_id", id)
	return nil
}
