package opportunity_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/honeycarbs/jobfit/internal/assessment"
	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/internal/opportunity"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

type fakeAPI struct {
	mu          sync.Mutex
	opps        []domain.Opportunity
	assessments map[domain.OpportunityID]domain.JobAssessment
	failFetch   map[domain.OpportunityID]bool

	calls   atomic.Int32
	fetches atomic.Int32
	deleted []domain.OpportunityID
	created []domain.OpportunityCreate
}

func newFakeAPI(opps ...domain.Opportunity) *fakeAPI {
	return &fakeAPI{
		opps:        opps,
		assessments: map[domain.OpportunityID]domain.JobAssessment{},
		failFetch:   map[domain.OpportunityID]bool{},
	}
}

func (f *fakeAPI) ListOpportunities(context.Context) ([]domain.Opportunity, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Opportunity(nil), f.opps...), nil
}

func (f *fakeAPI) CreateOpportunity(_ context.Context, in domain.OpportunityCreate) (domain.Opportunity, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	return domain.Opportunity{ID: 100, Title: in.Title, Company: in.Company, Status: in.Status}, nil
}

func (f *fakeAPI) CreateOpportunityFromLink(_ context.Context, link string) (domain.Opportunity, error) {
	f.calls.Add(1)
	return domain.Opportunity{ID: 101, Title: "From link", Company: "X", PostingLink: &link}, nil
}

func (f *fakeAPI) DeleteOpportunity(_ context.Context, id domain.OpportunityID) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) GetOpportunityAssessment(_ context.Context, id domain.OpportunityID) (domain.JobAssessment, error) {
	f.fetches.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFetch[id] {
		return domain.JobAssessment{}, errors.New("timeout")
	}
	a, ok := f.assessments[id]
	if !ok {
		return domain.JobAssessment{}, tracker.ErrNotFound
	}
	return a, nil
}

func (f *fakeAPI) AssessOpportunity(_ context.Context, id domain.OpportunityID, profileID int64) (domain.JobAssessment, error) {
	return domain.JobAssessment{OpportunityID: id, ProfileID: profileID, FitScore: 4}, nil
}

type version int

func (v version) ProfileVersion() int { return int(v) }

func newService(t *testing.T, api *fakeAPI, v int) (*opportunity.Service, *assessment.Store) {
	t.Helper()

	store, err := assessment.NewStore(api, api)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc, err := opportunity.NewService(
		opportunity.WithAPI(api),
		opportunity.WithStore(store),
		opportunity.WithVersionSource(version(v)),
		opportunity.WithConcurrency(2),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := opportunity.NewService(); err == nil {
		t.Errorf("expected error without api")
	}
}

func TestListAnnotatesRows(t *testing.T) {
	api := newFakeAPI(
		domain.Opportunity{ID: 1, Title: "A"},
		domain.Opportunity{ID: 2, Title: "B"},
		domain.Opportunity{ID: 3, Title: "C"},
		domain.Opportunity{ID: 4, Title: "D"},
	)
	api.assessments[1] = domain.JobAssessment{ID: 10, OpportunityID: 1, FitScore: 6, ProfileVersion: 2}
	api.assessments[2] = domain.JobAssessment{ID: 11, OpportunityID: 2, FitScore: 3, ProfileVersion: 1}
	api.failFetch[4] = true

	svc, _ := newService(t, api, 2)

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d", len(rows))
	}

	want := []assessment.Freshness{
		assessment.FreshnessCurrent,
		assessment.FreshnessOutdated,
		assessment.FreshnessNone,
		assessment.FreshnessNone,
	}
	for i, r := range rows {
		if r.Opportunity.ID != domain.OpportunityID(i+1) {
			t.Errorf("row %d out of order: %d", i, r.Opportunity.ID)
		}
		if r.Freshness != want[i] {
			t.Errorf("row %d freshness = %s, want %s", i, r.Freshness, want[i])
		}
	}
	if rows[3].Err == nil {
		t.Errorf("failed load not reported on its row")
	}
	if rows[2].Err != nil {
		t.Errorf("absence reported as error: %v", rows[2].Err)
	}
}

func TestListReusesCachedAssessments(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1}, domain.Opportunity{ID: 2})
	svc, _ := newService(t, api, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.List(ctx); err != nil {
			t.Fatalf("List: %v", err)
		}
	}
	if got := api.fetches.Load(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestRefreshEvictsRemovedOpportunities(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1}, domain.Opportunity{ID: 2})
	api.assessments[2] = domain.JobAssessment{ID: 5, OpportunityID: 2, FitScore: 5}
	svc, store := newService(t, api, 1)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	api.mu.Lock()
	api.opps = api.opps[:1]
	api.mu.Unlock()

	if _, err := svc.Refresh(ctx, false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, ok := store.Lookup(2); ok {
		t.Errorf("assessment of removed opportunity still cached")
	}
	if _, ok := store.Lookup(1); !ok {
		t.Errorf("live opportunity dropped")
	}
}

func TestRefreshWithRefetch(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1})
	svc, _ := newService(t, api, 1)
	ctx := context.Background()

	if _, err := svc.Refresh(ctx, false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := svc.Refresh(ctx, true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := api.fetches.Load(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	api := newFakeAPI()
	svc, _ := newService(t, api, 1)

	_, err := svc.Create(context.Background(), domain.OpportunityCreate{Title: "", Company: "Acme"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.calls.Load() != 0 {
		t.Errorf("request sent for invalid input")
	}
}

func TestCreateDefaultsStatusAndTrims(t *testing.T) {
	api := newFakeAPI()
	svc, _ := newService(t, api, 1)

	opp, err := svc.Create(context.Background(), domain.OpportunityCreate{Title: "  SRE ", Company: " Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if opp.Status != domain.StatusToApply {
		t.Errorf("status = %q", opp.Status)
	}
	if api.created[0].Title != "SRE" || api.created[0].Company != "Acme" {
		t.Errorf("fields not trimmed: %+v", api.created[0])
	}
}

func TestEnrichRejectsBadLinks(t *testing.T) {
	api := newFakeAPI()
	svc, _ := newService(t, api, 1)

	for _, link := range []string{"", "   ", "not a url", "ftp://jobs.example/1", "https://"} {
		if _, err := svc.Enrich(context.Background(), link); !domain.IsValidation(err) {
			t.Errorf("Enrich(%q) = %v, want validation error", link, err)
		}
	}
	if api.calls.Load() != 0 {
		t.Errorf("request sent for invalid link")
	}

	if _, err := svc.Enrich(context.Background(), " https://jobs.example/1 "); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
}

func TestDeleteEvictsAssessment(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1})
	api.assessments[1] = domain.JobAssessment{ID: 9, OpportunityID: 1}
	svc, store := newService(t, api, 1)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(api.deleted) != 1 || api.deleted[0] != 1 {
		t.Errorf("deleted = %v", api.deleted)
	}
	if _, ok := store.Lookup(1); ok {
		t.Errorf("assessment still cached after delete")
	}
}

func TestAnnotateTracksLiveVersion(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1})
	api.assessments[1] = domain.JobAssessment{ID: 9, OpportunityID: 1, ProfileVersion: 1}
	store, _ := assessment.NewStore(api, api)

	v := &liveVersion{v: 1}
	svc, err := opportunity.NewServiceWithDeps(api, store, v, nil, 0)
	if err != nil {
		t.Fatalf("NewServiceWithDeps: %v", err)
	}

	rows, _ := svc.List(context.Background())
	if rows[0].Freshness != assessment.FreshnessCurrent {
		t.Fatalf("freshness = %s", rows[0].Freshness)
	}

	v.v = 2
	rows = svc.Annotate(rows)
	if rows[0].Freshness != assessment.FreshnessOutdated {
		t.Errorf("freshness after version change = %s", rows[0].Freshness)
	}
}

type liveVersion struct{ v int }

func (l *liveVersion) ProfileVersion() int { return l.v }

func TestRefetchAnnouncesNothing(t *testing.T) {
	api := newFakeAPI(domain.Opportunity{ID: 1}, domain.Opportunity{ID: 2})
	api.assessments[1] = domain.JobAssessment{ID: 3, OpportunityID: 1}

	var changes int
	store, err := assessment.NewStore(api, api, assessment.WithListener(func(assessment.Change) { changes++ }))
	if err != nil {
		t.Fatal(err)
	}
	svc, err := opportunity.NewServiceWithDeps(api, store, version(1), nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(ctx, true); err != nil {
		t.Fatal(err)
	}

	if changes != 0 {
		t.Errorf("refetch announced %d changes", changes)
	}
	if got := api.fetches.Load(); got != 4 {
		t.Errorf("fetches = %d, want 4", got)
	}
}
