// Package discovery imports job board search results as tracked opportunities.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/adzuna"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// Searcher describes the subset of the Adzuna client used here
type Searcher interface {
	Search(ctx context.Context, query string, params adzuna.SearchParams) ([]adzuna.Posting, error)
}

// Tracker lists and creates opportunities
type Tracker interface {
	ListOpportunities(ctx context.Context) ([]domain.Opportunity, error)
}

// Creator validates and creates an opportunity
type Creator interface {
	Create(ctx context.Context, in domain.OpportunityCreate) (domain.Opportunity, error)
}

// Request describes one discovery run
type Request struct {
	Query      string
	Location   string
	MaxDaysOld int
	Limit      int  // 0 means every result on the page
	DryRun     bool // report candidates without creating them
}

// Result reports what a run did
type Result struct {
	Created    []domain.Opportunity
	Candidates []domain.OpportunityCreate
	Skipped    int // already tracked or incomplete
}

// Service runs discovery
type Service struct {
	searcher Searcher
	tracker  Tracker
	creator  Creator
	logger   *logging.Logger
}

// NewService builds a discovery service
func NewService(searcher Searcher, tracker Tracker, creator Creator, logger *logging.Logger) (*Service, error) {
	if searcher == nil {
		return nil, fmt.Errorf("discovery: searcher is required")
	}
	if tracker == nil || creator == nil {
		return nil, fmt.Errorf("discovery: tracker and creator are required")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{searcher: searcher, tracker: tracker, creator: creator, logger: logger}, nil
}

// Run searches and creates an opportunity for every posting that is not
// tracked yet. Postings are matched on posting link, then on title and company.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return Result{}, &domain.ValidationError{Field: "query", Msg: "search query is required"}
	}

	postings, err := s.searcher.Search(ctx, req.Query, adzuna.SearchParams{
		Location:   req.Location,
		MaxDaysOld: req.MaxDaysOld,
	})
	if err != nil {
		return Result{}, fmt.Errorf("discover opportunities: %w", err)
	}

	existing, err := s.tracker.ListOpportunities(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("discover opportunities: %w", err)
	}
	seen := newIndex(existing)

	var res Result
	for _, p := range postings {
		if req.Limit > 0 && len(res.Candidates) >= req.Limit {
			break
		}

		in, ok := toCreate(p)
		if !ok || seen.has(in) {
			res.Skipped++
			continue
		}
		seen.add(in)
		res.Candidates = append(res.Candidates, in)
	}

	if req.DryRun {
		return res, nil
	}

	for _, in := range res.Candidates {
		opp, err := s.creator.Create(ctx, in)
		if err != nil {
			return res, err
		}
		res.Created = append(res.Created, opp)
	}

	s.logger.Info("discovery complete", "query", req.Query, "created", len(res.Created), "skipped", res.Skipped)
	return res, nil
}

func toCreate(p adzuna.Posting) (domain.OpportunityCreate, bool) {
	if p.Title == "" || p.Company == "" {
		return domain.OpportunityCreate{}, false
	}

	in := domain.OpportunityCreate{
		Title:   p.Title,
		Company: p.Company,
		Status:  domain.DefaultStatus,
	}
	if p.URL != "" {
		link := p.URL
		in.PostingLink = &link
	}
	if p.SalaryMin > 0 {
		v := p.SalaryMin
		in.MinSalary = &v
	}
	if p.SalaryMax > 0 {
		v := p.SalaryMax
		in.MaxSalary = &v
	}
	return in, true
}

type index struct {
	links map[string]struct{}
	names map[string]struct{}
}

func newIndex(opps []domain.Opportunity) *index {
	idx := &index{links: map[string]struct{}{}, names: map[string]struct{}{}}
	for _, o := range opps {
		idx.add(domain.OpportunityCreate{Title: o.Title, Company: o.Company, PostingLink: o.PostingLink})
	}
	return idx
}

func (i *index) add(in domain.OpportunityCreate) {
	if in.PostingLink != nil && *in.PostingLink != "" {
		i.links[*in.PostingLink] = struct{}{}
	}
	i.names[nameKey(in.Title, in.Company)] = struct{}{}
}

func (i *index) has(in domain.OpportunityCreate) bool {
	if in.PostingLink != nil {
		if _, ok := i.links[*in.PostingLink]; ok {
			return true
		}
	}
	_, ok := i.names[nameKey(in.Title, in.Company)]
	return ok
}

func nameKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(company))
}
