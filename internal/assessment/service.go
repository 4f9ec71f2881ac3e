package assessment

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// RecordAPI covers the assessment endpoints that are not cached per opportunity
type RecordAPI interface {
	ListProfileAssessments(ctx context.Context, profileID int64) ([]domain.JobAssessment, error)
	DeleteAssessment(ctx context.Context, assessmentID int64) error
}

// Service wraps the store with the remaining assessment operations
type Service struct {
	store *Store
	api   RecordAPI
}

// NewService creates an assessment service
func NewService(store *Store, api RecordAPI) *Service {
	return &Service{store: store, api: api}
}

// Store exposes the underlying store
func (s *Service) Store() *Store {
	return s.store
}

// ListForProfile returns every assessment computed against a profile
func (s *Service) ListForProfile(ctx context.Context, profileID int64) ([]domain.JobAssessment, error) {
	out, err := s.api.ListProfileAssessments(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("list assessments for profile %d: %w", profileID, err)
	}
	return out, nil
}

// Delete removes the assessment of an opportunity on the backend and drops it from the store
func (s *Service) Delete(ctx context.Context, opportunityID domain.OpportunityID) error {
	e, err := s.store.EnsureLoaded(ctx, opportunityID)
	if err != nil {
		return err
	}
	a := e.Assessment()
	if a == nil {
		return ErrNoAssessment
	}

	if err := s.api.DeleteAssessment(ctx, a.ID); err != nil {
		return fmt.Errorf("delete assessment %d: %w", a.ID, err)
	}

	s.store.Evict(opportunityID)
	return nil
}
