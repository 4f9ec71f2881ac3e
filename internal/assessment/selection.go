package assessment

import (
	"sync"

	"github.com/honeycarbs/jobfit/internal/domain"
)

// View is what the drawer renders
type View struct {
	OpportunityID domain.OpportunityID
	Assessment    domain.JobAssessment
}

// Selection tracks which opportunity's assessment is open in the drawer.
// It keeps only the key; the record is re-read from the store on every View,
// so regenerations show up without re-opening.
type Selection struct {
	store *Store

	mu   sync.Mutex
	open bool
	key  domain.OpportunityID
}

// NewSelection creates a closed selection over store
func NewSelection(store *Store) *Selection {
	return &Selection{store: store}
}

// Open selects the opportunity. Its assessment must already be in the store.
func (s *Selection) Open(id domain.OpportunityID) error {
	e, ok := s.store.Lookup(id)
	if !ok || !e.Present() {
		return ErrNoAssessment
	}

	s.mu.Lock()
	s.open = true
	s.key = id
	s.mu.Unlock()
	return nil
}

// Close returns to the closed state
func (s *Selection) Close() {
	s.mu.Lock()
	s.open = false
	s.key = 0
	s.mu.Unlock()
}

// Selected returns the open key, if any
func (s *Selection) Selected() (domain.OpportunityID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.open
}

// View returns the live record for the open key. If the key no longer has an
// assessment (evicted) the selection closes.
func (s *Selection) View() (View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return View{}, false
	}

	e, ok := s.store.Lookup(s.key)
	if !ok || !e.Present() {
		s.open = false
		s.key = 0
		return View{}, false
	}

	return View{OpportunityID: s.key, Assessment: *e.Assessment()}, true
}
