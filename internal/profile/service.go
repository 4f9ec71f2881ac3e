package profile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/honeycarbs/jobfit/internal/domain"
	"github.com/honeycarbs/jobfit/pkg/logging"
	"github.com/honeycarbs/jobfit/pkg/tracker"
)

// API is the subset of the tracker backend used for the profile
type API interface {
	GetProfile(ctx context.Context) (domain.Profile, error)
	CreateProfileEntry(ctx context.Context, in domain.ProfileEntryCreate) (domain.ProfileEntry, error)
	UpdateProfileEntry(ctx context.Context, id string, in domain.ProfileEntryCreate) (domain.ProfileEntry, error)
	DeleteProfileEntry(ctx context.Context, id string) error
	GenerateProfile(ctx context.Context, in tracker.ProfileGenerationRequest) (domain.ProfileGeneration, error)
}

// ChangeRecorder is told about every successful profile mutation
type ChangeRecorder interface {
	ProfileChanged() error
}

// GenerateInput names the material a profile is generated from
type GenerateInput struct {
	FilePaths   []string
	Links       []string
	Description string
}

// Service manages profile entries
type Service struct {
	api     API
	changes ChangeRecorder
	logger  *logging.Logger
}

// NewService creates a profile service
func NewService(api API, changes ChangeRecorder, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{api: api, changes: changes, logger: logger}
}

// Get returns all profile entries
func (s *Service) Get(ctx context.Context) (domain.Profile, error) {
	p, err := s.api.GetProfile(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// AddEntry validates, normalizes and creates an entry
func (s *Service) AddEntry(ctx context.Context, in domain.ProfileEntryCreate) (domain.ProfileEntry, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.ProfileEntry{}, err
	}

	entry, err := s.api.CreateProfileEntry(ctx, in)
	if err != nil {
		return domain.ProfileEntry{}, fmt.Errorf("create profile entry: %w", err)
	}

	s.recordChange("created", entry.ID)
	return entry, nil
}

// UpdateEntry replaces an entry
func (s *Service) UpdateEntry(ctx context.Context, id string, in domain.ProfileEntryCreate) (domain.ProfileEntry, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ProfileEntry{}, &domain.ValidationError{Field: "id", Msg: "entry id is required"}
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return domain.ProfileEntry{}, err
	}

	entry, err := s.api.UpdateProfileEntry(ctx, id, in)
	if err != nil {
		return domain.ProfileEntry{}, fmt.Errorf("update profile entry %s: %w", id, err)
	}

	s.recordChange("updated", id)
	return entry, nil
}

// DeleteEntry removes an entry
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &domain.ValidationError{Field: "id", Msg: "entry id is required"}
	}

	if err := s.api.DeleteProfileEntry(ctx, id); err != nil {
		return fmt.Errorf("delete profile entry %s: %w", id, err)
	}

	s.recordChange("deleted", id)
	return nil
}

// Generate builds profile entries from files and links. At least one file or
// non-blank link is required; nothing is sent otherwise.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (domain.ProfileGeneration, error) {
	links := make([]string, 0, len(in.Links))
	for _, l := range in.Links {
		if l = strings.TrimSpace(l); l != "" {
			links = append(links, l)
		}
	}

	if len(in.FilePaths) == 0 && len(links) == 0 {
		return domain.ProfileGeneration{}, &domain.ValidationError{Field: "files", Msg: "add at least one file or link"}
	}

	files := make([]tracker.UploadFile, 0, len(in.FilePaths))
	for _, p := range in.FilePaths {
		content, err := os.ReadFile(p)
		if err != nil {
			return domain.ProfileGeneration{}, &domain.ValidationError{Field: "files", Msg: fmt.Sprintf("cannot read %s: %v", p, err)}
		}
		files = append(files, tracker.UploadFile{Name: filepath.Base(p), Content: content})
	}

	out, err := s.api.GenerateProfile(ctx, tracker.ProfileGenerationRequest{
		Files:       files,
		Links:       links,
		Description: in.Description,
	})
	if err != nil {
		return domain.ProfileGeneration{}, fmt.Errorf("generate profile: %w", err)
	}

	s.recordChange("generated", "")
	s.logger.Info("profile generated", "entries", len(out.Entries))
	return out, nil
}

func (s *Service) recordChange(action, id string) {
	s.logger.Debug("profile changed", "action", action, "entry_id", id)
	if s.changes == nil {
		return
	}
	if err := s.changes.ProfileChanged(); err != nil {
		s.logger.Warn("failed to record profile change", "err", err)
	}
}
