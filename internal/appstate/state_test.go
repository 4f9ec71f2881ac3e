package appstate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"), PolicyFixed, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Theme() != ThemeLight {
		t.Errorf("theme = %s", s.Theme())
	}
	if s.ProfileVersion() != 3 {
		t.Errorf("version = %d", s.ProfileVersion())
	}
}

func TestToggleThemePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	s, err := Load(path, PolicyFixed, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	theme, err := s.ToggleTheme()
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if theme != ThemeDark {
		t.Fatalf("theme = %s", theme)
	}

	reloaded, err := Load(path, PolicyFixed, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Theme() != ThemeDark {
		t.Errorf("persisted theme = %s", reloaded.Theme())
	}

	if theme, _ = reloaded.ToggleTheme(); theme != ThemeLight {
		t.Errorf("second toggle = %s", theme)
	}
}

func TestProfileChangedFixedPolicy(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"), PolicyFixed, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.ProfileChanged(); err != nil {
		t.Fatalf("ProfileChanged: %v", err)
	}
	if s.ProfileVersion() != 2 {
		t.Errorf("fixed policy moved the version to %d", s.ProfileVersion())
	}
}

func TestProfileChangedLocalEditsPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.ProfileChanged(); err != nil {
			t.Fatalf("ProfileChanged: %v", err)
		}
	}
	if s.ProfileVersion() != 3 {
		t.Fatalf("version = %d, want 3", s.ProfileVersion())
	}

	reloaded, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ProfileVersion() != 3 {
		t.Errorf("persisted version = %d, want 3", reloaded.ProfileVersion())
	}

	// Switching back to the fixed policy ignores the recorded version.
	fixed, err := Load(path, PolicyFixed, 1)
	if err != nil {
		t.Fatalf("reload fixed: %v", err)
	}
	if fixed.ProfileVersion() != 1 {
		t.Errorf("fixed policy version = %d, want 1", fixed.ProfileVersion())
	}
}

func TestSetProfileVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.SetProfileVersion(0); err == nil {
		t.Errorf("expected error for non-positive version")
	}
	if err := s.SetProfileVersion(4); err != nil {
		t.Fatalf("SetProfileVersion: %v", err)
	}

	reloaded, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ProfileVersion() != 4 {
		t.Errorf("persisted version = %d, want 4", reloaded.ProfileVersion())
	}
}

func TestSetProfileVersionRejectedWhenFixed(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"), PolicyFixed, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := s.SetProfileVersion(5); !errors.Is(err, ErrVersionFixed) {
		t.Fatalf("SetProfileVersion() = %v, want ErrVersionFixed", err)
	}
	if s.ProfileVersion() != 2 {
		t.Errorf("version = %d, want 2", s.ProfileVersion())
	}
}

func TestProfileVersionFollowsOtherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	server, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("Load server: %v", err)
	}
	if server.ProfileVersion() != 1 {
		t.Fatalf("initial version = %d", server.ProfileVersion())
	}

	cli, err := Load(path, PolicyLocalEdits, 1)
	if err != nil {
		t.Fatalf("Load cli: %v", err)
	}
	if err := cli.ProfileChanged(); err != nil {
		t.Fatalf("ProfileChanged: %v", err)
	}
	// make the change visible regardless of file system timestamp granularity
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if got := server.ProfileVersion(); got != 2 {
		t.Errorf("long-running reader version = %d, want 2", got)
	}

	// a bump from the reader builds on the version it picked up
	if err := server.ProfileChanged(); err != nil {
		t.Fatalf("ProfileChanged: %v", err)
	}
	if got := server.ProfileVersion(); got != 3 {
		t.Errorf("version after own bump = %d, want 3", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path, PolicyFixed, 1)
	if err == nil || !strings.Contains(err.Error(), "appstate") {
		t.Errorf("expected appstate error, got %v", err)
	}
}
