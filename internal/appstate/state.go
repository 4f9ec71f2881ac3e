// Package appstate is the explicit application-state container: the theme
// preference and the current profile version, loaded at startup and written
// back when they change.
package appstate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Theme is the terminal palette preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// VersionPolicy controls ProfileChanged
type VersionPolicy string

const (
	// PolicyFixed keeps the configured profile version.
	PolicyFixed VersionPolicy = "fixed"
	// PolicyLocalEdits bumps the version after every profile mutation made through this client.
	PolicyLocalEdits VersionPolicy = "local-edits"
)

type persisted struct {
	Theme          Theme `yaml:"theme"`
	ProfileVersion int   `yaml:"profile_version,omitempty"`
}

// ErrVersionFixed is returned when the version is set under the fixed policy
var ErrVersionFixed = errors.New("appstate: profile version is fixed by configuration (JOBFIT_PROFILE_VERSION)")

// State holds process-wide client state. Safe for concurrent use.
// Under local-edits the profile version follows the state file, so a bump
// made by another process is picked up on the next read.
type State struct {
	path   string
	policy VersionPolicy

	mu             sync.RWMutex
	theme          Theme
	profileVersion int
	seen           stamp // state file as last read or written
}

type stamp struct {
	mod  time.Time
	size int64
}

func stampOf(fi fs.FileInfo) stamp {
	return stamp{mod: fi.ModTime(), size: fi.Size()}
}

func (a stamp) same(b stamp) bool {
	return a.size == b.size && a.mod.Equal(b.mod)
}

// Load reads the state file at path. A missing file yields defaults.
// defaultVersion applies unless the policy is local-edits and the file recorded one.
func Load(path string, policy VersionPolicy, defaultVersion int) (*State, error) {
	if defaultVersion < 1 {
		defaultVersion = 1
	}
	s := &State{
		path:           path,
		policy:         policy,
		theme:          ThemeLight,
		profileVersion: defaultVersion,
	}
	if path == "" {
		return s, nil
	}

	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("appstate: stat %s: %w", path, err)
	}

	p, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if p.Theme == ThemeDark || p.Theme == ThemeLight {
		s.theme = p.Theme
	}
	if policy == PolicyLocalEdits && p.ProfileVersion > 0 {
		s.profileVersion = p.ProfileVersion
	}
	s.seen = stampOf(fi)

	return s, nil
}

func readFile(path string) (persisted, error) {
	var p persisted
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("appstate: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("appstate: parse %s: %w", path, err)
	}
	return p, nil
}

// syncVersionLocked re-reads the version when the file changed since it was
// last seen. A file that cannot be read keeps the last known version.
func (s *State) syncVersionLocked() {
	if s.policy != PolicyLocalEdits || s.path == "" {
		return
	}

	fi, err := os.Stat(s.path)
	if err != nil || stampOf(fi).same(s.seen) {
		return
	}
	p, err := readFile(s.path)
	if err != nil {
		return
	}
	if p.ProfileVersion > 0 {
		s.profileVersion = p.ProfileVersion
	}
	s.seen = stampOf(fi)
}

// Theme returns the current theme
func (s *State) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips the theme and persists it
func (s *State) ToggleTheme() (Theme, error) {
	s.mu.Lock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	t := s.theme
	s.syncVersionLocked()
	err := s.saveLocked()
	s.mu.Unlock()

	return t, err
}

// ProfileVersion returns the live profile version that assessments are compared against
func (s *State) ProfileVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncVersionLocked()
	return s.profileVersion
}

// SetProfileVersion overrides and persists the profile version. Only the
// local-edits policy tracks a version of its own; under fixed it returns
// ErrVersionFixed.
func (s *State) SetProfileVersion(v int) error {
	if s.policy != PolicyLocalEdits {
		return ErrVersionFixed
	}
	if v < 1 {
		return fmt.Errorf("appstate: profile version must be positive, got %d", v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileVersion = v
	return s.saveLocked()
}

// ProfileChanged records a successful profile mutation
func (s *State) ProfileChanged() error {
	if s.policy != PolicyLocalEdits {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncVersionLocked()
	s.profileVersion++
	return s.saveLocked()
}

func (s *State) saveLocked() error {
	if s.path == "" {
		return nil
	}

	p := persisted{Theme: s.theme}
	if s.policy == PolicyLocalEdits {
		p.ProfileVersion = s.profileVersion
	}

	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("appstate: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("appstate: create dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("appstate: write %s: %w", s.path, err)
	}
	if fi, err := os.Stat(s.path); err == nil {
		s.seen = stampOf(fi)
	}
	return nil
}
