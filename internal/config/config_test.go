package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "MCP_HOST", "PORT",
		"JOBFIT_API_BASE_URL", "JOBFIT_TIMEOUT", "JOBFIT_PROFILE_ID", "JOBFIT_PROFILE_VERSION",
		"JOBFIT_VERSION_POLICY", "JOBFIT_STATE_FILE", "REDIS_URL",
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "GOOGLE_SHEETS_CREDENTIALS_PATH",
		"ADZUNA_APP_ID", "ADZUNA_APP_KEY", "ADZUNA_COUNTRY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBFIT_STATE_FILE", "/tmp/jobfit-state.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 60*time.Second {
		t.Errorf("Timeout = %s", cfg.API.Timeout)
	}
	if cfg.Profile.ID != 1 || cfg.Profile.Version != 1 || cfg.Profile.VersionPolicy != VersionPolicyFixed {
		t.Errorf("unexpected profile config %+v", cfg.Profile)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != "8080" {
		t.Errorf("listen = %s:%s", cfg.Host, cfg.Port)
	}
	if cfg.Neo4jConfigured() {
		t.Errorf("neo4j reported configured without env")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBFIT_API_BASE_URL", "https://tracker.example/")
	t.Setenv("JOBFIT_TIMEOUT", "15s")
	t.Setenv("JOBFIT_PROFILE_ID", "4")
	t.Setenv("JOBFIT_PROFILE_VERSION", "3")
	t.Setenv("JOBFIT_VERSION_POLICY", "local-edits")
	t.Setenv("NEO4J_URI", "neo4j://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != "https://tracker.example" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("Timeout = %s", cfg.API.Timeout)
	}
	if cfg.Profile.ID != 4 || cfg.Profile.Version != 3 || cfg.Profile.VersionPolicy != VersionPolicyLocalEdits {
		t.Errorf("unexpected profile config %+v", cfg.Profile)
	}
	if !cfg.Neo4jConfigured() {
		t.Errorf("neo4j not reported configured")
	}
}

func TestLoadAggregatesProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("JOBFIT_TIMEOUT", "soon")
	t.Setenv("JOBFIT_PROFILE_VERSION", "0")
	t.Setenv("JOBFIT_VERSION_POLICY", "sometimes")
	t.Setenv("ADZUNA_APP_ID", "only-id")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}

	for _, want := range []string{"JOBFIT_TIMEOUT", "JOBFIT_PROFILE_VERSION", "JOBFIT_VERSION_POLICY", "ADZUNA_APP_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
