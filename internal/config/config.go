package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version policies decide how the current profile version moves
const (
	VersionPolicyFixed      = "fixed"
	VersionPolicyLocalEdits = "local-edits"
)

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	API      struct {
		BaseURL string
		Timeout time.Duration
	} // tracker backend
	Profile struct {
		ID            int64
		Version       int
		VersionPolicy string
	}
	StateFile string // local preferences (theme, tracked profile version)
	RedisURL  string // optional; enables change events
	Neo4j     struct {
		URI      string
		Username string
		Password string
	} // optional; enables graph export
	SheetsCredsPath string // optional; enables sheets export
	Adzuna          struct {
		AppID   string
		AppKey  string
		Country string
	} // optional; enables discovery
}

// Load populates config from environment variables, reading a .env file first if present
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.API.BaseURL = "http://localhost:8000"
	cfg.API.Timeout = 60 * time.Second
	cfg.Profile.ID = 1
	cfg.Profile.Version = 1
	cfg.Profile.VersionPolicy = VersionPolicyFixed

	var problems []string

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("MCP_HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("JOBFIT_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = strings.TrimSuffix(v, "/")
	}

	if v := os.Getenv("JOBFIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Sprintf("JOBFIT_TIMEOUT must be a positive duration, got %q", v))
		} else {
			cfg.API.Timeout = d
		}
	}

	if v := os.Getenv("JOBFIT_PROFILE_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 1 {
			problems = append(problems, fmt.Sprintf("JOBFIT_PROFILE_ID must be a positive integer, got %q", v))
		} else {
			cfg.Profile.ID = id
		}
	}

	if v := os.Getenv("JOBFIT_PROFILE_VERSION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			problems = append(problems, fmt.Sprintf("JOBFIT_PROFILE_VERSION must be a positive integer, got %q", v))
		} else {
			cfg.Profile.Version = n
		}
	}

	if v := os.Getenv("JOBFIT_VERSION_POLICY"); v != "" {
		switch v {
		case VersionPolicyFixed, VersionPolicyLocalEdits:
			cfg.Profile.VersionPolicy = v
		default:
			problems = append(problems, fmt.Sprintf("JOBFIT_VERSION_POLICY must be %q or %q, got %q", VersionPolicyFixed, VersionPolicyLocalEdits, v))
		}
	}

	cfg.StateFile = os.Getenv("JOBFIT_STATE_FILE")
	if cfg.StateFile == "" {
		cfg.StateFile = defaultStateFile()
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.SheetsCredsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.Country = os.Getenv("ADZUNA_COUNTRY")
	if (cfg.Adzuna.AppID == "") != (cfg.Adzuna.AppKey == "") {
		problems = append(problems, "ADZUNA_APP_ID and ADZUNA_APP_KEY must be set together")
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Neo4jConfigured reports whether every Neo4j variable is set
func (c Config) Neo4jConfigured() bool {
	return c.Neo4j.URI != "" && c.Neo4j.Username != "" && c.Neo4j.Password != ""
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".jobfit-state.yaml"
	}
	return filepath.Join(dir, "jobfit", "state.yaml")
}
