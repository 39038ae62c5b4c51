// Package config resolves the console configuration from three layers:
// built-in defaults, an optional YAML file, and environment variables
// (highest precedence). The merged result is validated against an
// embedded CUE schema before any command runs, so a bad config fails
// loudly up front instead of as a confusing request error later.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Environment variable names.
const (
	EnvBaseURL         = "HRC_API_BASE_URL"
	EnvCredentialsPath = "HRC_CREDENTIALS_PATH"
	EnvRequestTimeout  = "HRC_REQUEST_TIMEOUT"
)

// DefaultBaseURL is the local development backend address used when
// nothing else is configured.
const DefaultBaseURL = "http://localhost:8000/api"

const defaultTimeout = "30s"

// Config is the resolved console configuration.
type Config struct {
	APIBaseURL      string `yaml:"api_base_url"`
	CredentialsPath string `yaml:"credentials_path"`
	RequestTimeout  string `yaml:"request_timeout"`
}

// Timeout parses RequestTimeout. Load only returns configs whose timeout
// parses, so this cannot fail on a loaded Config.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// DefaultPath returns the conventional config file location
// (~/.config/hrc/config.yaml or the platform equivalent). An empty
// string means no user config dir is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hrc", "config.yaml")
}

// defaultCredentialsPath is the conventional credential database location.
func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "credentials.db"
	}
	return filepath.Join(dir, "hrc", "credentials.db")
}

// Load resolves the configuration. path points at a YAML config file; an
// empty path falls back to DefaultPath, where a missing file is fine and
// defaults plus environment still apply. A missing file at an explicit
// path is an error. A `.env` file in the working directory is honored
// when present.
func Load(path string) (Config, error) {
	// Optional .env; a missing file is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:      DefaultBaseURL,
		CredentialsPath: defaultCredentialsPath(),
		RequestTimeout:  defaultTimeout,
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No user config file; keep defaults.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvCredentialsPath); v != "" {
		cfg.CredentialsPath = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		cfg.RequestTimeout = v
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate unifies the resolved config with the embedded CUE schema.
func validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("config schema missing #Config: %w", err)
	}

	val := ctx.Encode(map[string]any{
		"api_base_url":     cfg.APIBaseURL,
		"credentials_path": cfg.CredentialsPath,
		"request_timeout":  cfg.RequestTimeout,
	})

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
