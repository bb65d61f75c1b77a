package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a jobwire run. Loaded once at
// startup and immutable after; the pipeline never reads the environment.
type Config struct {
	ResumeText string
	Oracle     OracleConfig
	Sources    SourcesConfig
	Filter     FilterConfig
	Store      StoreConfig
	Digest     DigestConfig
}

// OracleConfig targets the OpenAI-compatible generation backend.
type OracleConfig struct {
	BaseURL      string        // defaults to the Groq endpoint
	APIKey       string        // expanded from env var by Load
	ProfileModel string        // resume-analysis model
	MatchModel   string        // per-posting enrichment model
	Timeout      time.Duration // per-request timeout
	Pace         time.Duration // gap between enrichment requests
	FailurePace  time.Duration // longer gap after a dropped posting
}

// SourcesConfig selects listing providers and the recency window.
type SourcesConfig struct {
	Enabled  []string      // subset of: remoteok, arbeitnow, themuse
	Lookback time.Duration // postings older than this never enter the pipeline
}

// FilterConfig holds the relevance and geography policy settings.
type FilterConfig struct {
	RemoteOnly     bool
	GeoPolicy      string   // "deny" (default) or "allow"
	GeoKeywords    []string // overrides the built-in keyword list when set
	SkillThreshold int
	MaxPostings    int
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Type            string // "sqlite" (default), "sheets", or "none"
	Path            string // sqlite db path
	SheetID         string // sheets spreadsheet id
	CredentialsJSON string // sheets service-account JSON, expanded from env
}

// SheetURL returns the browsable link to the spreadsheet, empty for other
// backends.
func (s StoreConfig) SheetURL() string {
	if s.Type != "sheets" || s.SheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + s.SheetID
}

// DigestConfig selects the report sink.
type DigestConfig struct {
	Type     string // "log" (default) or "email"
	SMTPHost string
	SMTPPort int
	From     string
	To       string
	Password string
}

const (
	defaultOracleBaseURL = "https://api.groq.com/openai/v1"
	defaultProfileModel  = "llama-3.1-8b-instant"
	defaultMatchModel    = "llama-3.3-70b-versatile"
)

var knownSources = map[string]bool{"remoteok": true, "arbeitnow": true, "themuse": true}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings).
type rawConfig struct {
	Resume  rawResumeConfig  `yaml:"resume"`
	Oracle  rawOracleConfig  `yaml:"oracle"`
	Sources rawSourcesConfig `yaml:"sources"`
	Filter  rawFilterConfig  `yaml:"filter"`
	Store   rawStoreConfig   `yaml:"store"`
	Digest  rawDigestConfig  `yaml:"digest"`
}

type rawResumeConfig struct {
	Text string `yaml:"text"`
	File string `yaml:"file"`
}

type rawOracleConfig struct {
	BaseURL      string `yaml:"base_url"`
	APIKey       string `yaml:"api_key"`
	ProfileModel string `yaml:"profile_model"`
	MatchModel   string `yaml:"match_model"`
	Timeout      string `yaml:"timeout"`
	Pace         string `yaml:"pace"`
	FailurePace  string `yaml:"failure_pace"`
}

type rawSourcesConfig struct {
	Enabled  []string `yaml:"enabled"`
	Lookback string   `yaml:"lookback"`
}

type rawFilterConfig struct {
	RemoteOnly     bool     `yaml:"remote_only"`
	GeoPolicy      string   `yaml:"geo_policy"`
	GeoKeywords    []string `yaml:"geo_keywords"`
	SkillThreshold int      `yaml:"skill_threshold"`
	MaxPostings    int      `yaml:"max_postings"`
}

type rawStoreConfig struct {
	Type            string `yaml:"type"`
	Path            string `yaml:"path"`
	SheetID         string `yaml:"sheet_id"`
	CredentialsJSON string `yaml:"credentials_json"`
}

type rawDigestConfig struct {
	Type     string `yaml:"type"`
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Password string `yaml:"password"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, applies defaults, validates, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables so secrets stay out of the file.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	resumeText := raw.Resume.Text
	if resumeText == "" && raw.Resume.File != "" {
		fileData, err := os.ReadFile(raw.Resume.File)
		if err != nil {
			return nil, fmt.Errorf("read resume file: %w", err)
		}
		resumeText = string(fileData)
	}

	timeout, err := durationOr(raw.Oracle.Timeout, 45*time.Second, "oracle.timeout")
	if err != nil {
		return nil, err
	}
	pace, err := durationOr(raw.Oracle.Pace, 1500*time.Millisecond, "oracle.pace")
	if err != nil {
		return nil, err
	}
	failurePace, err := durationOr(raw.Oracle.FailurePace, 3*time.Second, "oracle.failure_pace")
	if err != nil {
		return nil, err
	}
	lookback, err := durationOr(raw.Sources.Lookback, 24*time.Hour, "sources.lookback")
	if err != nil {
		return nil, err
	}

	sources := raw.Sources.Enabled
	if len(sources) == 0 {
		sources = []string{"remoteok", "arbeitnow", "themuse"}
	}

	cfg := &Config{
		ResumeText: resumeText,
		Oracle: OracleConfig{
			BaseURL:      stringOr(raw.Oracle.BaseURL, defaultOracleBaseURL),
			APIKey:       raw.Oracle.APIKey,
			ProfileModel: stringOr(raw.Oracle.ProfileModel, defaultProfileModel),
			MatchModel:   stringOr(raw.Oracle.MatchModel, defaultMatchModel),
			Timeout:      timeout,
			Pace:         pace,
			FailurePace:  failurePace,
		},
		Sources: SourcesConfig{
			Enabled:  sources,
			Lookback: lookback,
		},
		Filter: FilterConfig{
			RemoteOnly:     raw.Filter.RemoteOnly,
			GeoPolicy:      stringOr(raw.Filter.GeoPolicy, "deny"),
			GeoKeywords:    raw.Filter.GeoKeywords,
			SkillThreshold: raw.Filter.SkillThreshold,
			MaxPostings:    raw.Filter.MaxPostings,
		},
		Store: StoreConfig{
			Type:            stringOr(raw.Store.Type, "sqlite"),
			Path:            stringOr(raw.Store.Path, "jobwire.db"),
			SheetID:         raw.Store.SheetID,
			CredentialsJSON: raw.Store.CredentialsJSON,
		},
		Digest: DigestConfig{
			Type:     stringOr(raw.Digest.Type, "log"),
			SMTPHost: raw.Digest.SMTPHost,
			SMTPPort: raw.Digest.SMTPPort,
			From:     raw.Digest.From,
			To:       raw.Digest.To,
			Password: raw.Digest.Password,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the fatal-at-startup class of configuration failures.
// Everything here aborts the run before any network activity.
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ResumeText) == "" {
		return fmt.Errorf("resume.text or resume.file is required")
	}

	if cfg.Oracle.APIKey == "" {
		return fmt.Errorf("oracle.api_key is required")
	}

	if cfg.Sources.Lookback <= 0 || cfg.Sources.Lookback > 48*time.Hour {
		return fmt.Errorf("sources.lookback must be between 0 and 48h, got %v", cfg.Sources.Lookback)
	}
	for _, s := range cfg.Sources.Enabled {
		if !knownSources[s] {
			return fmt.Errorf("unknown source %q (known: remoteok, arbeitnow, themuse)", s)
		}
	}

	switch cfg.Filter.GeoPolicy {
	case "deny", "allow":
	default:
		return fmt.Errorf("filter.geo_policy must be \"deny\" or \"allow\", got %q", cfg.Filter.GeoPolicy)
	}

	switch cfg.Store.Type {
	case "sqlite", "none":
	case "sheets":
		if cfg.Store.SheetID == "" {
			return fmt.Errorf("store.sheet_id is required when store.type is \"sheets\"")
		}
		if cfg.Store.CredentialsJSON == "" {
			return fmt.Errorf("store.credentials_json is required when store.type is \"sheets\"")
		}
	default:
		return fmt.Errorf("store.type must be \"sqlite\", \"sheets\", or \"none\", got %q", cfg.Store.Type)
	}

	switch cfg.Digest.Type {
	case "log":
	case "email":
		if cfg.Digest.SMTPHost == "" || cfg.Digest.SMTPPort == 0 {
			return fmt.Errorf("digest.smtp_host and digest.smtp_port are required when type is \"email\"")
		}
		if cfg.Digest.From == "" || cfg.Digest.To == "" {
			return fmt.Errorf("digest.from and digest.to are required when type is \"email\"")
		}
		if cfg.Digest.Password == "" {
			return fmt.Errorf("digest.password is required when type is \"email\"")
		}
	default:
		return fmt.Errorf("digest.type must be \"log\" or \"email\", got %q", cfg.Digest.Type)
	}

	return nil
}

func durationOr(raw string, fallback time.Duration, field string) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d, nil
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
