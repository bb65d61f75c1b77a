package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
resume:
  text: "Senior Backend Engineer with Go experience"
oracle:
  api_key: "test-key"
`

func TestLoad_MinimalAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Oracle.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("unexpected base url: %s", cfg.Oracle.BaseURL)
	}
	if cfg.Oracle.ProfileModel != "llama-3.1-8b-instant" {
		t.Errorf("unexpected profile model: %s", cfg.Oracle.ProfileModel)
	}
	if cfg.Oracle.MatchModel != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected match model: %s", cfg.Oracle.MatchModel)
	}
	if cfg.Oracle.Timeout != 45*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Oracle.Timeout)
	}
	if cfg.Oracle.Pace != 1500*time.Millisecond {
		t.Errorf("unexpected pace: %v", cfg.Oracle.Pace)
	}
	if cfg.Oracle.FailurePace != 3*time.Second {
		t.Errorf("unexpected failure pace: %v", cfg.Oracle.FailurePace)
	}
	if cfg.Sources.Lookback != 24*time.Hour {
		t.Errorf("unexpected lookback: %v", cfg.Sources.Lookback)
	}
	if len(cfg.Sources.Enabled) != 3 {
		t.Errorf("expected all sources enabled by default, got %v", cfg.Sources.Enabled)
	}
	if cfg.Filter.GeoPolicy != "deny" {
		t.Errorf("expected deny policy default, got %s", cfg.Filter.GeoPolicy)
	}
	if cfg.Store.Type != "sqlite" || cfg.Store.Path != "jobwire.db" {
		t.Errorf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Digest.Type != "log" {
		t.Errorf("expected log digest default, got %s", cfg.Digest.Type)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("JOBWIRE_TEST_KEY", "secret-from-env")
	cfg, err := Load(writeConfig(t, `
resume:
  text: "resume"
oracle:
  api_key: "${JOBWIRE_TEST_KEY}"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Oracle.APIKey != "secret-from-env" {
		t.Errorf("expected env expansion, got %q", cfg.Oracle.APIKey)
	}
}

func TestLoad_ResumeFromFile(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resumePath, []byte("resume from file"), 0o644); err != nil {
		t.Fatalf("write resume: %v", err)
	}

	cfg, err := Load(writeConfig(t, `
resume:
  file: "`+resumePath+`"
oracle:
  api_key: "k"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ResumeText != "resume from file" {
		t.Errorf("expected resume loaded from file, got %q", cfg.ResumeText)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing resume",
			yaml:    "oracle:\n  api_key: k\n",
			wantErr: "resume",
		},
		{
			name:    "missing api key",
			yaml:    "resume:\n  text: r\n",
			wantErr: "api_key",
		},
		{
			name:    "lookback too long",
			yaml:    minimalConfig + "sources:\n  lookback: 72h\n",
			wantErr: "lookback",
		},
		{
			name:    "unknown source",
			yaml:    minimalConfig + "sources:\n  enabled: [linkedin]\n",
			wantErr: "unknown source",
		},
		{
			name:    "bad geo policy",
			yaml:    minimalConfig + "filter:\n  geo_policy: maybe\n",
			wantErr: "geo_policy",
		},
		{
			name:    "sheets without sheet id",
			yaml:    minimalConfig + "store:\n  type: sheets\n",
			wantErr: "sheet_id",
		},
		{
			name:    "sheets without credentials",
			yaml:    minimalConfig + "store:\n  type: sheets\n  sheet_id: abc\n",
			wantErr: "credentials_json",
		},
		{
			name:    "unknown store type",
			yaml:    minimalConfig + "store:\n  type: redis\n",
			wantErr: "store.type",
		},
		{
			name:    "email without smtp host",
			yaml:    minimalConfig + "digest:\n  type: email\n",
			wantErr: "smtp_host",
		},
		{
			name:    "email without password",
			yaml:    minimalConfig + "digest:\n  type: email\n  smtp_host: h\n  smtp_port: 465\n  from: f\n  to: t\n",
			wantErr: "password",
		},
		{
			name:    "unknown digest type",
			yaml:    minimalConfig + "digest:\n  type: pigeon\n",
			wantErr: "digest.type",
		},
		{
			name:    "bad duration",
			yaml:    minimalConfig + "sources:\n  lookback: yesterday\n",
			wantErr: "lookback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_ValidSheetsAndEmail(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
store:
  type: sheets
  sheet_id: "sheet-123"
  credentials_json: '{"type": "service_account"}'
digest:
  type: email
  smtp_host: smtp.gmail.com
  smtp_port: 465
  from: me@example.com
  to: me@example.com
  password: app-password
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.SheetURL() != "https://docs.google.com/spreadsheets/d/sheet-123" {
		t.Errorf("unexpected sheet url: %s", cfg.Store.SheetURL())
	}
	if cfg.Digest.SMTPPort != 465 {
		t.Errorf("unexpected smtp port: %d", cfg.Digest.SMTPPort)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSheetURL_EmptyForNonSheets(t *testing.T) {
	s := StoreConfig{Type: "sqlite", SheetID: "abc"}
	if got := s.SheetURL(); got != "" {
		t.Errorf("expected empty url for sqlite store, got %q", got)
	}
}
