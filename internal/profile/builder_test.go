package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmehra/jobwire/internal/oracle"
)

type stubProvider struct {
	response string
	err      error
	got      oracle.ChatRequest
}

func (s *stubProvider) Complete(ctx context.Context, cr oracle.ChatRequest) (string, error) {
	s.got = cr
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestBuilder_Build_Success(t *testing.T) {
	stub := &stubProvider{response: `{
		"name": "Dana Mehra",
		"email": "dana@example.com",
		"location": "Austin, TX",
		"years_experience": 7.5,
		"current_title": "Senior Backend Engineer",
		"skills": ["Go", "Kubernetes", "PostgreSQL"],
		"industries": ["fintech"],
		"seniority_level": "senior",
		"target_roles": ["Backend Engineer", "Platform Engineer"],
		"key_achievements": ["cut p99 latency 40%"]
	}`}

	b := NewBuilder(stub, "llama-3.1-8b-instant")

	profile, err := b.Build(context.Background(), "resume text here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Dana Mehra" {
		t.Errorf("expected name parsed, got %q", profile.Name)
	}
	if profile.YearsExperience != 7.5 {
		t.Errorf("expected 7.5 years, got %v", profile.YearsExperience)
	}
	if profile.Seniority != "senior" {
		t.Errorf("expected seniority senior, got %q", profile.Seniority)
	}
	if len(profile.TargetRoles) != 2 || profile.TargetRoles[0] != "Backend Engineer" {
		t.Errorf("unexpected target roles: %v", profile.TargetRoles)
	}
	if profile.ResumeText != "resume text here" {
		t.Errorf("expected raw resume retained, got %q", profile.ResumeText)
	}

	if stub.got.Model != "llama-3.1-8b-instant" {
		t.Errorf("expected profile model, got %s", stub.got.Model)
	}
	if stub.got.Temperature != 0.1 || stub.got.MaxTokens != 1200 {
		t.Errorf("unexpected sampling params: temp=%v max=%d", stub.got.Temperature, stub.got.MaxTokens)
	}
	if stub.got.System != oracle.ResumeAnalysisSystemPrompt {
		t.Errorf("unexpected system prompt: %q", stub.got.System)
	}
	if !strings.Contains(stub.got.User, "resume text here") {
		t.Error("expected resume embedded in prompt")
	}
}

func TestBuilder_Build_CapsSkills(t *testing.T) {
	var skills []string
	for i := 0; i < 20; i++ {
		skills = append(skills, `"skill"`)
	}
	stub := &stubProvider{response: `{"skills": [` + strings.Join(skills, ",") + `]}`}

	b := NewBuilder(stub, "m")

	profile, err := b.Build(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile.Skills) != 15 {
		t.Errorf("expected skills capped at 15, got %d", len(profile.Skills))
	}
}

func TestBuilder_Build_ProviderError(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	b := NewBuilder(stub, "m")

	if _, err := b.Build(context.Background(), "resume"); err == nil {
		t.Fatal("expected provider error surfaced")
	}
}

func TestBuilder_Build_BadJSON(t *testing.T) {
	stub := &stubProvider{response: "not json"}
	b := NewBuilder(stub, "m")

	if _, err := b.Build(context.Background(), "resume"); err == nil {
		t.Fatal("expected parse error")
	}
}
