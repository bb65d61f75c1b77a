// Package profile derives the candidate profile from raw resume text via
// the oracle. The profile is built once per run and is immutable after.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmehra/jobwire/internal/model"
	"github.com/dmehra/jobwire/internal/oracle"
)

// Builder turns resume text into a CandidateProfile.
type Builder struct {
	provider oracle.ChatProvider
	model    string
}

// NewBuilder creates a builder using the given model for the analysis call.
func NewBuilder(provider oracle.ChatProvider, modelName string) *Builder {
	return &Builder{provider: provider, model: modelName}
}

// rawProfile is the JSON shape returned by the resume-analysis prompt.
type rawProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Location        string   `json:"location"`
	YearsExperience float64  `json:"years_experience"`
	CurrentTitle    string   `json:"current_title"`
	Skills          []string `json:"skills"`
	Industries      []string `json:"industries"`
	SeniorityLevel  string   `json:"seniority_level"`
	TargetRoles     []string `json:"target_roles"`
	KeyAchievements []string `json:"key_achievements"`
}

// Build analyzes resumeText and returns the profile. A failure here is fatal
// to the run: without a profile there is no relevance predicate and no
// enrichment context.
func (b *Builder) Build(ctx context.Context, resumeText string) (model.CandidateProfile, error) {
	var promptBuf bytes.Buffer
	err := oracle.ResumeAnalysisTemplate.Execute(&promptBuf, struct{ ResumeText string }{ResumeText: resumeText})
	if err != nil {
		return model.CandidateProfile{}, fmt.Errorf("render resume prompt: %w", err)
	}

	raw, err := b.provider.Complete(ctx, oracle.ChatRequest{
		System:      oracle.ResumeAnalysisSystemPrompt,
		User:        promptBuf.String(),
		Model:       b.model,
		Temperature: 0.1,
		MaxTokens:   1200,
	})
	if err != nil {
		return model.CandidateProfile{}, fmt.Errorf("analyze resume: %w", err)
	}

	var rp rawProfile
	if err := json.Unmarshal([]byte(raw), &rp); err != nil {
		return model.CandidateProfile{}, fmt.Errorf("analyze resume: parse profile: %w", err)
	}

	// Cap skills at 15 as a defensive guard; the prompt asks for the top 15.
	if len(rp.Skills) > 15 {
		rp.Skills = rp.Skills[:15]
	}

	return model.CandidateProfile{
		Name:            rp.Name,
		Email:           rp.Email,
		Location:        rp.Location,
		YearsExperience: rp.YearsExperience,
		CurrentTitle:    rp.CurrentTitle,
		Seniority:       rp.SeniorityLevel,
		Skills:          rp.Skills,
		Industries:      rp.Industries,
		TargetRoles:     rp.TargetRoles,
		KeyAchievements: rp.KeyAchievements,
		ResumeText:      resumeText,
	}, nil
}
