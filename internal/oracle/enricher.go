package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

// promptExcerptLen caps the resume and posting excerpts embedded in the
// enrichment prompt so request size stays stable regardless of source.
const promptExcerptLen = 2000

// Enricher requests a structured application package from the oracle for
// one posting. Parse or transport failures are returned to the caller; the
// pipeline drops the posting and continues.
type Enricher struct {
	provider    ChatProvider
	model       string
	temperature float64
	maxTokens   int
	now         func() time.Time
}

// NewEnricher creates an enricher using the given model for match calls.
func NewEnricher(provider ChatProvider, modelName string) *Enricher {
	return &Enricher{
		provider:    provider,
		model:       modelName,
		temperature: 0.65,
		maxTokens:   2000,
		now:         time.Now,
	}
}

// matchPromptData feeds JobMatchTemplate.
type matchPromptData struct {
	ResumeExcerpt      string
	ProfileSummary     string
	Title              string
	Company            string
	Location           string
	Tags               string
	DescriptionExcerpt string
}

// Enrich generates the application package for posting. The result carries a
// ProcessedAt timestamp and is created exactly once per surviving posting.
func (e *Enricher) Enrich(ctx context.Context, profile model.CandidateProfile, posting model.Posting) (model.EnrichmentResult, error) {
	data := matchPromptData{
		ResumeExcerpt:      excerpt(profile.ResumeText),
		ProfileSummary:     profile.Summary(),
		Title:              posting.Title,
		Company:            posting.Company,
		Location:           posting.Location,
		Tags:               posting.Tags,
		DescriptionExcerpt: excerpt(posting.Description),
	}

	var promptBuf bytes.Buffer
	if err := JobMatchTemplate.Execute(&promptBuf, data); err != nil {
		return model.EnrichmentResult{}, fmt.Errorf("render match prompt: %w", err)
	}

	raw, err := e.provider.Complete(ctx, ChatRequest{
		System:      JobMatchSystemPrompt,
		User:        promptBuf.String(),
		Model:       e.model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		return model.EnrichmentResult{}, fmt.Errorf("enrich %s: %w", posting.ID, err)
	}

	var result model.EnrichmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return model.EnrichmentResult{}, fmt.Errorf("enrich %s: parse result: %w", posting.ID, err)
	}

	result.ProcessedAt = e.now().UTC()
	return result, nil
}

func excerpt(s string) string {
	if len(s) > promptExcerptLen {
		return s[:promptExcerptLen]
	}
	return s
}
