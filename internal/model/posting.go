package model

import (
	"context"
	"strings"
	"time"
)

// Posting is the unified representation of a job listing from any source.
// Adapters create it; it is read-only afterwards. Enrichment pairs a result
// with the posting instead of mutating it.
type Posting struct {
	ID          string    // source-qualified: provider prefix + native id
	Title       string
	Company     string
	Location    string
	Remote      bool
	Description string // plain text, capped at 3000 chars by the adapter
	ApplyLink   string
	PostedAt    time.Time // zero when the provider gives no timestamp
	Salary      string
	Tags        string // comma-joined provider tags
	Source      string // provider display name
}

// ResumeImprovement is one suggested resume edit from the oracle.
type ResumeImprovement struct {
	Section         string `json:"section"`
	CurrentIssue    string `json:"current_issue"`
	ImprovedVersion string `json:"improved_version"`
	Impact          string `json:"impact"`
}

// EnrichmentResult is the oracle-generated application package for one
// posting. Created exactly once per surviving posting.
type EnrichmentResult struct {
	MatchScore          int                 `json:"match_score"`
	MatchReasons        []string            `json:"match_reasons"`
	Gaps                []string            `json:"gaps"`
	KeywordsToAdd       []string            `json:"keywords_to_add"`
	CoverLetter         string              `json:"cover_letter"`
	ResumeImprovements  []ResumeImprovement `json:"resume_improvements"`
	ApplicationStrategy string              `json:"application_strategy"`
	ProcessedAt         time.Time           `json:"-"`
}

// ScoredPosting pairs a posting with its enrichment result.
type ScoredPosting struct {
	Posting Posting
	Result  EnrichmentResult
}

// CandidateProfile is derived once per run from the raw resume text and is
// immutable for the duration of the run.
type CandidateProfile struct {
	Name            string
	Email           string
	Location        string
	YearsExperience float64
	CurrentTitle    string
	Seniority       string // junior | mid | senior | lead
	Skills          []string
	Industries      []string
	TargetRoles     []string
	KeyAchievements []string
	ResumeText      string // kept verbatim for enrichment prompts
}

// PrimaryRole returns the first target role, used as the search term for
// query-driven sources.
func (p CandidateProfile) PrimaryRole() string {
	if len(p.TargetRoles) > 0 {
		return p.TargetRoles[0]
	}
	return "software engineer"
}

// Summary is a compact one-block profile description for prompts.
func (p CandidateProfile) Summary() string {
	skills := p.Skills
	if len(skills) > 10 {
		skills = skills[:10]
	}
	var b strings.Builder
	b.WriteString("Name: " + p.Name + "\n")
	b.WriteString("Title: " + p.CurrentTitle + " | " + p.Seniority + "\n")
	b.WriteString("Top Skills: " + strings.Join(skills, ", ") + "\n")
	b.WriteString("Key Achievements: " + strings.Join(p.KeyAchievements, " | "))
	return b.String()
}

// SourceFetcher fetches postings from one listing provider.
type SourceFetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]Posting, error)
}

// RecordStore persists enriched postings and exposes the ids recorded by
// prior runs for deduplication.
type RecordStore interface {
	EnsureSchema() error
	ReadAllIDs() (map[string]struct{}, error)
	Append(p Posting, r EnrichmentResult) error
	Close() error
}

// DigestSink receives the final ranked list and renders a report.
type DigestSink interface {
	Send(ranked []ScoredPosting) error
}
