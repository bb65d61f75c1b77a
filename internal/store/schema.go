// Package store persists enriched postings as append-only records and
// exposes previously recorded ids for cross-run deduplication.
package store

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

// StatusToApply is the initial value of the mutable status column.
const StatusToApply = "To Apply"

// Headers is the fixed, ordered column layout shared by every record store
// backend: all Posting fields, all EnrichmentResult fields, then the
// mutable status column and the date_added timestamp.
var Headers = []string{
	"job_id", "title", "company", "location", "remote", "apply_link",
	"posted_at", "salary", "tags", "source", "match_score",
	"match_reasons", "gaps", "keywords_to_add", "cover_letter",
	"resume_improvements", "application_strategy", "status", "date_added",
}

const listSeparator = " | "

// recordRow flattens one enriched posting into the Headers column order.
func recordRow(p model.Posting, r model.EnrichmentResult) []any {
	postedAt := ""
	if !p.PostedAt.IsZero() {
		postedAt = p.PostedAt.UTC().Format(time.RFC3339)
	}

	improvements, err := json.Marshal(r.ResumeImprovements)
	if err != nil {
		improvements = []byte("[]")
	}

	return []any{
		p.ID,
		p.Title,
		p.Company,
		p.Location,
		strconv.FormatBool(p.Remote),
		p.ApplyLink,
		postedAt,
		p.Salary,
		p.Tags,
		p.Source,
		r.MatchScore,
		strings.Join(r.MatchReasons, listSeparator),
		strings.Join(r.Gaps, listSeparator),
		strings.Join(r.KeywordsToAdd, ", "),
		r.CoverLetter,
		string(improvements),
		r.ApplicationStrategy,
		StatusToApply,
		r.ProcessedAt.UTC().Format(time.RFC3339),
	}
}

func unmarshalImprovements(raw string, r *model.EnrichmentResult) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), &r.ResumeImprovements)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
