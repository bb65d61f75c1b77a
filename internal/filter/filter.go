// Package filter removes duplicate and irrelevant postings before
// enrichment. It favors recall over precision: false positives are pruned
// later by the oracle's match score, not here.
package filter

import (
	"strings"

	"github.com/dmehra/jobwire/internal/model"
)

// Options configures the relevance filter. Zero-value lists fall back to
// the built-in geography keyword sets.
type Options struct {
	RemoteOnly     bool
	GeoPolicy      GeoPolicy
	GeoKeywords    []string // overrides the policy's default list when set
	SkillThreshold int      // min skill substring matches, default 1
	MaxPostings    int      // output cap, default 20
}

// RelevanceFilter screens postings against one candidate profile.
// Matching is case-insensitive substring over lower-cased text.
type RelevanceFilter struct {
	targetRoles    []string // lower-cased
	skills         []string // lower-cased, top 8
	remoteOnly     bool
	geoPolicy      GeoPolicy
	geoKeywords    []string
	skillThreshold int
	maxPostings    int
}

// New builds a filter from the candidate profile and options.
func New(profile model.CandidateProfile, opts Options) *RelevanceFilter {
	roles := make([]string, 0, len(profile.TargetRoles))
	for _, r := range profile.TargetRoles {
		roles = append(roles, strings.ToLower(r))
	}

	skills := profile.Skills
	if len(skills) > 8 {
		skills = skills[:8]
	}
	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		lowered = append(lowered, strings.ToLower(s))
	}

	policy := opts.GeoPolicy
	if policy == "" {
		policy = GeoPolicyDeny
	}
	keywords := opts.GeoKeywords
	if len(keywords) == 0 {
		if policy == GeoPolicyAllow {
			keywords = defaultAllowKeywords
		} else {
			keywords = defaultDenyKeywords
		}
	}

	threshold := opts.SkillThreshold
	if threshold <= 0 {
		threshold = 1
	}
	limit := opts.MaxPostings
	if limit <= 0 {
		limit = 20
	}

	return &RelevanceFilter{
		targetRoles:    roles,
		skills:         lowered,
		remoteOnly:     opts.RemoteOnly,
		geoPolicy:      policy,
		geoKeywords:    keywords,
		skillThreshold: threshold,
		maxPostings:    limit,
	}
}

// Apply returns at most MaxPostings postings in input order: not in seen,
// unique within the pass, passing the geography policy and the relevance
// predicate. An empty result is a normal terminal outcome for a run.
func (f *RelevanceFilter) Apply(postings []model.Posting, seen map[string]struct{}) []model.Posting {
	accepted := make(map[string]struct{})
	var filtered []model.Posting

	for _, p := range postings {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		// Guards against a provider returning id collisions within one run.
		if _, ok := accepted[p.ID]; ok {
			continue
		}
		if f.remoteOnly && !p.Remote {
			continue
		}
		if !f.locationOK(p.Location) {
			continue
		}
		if !f.relevant(p) {
			continue
		}

		accepted[p.ID] = struct{}{}
		filtered = append(filtered, p)
		if len(filtered) == f.maxPostings {
			break
		}
	}

	return filtered
}

func (f *RelevanceFilter) locationOK(location string) bool {
	loc := strings.ToLower(location)

	switch f.geoPolicy {
	case GeoPolicyAllow:
		for _, kw := range f.geoKeywords {
			if strings.Contains(loc, kw) {
				return true
			}
		}
		return false
	default:
		if loc == "" {
			return true
		}
		for _, kw := range f.geoKeywords {
			if strings.Contains(loc, kw) {
				return false
			}
		}
		return true
	}
}

// relevant accepts a posting when any target-role first word appears in the
// title+description text, or enough top skills do. Deliberately loose OR.
func (f *RelevanceFilter) relevant(p model.Posting) bool {
	text := strings.ToLower(p.Title + " " + p.Description)

	for _, role := range f.targetRoles {
		first, _, _ := strings.Cut(role, " ")
		if first != "" && strings.Contains(text, first) {
			return true
		}
	}

	matches := 0
	for _, sk := range f.skills {
		if strings.Contains(text, sk) {
			matches++
			if matches >= f.skillThreshold {
				return true
			}
		}
	}

	return false
}
