// Package pipeline orchestrates one full run: profile → fetch → filter →
// enrich → persist → digest. Fully sequential; per-item failures are
// recovered locally and never abort the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dmehra/jobwire/internal/filter"
	"github.com/dmehra/jobwire/internal/model"
)

// ProfileBuilder derives the candidate profile from resume text.
type ProfileBuilder interface {
	Build(ctx context.Context, resumeText string) (model.CandidateProfile, error)
}

// Enricher generates the application package for one posting.
type Enricher interface {
	Enrich(ctx context.Context, profile model.CandidateProfile, posting model.Posting) (model.EnrichmentResult, error)
}

// Pacer spaces out oracle requests.
type Pacer interface {
	Wait(ctx context.Context) error
	Backoff(ctx context.Context) error
}

// SourceFactory builds the source adapters once the profile is known
// (query-driven providers need the candidate's primary target role).
type SourceFactory func(profile model.CandidateProfile) []model.SourceFetcher

// Runner owns one pipeline run with all dependencies injected.
type Runner struct {
	resumeText string
	profiles   ProfileBuilder
	sources    SourceFactory
	filterOpts filter.Options
	enricher   Enricher
	pacer      Pacer
	store      model.RecordStore
	sink       model.DigestSink
	logger     *slog.Logger
}

// NewRunner wires a runner with all its dependencies.
func NewRunner(
	resumeText string,
	profiles ProfileBuilder,
	sources SourceFactory,
	filterOpts filter.Options,
	enricher Enricher,
	pacer Pacer,
	recordStore model.RecordStore,
	sink model.DigestSink,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		resumeText: resumeText,
		profiles:   profiles,
		sources:    sources,
		filterOpts: filterOpts,
		enricher:   enricher,
		pacer:      pacer,
		store:      recordStore,
		sink:       sink,
		logger:     logger,
	}
}

// Run executes one full pipeline pass. It returns an error only for
// failures that make the rest of the run meaningless (no profile, context
// cancelled); everything else degrades and continues.
func (r *Runner) Run(ctx context.Context) error {
	profile, err := r.profiles.Build(ctx, r.resumeText)
	if err != nil {
		return fmt.Errorf("building profile: %w", err)
	}
	r.logger.Info("profile built",
		"name", profile.Name,
		"title", profile.CurrentTitle,
		"seniority", profile.Seniority,
		"target_roles", profile.TargetRoles,
	)

	seen := r.loadSeen()
	postings := r.fetchAll(ctx, profile)

	relevant := filter.New(profile, r.filterOpts).Apply(postings, seen)
	r.logger.Info("filtered postings",
		"fetched", len(postings),
		"previously_seen", len(seen),
		"relevant", len(relevant),
	)
	if len(relevant) == 0 {
		r.logger.Info("no new relevant jobs, nothing to do")
		return nil
	}

	enriched := r.enrichAll(ctx, profile, relevant)
	if ctx.Err() != nil {
		return fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if len(enriched) == 0 {
		r.logger.Info("no postings survived enrichment, skipping digest")
		return nil
	}

	// Rank by descending score; ties keep the filtered order.
	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Result.MatchScore > enriched[j].Result.MatchScore
	})

	if err := r.sink.Send(enriched); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}

	r.logger.Info("run complete", "enriched", len(enriched))
	return nil
}

// loadSeen prepares the store and reads prior-run ids. Store failures
// degrade to an empty seen set: everything is treated as unseen rather
// than aborting the run.
func (r *Runner) loadSeen() map[string]struct{} {
	if err := r.store.EnsureSchema(); err != nil {
		r.logger.Warn("could not ensure store schema", "error", err)
	}

	seen, err := r.store.ReadAllIDs()
	if err != nil {
		r.logger.Warn("could not read seen ids, treating all postings as unseen", "error", err)
		return map[string]struct{}{}
	}
	return seen
}

// fetchAll runs each source sequentially and concatenates the results in
// source order. One broken provider degrades result count, not the run.
func (r *Runner) fetchAll(ctx context.Context, profile model.CandidateProfile) []model.Posting {
	var all []model.Posting
	for _, src := range r.sources(profile) {
		postings, err := src.Fetch(ctx)
		if err != nil {
			r.logger.Error("source fetch failed", "source", src.Name(), "error", err)
			continue
		}
		r.logger.Info("source fetched", "source", src.Name(), "postings", len(postings))
		all = append(all, postings...)
	}
	return all
}

// enrichAll requests the application package for each posting in order,
// one request in flight at a time. Failed postings are dropped; successes
// are persisted immediately so a mid-run failure keeps prior work.
func (r *Runner) enrichAll(ctx context.Context, profile model.CandidateProfile, relevant []model.Posting) []model.ScoredPosting {
	var enriched []model.ScoredPosting
	for i, p := range relevant {
		if err := r.pacer.Wait(ctx); err != nil {
			return enriched
		}

		r.logger.Info("enriching posting",
			"n", i+1, "of", len(relevant),
			"title", p.Title, "company", p.Company,
		)

		result, err := r.enricher.Enrich(ctx, profile, p)
		if err != nil {
			r.logger.Warn("enrichment failed, dropping posting", "id", p.ID, "error", err)
			if err := r.pacer.Backoff(ctx); err != nil {
				return enriched
			}
			continue
		}

		// A store hiccup should not hide a scored job from the report.
		if err := r.store.Append(p, result); err != nil {
			r.logger.Error("persist failed", "id", p.ID, "error", err)
		}

		enriched = append(enriched, model.ScoredPosting{Posting: p, Result: result})
		r.logger.Info("posting enriched", "id", p.ID, "score", result.MatchScore)
	}
	return enriched
}
