package digest

import (
	"log/slog"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

// Ensure LogDigest implements model.DigestSink.
var _ model.DigestSink = (*LogDigest)(nil)

// LogDigest writes the ranked report to the logger, used when email is not
// configured and for `digest test`.
type LogDigest struct {
	logger *slog.Logger
}

// NewLogDigest returns a sink that logs each ranked entry via slog.
func NewLogDigest(logger *slog.Logger) *LogDigest {
	return &LogDigest{logger: logger}
}

// Send logs each entry in rank order. Returns nil (stdout logging does not
// fail).
func (d *LogDigest) Send(ranked []model.ScoredPosting) error {
	for i, sp := range ranked {
		d.logger.Info("ranked job",
			"rank", i+1,
			"score", sp.Result.MatchScore,
			"title", sp.Posting.Title,
			"company", sp.Posting.Company,
			"location", sp.Posting.Location,
			"source", sp.Posting.Source,
			"apply", sp.Posting.ApplyLink,
		)
	}
	return nil
}

// SendTestDigest sends a dummy ranked entry to verify the sink works.
func SendTestDigest(sink model.DigestSink) error {
	test := model.ScoredPosting{
		Posting: model.Posting{
			ID:        "test-001",
			Title:     "Test Digest - Integration Verified",
			Company:   "Jobwire Test",
			Location:  "Remote",
			Remote:    true,
			ApplyLink: "https://example.com/apply",
			PostedAt:  time.Now(),
			Source:    "test",
		},
		Result: model.EnrichmentResult{
			MatchScore:          100,
			MatchReasons:        []string{"sink wiring works"},
			Gaps:                []string{"none"},
			KeywordsToAdd:       []string{"jobwire"},
			ApplicationStrategy: "If you can read this, digest delivery is configured correctly.",
			ProcessedAt:         time.Now(),
		},
	}
	return sink.Send([]model.ScoredPosting{test})
}
