package digest

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func scored(title string, score int) model.ScoredPosting {
	return model.ScoredPosting{
		Posting: model.Posting{
			ID:        strings.ToLower(title),
			Title:     title,
			Company:   "Acme",
			Location:  "Remote",
			Remote:    true,
			ApplyLink: "https://example.com/" + strings.ToLower(title),
			Source:    "RemoteOK",
		},
		Result: model.EnrichmentResult{
			MatchScore:          score,
			MatchReasons:        []string{"go experience"},
			Gaps:                []string{"no rust"},
			KeywordsToAdd:       []string{"kubernetes"},
			ApplicationStrategy: "apply early",
		},
	}
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "#16a34a"},
		{80, "#16a34a"},
		{79, "#d97706"},
		{60, "#d97706"},
		{59, "#dc2626"},
		{0, "#dc2626"},
	}
	for _, tt := range tests {
		if got := scoreColor(tt.score); got != tt.want {
			t.Errorf("scoreColor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	ranked := []model.ScoredPosting{
		scored("Alpha", 90),
		scored("Beta", 70),
		scored("Gamma", 40),
	}

	body, err := renderHTML(ranked, "https://sheets.example.com/doc", testNow)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(body, "3 new roles") {
		t.Error("expected count in header")
	}
	if !strings.Contains(body, "Tuesday, Mar 10") {
		t.Error("expected formatted date in header")
	}

	// Entries appear in rank order.
	a := strings.Index(body, "Alpha")
	b := strings.Index(body, "Beta")
	g := strings.Index(body, "Gamma")
	if a < 0 || b < 0 || g < 0 || !(a < b && b < g) {
		t.Errorf("expected entries in rank order, got indexes %d %d %d", a, b, g)
	}

	// Score colors by band.
	for _, want := range []string{"#16a34a", "#d97706", "#dc2626"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected color %s in body", want)
		}
	}

	if !strings.Contains(body, "https://sheets.example.com/doc") {
		t.Error("expected store link in body")
	}
	if !strings.Contains(body, "https://example.com/alpha") {
		t.Error("expected apply link in body")
	}
	if !strings.Contains(body, "apply early") {
		t.Error("expected strategy in body")
	}
}

func TestRenderHTML_NoStoreURLOmitsLink(t *testing.T) {
	body, err := renderHTML([]model.ScoredPosting{scored("Alpha", 90)}, "", testNow)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "View Cover Letter") {
		t.Error("expected cover letter link omitted without store URL")
	}
}

func TestEmailDigest_Send(t *testing.T) {
	var gotSubject, gotBody string
	d := NewEmailDigest("smtp.example.com", 465, "from@example.com", "to@example.com", "pw", "", discardLogger())
	d.now = func() time.Time { return testNow }
	d.send = func(subject, htmlBody string) error {
		gotSubject = subject
		gotBody = htmlBody
		return nil
	}

	ranked := []model.ScoredPosting{scored("Alpha", 90), scored("Beta", 70)}
	if err := d.Send(ranked); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotSubject != "2 New Jobs Found - Tuesday, Mar 10" {
		t.Errorf("unexpected subject: %q", gotSubject)
	}
	if !strings.Contains(gotBody, "Alpha") || !strings.Contains(gotBody, "Beta") {
		t.Error("expected both entries in body")
	}
}

func TestEmailDigest_SendError(t *testing.T) {
	d := NewEmailDigest("smtp.example.com", 465, "f", "t", "pw", "", discardLogger())
	d.send = func(subject, htmlBody string) error {
		return errors.New("connection refused")
	}

	if err := d.Send([]model.ScoredPosting{scored("Alpha", 90)}); err == nil {
		t.Fatal("expected delivery error surfaced")
	}
}

func TestLogDigest_Send(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d := NewLogDigest(logger)

	if err := d.Send([]model.ScoredPosting{scored("Alpha", 90), scored("Beta", 70)}); err != nil {
		t.Fatalf("send: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "rank=1") || !strings.Contains(out, "rank=2") {
		t.Errorf("expected ranks logged, got %q", out)
	}
	if !strings.Contains(out, "Alpha") {
		t.Errorf("expected title logged, got %q", out)
	}
}

func TestSendTestDigest(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	if err := SendTestDigest(NewLogDigest(logger)); err != nil {
		t.Fatalf("send test digest: %v", err)
	}
	if !strings.Contains(buf.String(), "score=100") {
		t.Errorf("expected test entry logged, got %q", buf.String())
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
