package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestArbeitnowAdapter_Fetch_Success(t *testing.T) {
	fresh := testNow.Add(-2 * time.Hour).Unix()
	stale := testNow.Add(-30 * time.Hour).Unix()
	payload := `{"data": [
		{
			"slug": "go-developer-berlin-42",
			"title": "Go Developer",
			"company_name": "Beispiel GmbH",
			"location": "Berlin",
			"remote": false,
			"description": "<b>Go</b> and Kubernetes",
			"tags": ["golang"],
			"created_at": ` + itoa(fresh) + `
		},
		{
			"slug": "remote-rust-dev",
			"title": "Rust Developer",
			"company_name": "",
			"location": "",
			"remote": true,
			"created_at": ` + itoa(fresh) + `
		},
		{
			"slug": "ancient-posting",
			"title": "Old Role",
			"created_at": ` + itoa(stale) + `
		}
	]}`

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := newArbeitnowTestAdapter(srv, "backend engineer")

	postings, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "backend engineer" {
		t.Errorf("expected search query forwarded, got %q", gotQuery)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 fresh postings, got %d", len(postings))
	}

	p := postings[0]
	if p.ID != "arb_go-developer-berlin-42" {
		t.Errorf("expected slug-qualified id, got %s", p.ID)
	}
	if p.Company != "Beispiel GmbH" {
		t.Errorf("expected company name, got %s", p.Company)
	}
	if p.Description != "Go and Kubernetes" {
		t.Errorf("expected stripped description, got %q", p.Description)
	}
	if p.ApplyLink != "https://www.arbeitnow.com/jobs/go-developer-berlin-42" {
		t.Errorf("expected apply link built from slug, got %s", p.ApplyLink)
	}
	if p.Source != "Arbeitnow" {
		t.Errorf("expected source Arbeitnow, got %s", p.Source)
	}

	// Remote posting with empty location falls back to "Remote"; the one
	// with no company falls back to N/A.
	p2 := postings[1]
	if p2.Location != "Remote" || !p2.Remote {
		t.Errorf("expected remote fallback location, got %q remote=%v", p2.Location, p2.Remote)
	}
	if p2.Company != "N/A" {
		t.Errorf("expected N/A company fallback, got %s", p2.Company)
	}
}

func TestArbeitnowAdapter_Fetch_MissingTimestampFailsCutoff(t *testing.T) {
	payload := `{"data": [{"slug": "no-ts", "title": "No Timestamp"}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := newArbeitnowTestAdapter(srv, "go")

	postings, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// created_at defaults to epoch zero, which is far older than the window.
	if len(postings) != 0 {
		t.Fatalf("expected 0 postings, got %d", len(postings))
	}
}

func TestArbeitnowAdapter_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newArbeitnowTestAdapter(srv, "go")

	if _, err := a.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// --- helpers ---

func newArbeitnowTestAdapter(srv *httptest.Server, query string) *ArbeitnowAdapter {
	a := NewArbeitnowAdapter(query, srv.Client(), 24*time.Hour)
	a.baseURL = srv.URL
	a.now = func() time.Time { return testNow }
	return a
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
