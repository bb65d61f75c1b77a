package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

const remoteOKBaseURL = "https://remoteok.com/api"

// remoteOKJob represents a single entry in the RemoteOK API response.
// The first array element is a legal notice without an id; it is skipped.
type remoteOKJob struct {
	ID          json.Number `json:"id"`
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	ApplyURL    string      `json:"apply_url"`
	Date        string      `json:"date"`
	Salary      string      `json:"salary"`
	Tags        []string    `json:"tags"`
}

// RemoteOKAdapter fetches postings from the RemoteOK public API.
// Every listing on the board is remote by definition.
type RemoteOKAdapter struct {
	baseURL  string
	client   *http.Client
	lookback time.Duration
	now      func() time.Time
}

// NewRemoteOKAdapter creates an adapter with the given recency lookback.
func NewRemoteOKAdapter(client *http.Client, lookback time.Duration) *RemoteOKAdapter {
	return &RemoteOKAdapter{
		baseURL:  remoteOKBaseURL,
		client:   client,
		lookback: lookback,
		now:      time.Now,
	}
}

func (a *RemoteOKAdapter) Name() string { return "RemoteOK" }

// Fetch retrieves listings posted within the lookback window and normalizes
// them into the unified Posting model.
func (a *RemoteOKAdapter) Fetch(ctx context.Context) ([]model.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	req.Header.Set("User-Agent", "jobwire/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("remoteok fetch: unexpected status %d", resp.StatusCode),
		}
	}

	var entries []remoteOKJob
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}

	cutoff := a.now().Add(-a.lookback)
	postings := make([]model.Posting, 0, len(entries))
	for _, e := range entries {
		if e.ID.String() == "" {
			continue
		}

		// Entries without a date are treated as just posted.
		postedAt := a.now()
		if e.Date != "" {
			t, err := time.Parse(time.RFC3339, e.Date)
			if err != nil {
				continue
			}
			postedAt = t
		}
		if postedAt.Before(cutoff) {
			continue
		}

		applyLink := e.URL
		if applyLink == "" {
			applyLink = e.ApplyURL
		}

		postings = append(postings, model.Posting{
			ID:          "rok_" + e.ID.String(),
			Title:       e.Position,
			Company:     orDefault(e.Company, "N/A"),
			Location:    "Remote",
			Remote:      true,
			Description: normalizeDescription(e.Description),
			ApplyLink:   applyLink,
			PostedAt:    postedAt,
			Salary:      e.Salary,
			Tags:        strings.Join(e.Tags, ", "),
			Source:      a.Name(),
		})
	}

	return postings, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
