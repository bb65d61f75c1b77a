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

const museBaseURL = "https://www.themuse.com/api/public/jobs"

// museJob represents a single result in The Muse public jobs API.
type museJob struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Company         museCompany `json:"company"`
	Locations       []museName  `json:"locations"`
	Categories      []museName  `json:"categories"`
	Contents        string      `json:"contents"`
	PublicationDate string      `json:"publication_date"`
	Refs            museRefs    `json:"refs"`
}

type museCompany struct {
	Name string `json:"name"`
}

type museName struct {
	Name string `json:"name"`
}

type museRefs struct {
	LandingPage string `json:"landing_page"`
}

type museResponse struct {
	Results []museJob `json:"results"`
}

// MuseAdapter fetches postings from The Muse public jobs API, newest first.
type MuseAdapter struct {
	baseURL  string
	client   *http.Client
	lookback time.Duration
	now      func() time.Time
}

// NewMuseAdapter creates an adapter with the given recency lookback.
func NewMuseAdapter(client *http.Client, lookback time.Duration) *MuseAdapter {
	return &MuseAdapter{
		baseURL:  museBaseURL,
		client:   client,
		lookback: lookback,
		now:      time.Now,
	}
}

func (a *MuseAdapter) Name() string { return "The Muse" }

// Fetch retrieves the most recent listings page and normalizes entries
// within the lookback window into the unified Posting model. Entries
// without a publication date are kept.
func (a *MuseAdapter) Fetch(ctx context.Context) ([]model.Posting, error) {
	u := a.baseURL + "?page=0&descending=true"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("themuse fetch: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("themuse fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("themuse fetch: unexpected status %d", resp.StatusCode),
		}
	}

	var museResp museResponse
	if err := json.NewDecoder(resp.Body).Decode(&museResp); err != nil {
		return nil, fmt.Errorf("themuse fetch: %w", err)
	}

	cutoff := a.now().Add(-a.lookback)
	postings := make([]model.Posting, 0, len(museResp.Results))
	for _, j := range museResp.Results {
		var postedAt time.Time
		if j.PublicationDate != "" {
			t, err := time.Parse(time.RFC3339, j.PublicationDate)
			if err == nil {
				if t.Before(cutoff) {
					continue
				}
				postedAt = t
			}
		}

		locations := make([]string, 0, len(j.Locations))
		remote := false
		for _, l := range j.Locations {
			locations = append(locations, l.Name)
			if looksRemote(l.Name) {
				remote = true
			}
		}
		location := strings.Join(locations, ", ")
		if location == "" {
			location = "N/A"
		}

		categories := make([]string, 0, len(j.Categories))
		for _, c := range j.Categories {
			categories = append(categories, c.Name)
		}

		postings = append(postings, model.Posting{
			ID:          fmt.Sprintf("muse_%d", j.ID),
			Title:       j.Name,
			Company:     orDefault(j.Company.Name, "N/A"),
			Location:    location,
			Remote:      remote,
			Description: normalizeDescription(j.Contents),
			ApplyLink:   j.Refs.LandingPage,
			PostedAt:    postedAt,
			Tags:        strings.Join(categories, ", "),
			Source:      a.Name(),
		})
	}

	return postings, nil
}
