package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

const arbeitnowBaseURL = "https://www.arbeitnow.com/api/job-board-api"

// arbeitnowJob represents a single job in the Arbeitnow API response.
type arbeitnowJob struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"created_at"`
}

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// ArbeitnowAdapter fetches postings from the Arbeitnow job board API,
// filtered by a search query (the candidate's primary target role).
type ArbeitnowAdapter struct {
	baseURL  string
	query    string
	client   *http.Client
	lookback time.Duration
	now      func() time.Time
}

// NewArbeitnowAdapter creates an adapter searching for the given query.
func NewArbeitnowAdapter(query string, client *http.Client, lookback time.Duration) *ArbeitnowAdapter {
	return &ArbeitnowAdapter{
		baseURL:  arbeitnowBaseURL,
		query:    query,
		client:   client,
		lookback: lookback,
		now:      time.Now,
	}
}

func (a *ArbeitnowAdapter) Name() string { return "Arbeitnow" }

// Fetch retrieves listings matching the query posted within the lookback
// window and normalizes them into the unified Posting model.
func (a *ArbeitnowAdapter) Fetch(ctx context.Context) ([]model.Posting, error) {
	u := a.baseURL + "?search=" + url.QueryEscape(a.query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow fetch for %q: %w", a.query, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arbeitnow fetch for %q: %w", a.query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("arbeitnow fetch for %q: unexpected status %d", a.query, resp.StatusCode),
		}
	}

	var anResp arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&anResp); err != nil {
		return nil, fmt.Errorf("arbeitnow fetch for %q: %w", a.query, err)
	}

	cutoff := a.now().Add(-a.lookback)
	postings := make([]model.Posting, 0, len(anResp.Data))
	for _, j := range anResp.Data {
		postedAt := time.Unix(j.CreatedAt, 0).UTC()
		if postedAt.Before(cutoff) {
			continue
		}

		location := j.Location
		if location == "" {
			if j.Remote {
				location = "Remote"
			} else {
				location = "N/A"
			}
		}

		postings = append(postings, model.Posting{
			ID:          "arb_" + j.Slug,
			Title:       j.Title,
			Company:     orDefault(j.CompanyName, "N/A"),
			Location:    location,
			Remote:      j.Remote,
			Description: normalizeDescription(j.Description),
			ApplyLink:   "https://www.arbeitnow.com/jobs/" + j.Slug,
			PostedAt:    postedAt,
			Tags:        strings.Join(j.Tags, ", "),
			Source:      a.Name(),
		})
	}

	return postings, nil
}
