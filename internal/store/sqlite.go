package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmehra/jobwire/internal/model"
)

// SQLiteStore keeps application records in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// EnsureSchema creates the applications table if it does not exist.
func (s *SQLiteStore) EnsureSchema() error {
	createTable := `CREATE TABLE IF NOT EXISTS applications (
		job_id              TEXT PRIMARY KEY,
		title               TEXT,
		company             TEXT,
		location            TEXT,
		remote              TEXT,
		apply_link          TEXT,
		posted_at           TEXT,
		salary              TEXT,
		tags                TEXT,
		source              TEXT,
		match_score         INTEGER,
		match_reasons       TEXT,
		gaps                TEXT,
		keywords_to_add     TEXT,
		cover_letter        TEXT,
		resume_improvements TEXT,
		application_strategy TEXT,
		status              TEXT,
		date_added          TEXT
	)`
	if _, err := s.db.Exec(createTable); err != nil {
		return fmt.Errorf("creating applications table: %w", err)
	}
	return nil
}

// ReadAllIDs returns the set of job ids recorded by prior runs.
func (s *SQLiteStore) ReadAllIDs() (map[string]struct{}, error) {
	rows, err := s.db.Query("SELECT job_id FROM applications")
	if err != nil {
		return nil, fmt.Errorf("reading seen ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning seen id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading seen ids: %w", err)
	}
	return ids, nil
}

// Append records one enriched posting. Re-appending an existing id is a
// no-op, so a re-run never duplicates rows.
func (s *SQLiteStore) Append(p model.Posting, r model.EnrichmentResult) error {
	row := recordRow(p, r)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Headers)), ", ")
	query := fmt.Sprintf("INSERT OR IGNORE INTO applications (%s) VALUES (%s)",
		strings.Join(Headers, ", "), placeholders)

	if _, err := s.db.Exec(query, row...); err != nil {
		return fmt.Errorf("appending record %s: %w", p.ID, err)
	}
	return nil
}

// ListRecords reads stored applications back, highest match score first.
// Used by the review TUI; not part of the RecordStore contract.
func (s *SQLiteStore) ListRecords() ([]model.ScoredPosting, error) {
	rows, err := s.db.Query(`SELECT job_id, title, company, location, remote,
		apply_link, posted_at, salary, tags, source, match_score,
		match_reasons, gaps, keywords_to_add, cover_letter,
		resume_improvements, application_strategy, date_added
		FROM applications ORDER BY match_score DESC, date_added ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []model.ScoredPosting
	for rows.Next() {
		var (
			sp                             model.ScoredPosting
			remote, postedAt, dateAdded    string
			reasons, gaps, keywords, imprs string
		)
		err := rows.Scan(
			&sp.Posting.ID, &sp.Posting.Title, &sp.Posting.Company,
			&sp.Posting.Location, &remote, &sp.Posting.ApplyLink,
			&postedAt, &sp.Posting.Salary, &sp.Posting.Tags,
			&sp.Posting.Source, &sp.Result.MatchScore,
			&reasons, &gaps, &keywords, &sp.Result.CoverLetter,
			&imprs, &sp.Result.ApplicationStrategy, &dateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		sp.Posting.Remote = remote == "true"
		if t, err := time.Parse(time.RFC3339, postedAt); err == nil {
			sp.Posting.PostedAt = t
		}
		if t, err := time.Parse(time.RFC3339, dateAdded); err == nil {
			sp.Result.ProcessedAt = t
		}
		sp.Result.MatchReasons = splitList(reasons)
		sp.Result.Gaps = splitList(gaps)
		if keywords != "" {
			sp.Result.KeywordsToAdd = splitList(strings.ReplaceAll(keywords, ", ", listSeparator))
		}
		// Improvements were stored as JSON; ignore rows with corrupt blobs.
		_ = unmarshalImprovements(imprs, &sp.Result)

		records = append(records, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
