package store

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dmehra/jobwire/internal/model"
)

const sheetsTabName = "Jobs"

// SheetsStore keeps application records in a Google Sheets worksheet,
// authenticated with a service-account credentials blob.
type SheetsStore struct {
	srv           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore creates a store for the given spreadsheet.
func NewSheetsStore(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsStore, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return &SheetsStore{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// EnsureSchema creates the Jobs worksheet if missing and writes the fixed
// header row when the first row does not already match it.
func (s *SheetsStore) EnsureSchema() error {
	ss, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("reading spreadsheet: %w", err)
	}

	found := false
	for _, sheet := range ss.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetsTabName {
			found = true
			break
		}
	}
	if !found {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetsTabName},
				},
			}},
		}
		if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Do(); err != nil {
			return fmt.Errorf("creating %s worksheet: %w", sheetsTabName, err)
		}
	}

	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, sheetsTabName+"!1:1").Do()
	if err != nil {
		return fmt.Errorf("reading header row: %w", err)
	}
	if len(resp.Values) > 0 && headerMatches(resp.Values[0]) {
		return nil
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]any{header}}
	_, err = s.srv.Spreadsheets.Values.Update(s.spreadsheetID, sheetsTabName+"!A1", vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	return nil
}

// ReadAllIDs reads the job_id column, skipping the header row.
func (s *SheetsStore) ReadAllIDs() (map[string]struct{}, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, sheetsTabName+"!A2:A").Do()
	if err != nil {
		return nil, fmt.Errorf("reading seen ids: %w", err)
	}

	ids := make(map[string]struct{})
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if id, ok := row[0].(string); ok && id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// Append appends one record row with RAW input (no cell parsing).
func (s *SheetsStore) Append(p model.Posting, r model.EnrichmentResult) error {
	vr := &sheets.ValueRange{Values: [][]any{recordRow(p, r)}}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, sheetsTabName+"!A1", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("appending record %s: %w", p.ID, err)
	}
	return nil
}

// Close is a no-op; the sheets client holds no persistent connection.
func (s *SheetsStore) Close() error { return nil }

func headerMatches(row []any) bool {
	if len(row) != len(Headers) {
		return false
	}
	for i, cell := range row {
		v, ok := cell.(string)
		if !ok || v != Headers[i] {
			return false
		}
	}
	return true
}
