package store

import "github.com/dmehra/jobwire/internal/model"

// NopStore is a no-op store used in dry-run mode. Nothing is persisted and
// every posting appears new.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) EnsureSchema() error { return nil }
func (s *NopStore) ReadAllIDs() (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}
func (s *NopStore) Append(model.Posting, model.EnrichmentResult) error { return nil }
func (s *NopStore) Close() error                                       { return nil }
