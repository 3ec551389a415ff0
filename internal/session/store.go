// Package session holds the dataset currently loaded in the viewer.
package session

import (
	"sync"
	"time"

	"prodstats/domain/core"
	"prodstats/domain/product"
)

// Dataset is one successful upload. It is never mutated once stored.
type Dataset struct {
	ID         core.DatasetID   `json:"id"`
	FileName   string           `json:"file_name"`
	Format     string           `json:"format"`
	Checksum   core.Hash        `json:"checksum"`
	Size       int64            `json:"size"`
	Extended   bool             `json:"extended"`
	UploadedAt time.Time        `json:"uploaded_at"`
	Records    []product.Record `json:"-"`
}

// RowCount returns the number of records in the dataset
func (d *Dataset) RowCount() int {
	return len(d.Records)
}

// Ticket orders uploads by start time. A later ticket always wins.
type Ticket uint64

// Store keeps the single current dataset. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	current   *Dataset
	issued    Ticket
	committed Ticket
	now       func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Begin issues a ticket for an upload that is about to be processed.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Commit replaces the current dataset unless an upload that began later
// has already been committed. It reports whether ds was stored.
func (s *Store) Commit(t Ticket, ds *Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t <= s.committed {
		return false
	}
	if ds.ID.IsEmpty() {
		ds.ID = core.NewDatasetID()
	}
	if ds.UploadedAt.IsZero() {
		ds.UploadedAt = s.now()
	}
	s.committed = t
	s.current = ds
	return true
}

// Current returns the current dataset, or nil before the first upload.
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Clear drops the current dataset. Uploads already in flight may still commit.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
