// Package store owns the ordered record collection transformations.
//
// Every operation returns a new slice and leaves its input untouched, so a caller swapping in the
// result sees the change atomically. Records are addressed by ID only; translating a position in a
// filtered view to an ID is the caller's job.
package store

import (
	"slices"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
)

// IDSource allocates record IDs.
type IDSource func() string

// maxAttempts bounds how often an [IDSource] is asked before falling back to [shared.GenerateID].
const maxAttempts = 16

// Store creates, replaces, and removes records.
type Store struct {
	ids    IDSource
	issued map[string]struct{}
}

// New creates a [Store]. A nil source falls back to [shared.GenerateID].
func New(ids IDSource) *Store {
	if ids == nil {
		ids = shared.GenerateID
	}
	return &Store{ids: ids, issued: map[string]struct{}{}}
}

// Create appends a new record built from draft and returns the new collection and the record.
//
// The ID is fresh: a source that repeats an ID this store already issued, or one present in
// records, is asked again up to maxAttempts times before a uuid is used instead. IDs are never
// reused after deletion.
func (s *Store) Create(records []models.Record, draft models.Draft) ([]models.Record, models.Record) {
	id := s.ids()
	for attempt := 1; !s.fresh(records, id); attempt++ {
		if attempt < maxAttempts {
			id = s.ids()
		} else {
			id = shared.GenerateID()
		}
	}
	s.issued[id] = struct{}{}

	rec := models.Record{ID: id, Name: draft.Name, Email: draft.Email}
	out := make([]models.Record, 0, len(records)+1)
	out = append(out, records...)
	out = append(out, rec)
	return out, rec
}

// Update overwrites the name and email of the record with id, keeping its position and ID.
//
// The second return value is false, and records are returned unchanged, when id is absent.
func (s *Store) Update(records []models.Record, id string, draft models.Draft) ([]models.Record, bool) {
	i := IndexOf(records, id)
	if i < 0 {
		return records, false
	}

	out := models.CloneRecords(records)
	out[i] = models.Record{ID: id, Name: draft.Name, Email: draft.Email}
	return out, true
}

// Remove deletes the record with id. The second return value is false when id is absent.
func (s *Store) Remove(records []models.Record, id string) ([]models.Record, bool) {
	i := IndexOf(records, id)
	if i < 0 {
		return records, false
	}

	out := make([]models.Record, 0, len(records)-1)
	out = append(out, records[:i]...)
	out = append(out, records[i+1:]...)
	return out, true
}

func (s *Store) fresh(records []models.Record, id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.issued[id]; ok {
		return false
	}
	return IndexOf(records, id) < 0
}

// IndexOf returns the position of the record with id, or -1.
func IndexOf(records []models.Record, id string) int {
	return slices.IndexFunc(records, func(r models.Record) bool { return r.ID == id })
}

// Find returns the record with id.
func Find(records []models.Record, id string) (models.Record, bool) {
	i := IndexOf(records, id)
	if i < 0 {
		return models.Record{}, false
	}
	return records[i], true
}
