package favorites

import (
	"fmt"
	"log/slog"

	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/errors"
)

// Store owns both representations of the favorites set: the in-process
// copy read by the active screen and the persisted mirror. Every mutation
// goes through Store, so the two can never be updated independently.
type Store struct {
	set    map[string]struct{}
	mirror Mirror
}

// NewStore creates a Store backed by mirror, warming the in-process set
// from the persisted identifiers.
func NewStore(mirror Mirror) (*Store, error) {
	ids, err := mirror.IDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted favorites: %w", err)
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return &Store{set: set, mirror: mirror}, nil
}

// IsFavorite reports whether the book is currently favorited.
func (s *Store) IsFavorite(bookID string) bool {
	_, ok := s.set[bookID]
	return ok
}

// IDs returns the current favorite identifiers.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.set))
	for id := range s.set {
		ids = append(ids, id)
	}
	return ids
}

// Toggle flips the favorite state of book as a single logical operation.
// If the mirror write fails, the in-process change is rolled back and a
// ConsistencyError is returned; the two representations never diverge.
// Returns whether the book is favorited after the call.
func (s *Store) Toggle(book books.Book) (bool, error) {
	if s.IsFavorite(book.ID) {
		delete(s.set, book.ID)
		if err := s.mirror.Remove(book.ID); err != nil {
			s.set[book.ID] = struct{}{}
			return true, errors.NewConsistencyError(book.ID, err)
		}
		return false, nil
	}

	s.set[book.ID] = struct{}{}
	if err := s.mirror.Add(book.ID); err != nil {
		delete(s.set, book.ID)
		return false, errors.NewConsistencyError(book.ID, err)
	}
	return true, nil
}

// RemoveIfPresent removes the book from favorites if it is there. It is
// idempotent and never fails: a mirror error rolls back the in-process
// removal to keep both sides consistent and is only logged.
func (s *Store) RemoveIfPresent(bookID string) {
	if !s.IsFavorite(bookID) {
		return
	}

	delete(s.set, bookID)
	if err := s.mirror.Remove(bookID); err != nil {
		s.set[bookID] = struct{}{}
		slog.Warn("Failed to remove favorite from mirror, kept as favorite", "book", bookID, "error", err)
	}
}
