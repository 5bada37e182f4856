// Package favorites keeps the favorited-book set consistent across an
// in-process copy and a persisted SQLite mirror.
//
// Precondition: a single active storefront screen. Operations are
// serialized by the caller's event loop; the Store adds no locking of
// its own beyond what the SQLite handle needs.
package favorites

// Mirror is the persisted side of the favorites set. It stores a flat set
// of opaque book identifiers keyed to the current device, nothing else.
type Mirror interface {
	// Add persists a book identifier. Adding an existing identifier is a no-op.
	Add(bookID string) error

	// Remove deletes a book identifier. Removing a missing identifier is a no-op.
	Remove(bookID string) error

	// IDs returns all persisted identifiers.
	IDs() ([]string, error)
}
