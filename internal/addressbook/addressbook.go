// Package addressbook maintains the local snapshot of a user's delivery
// addresses. Writes go to the remote service first; the snapshot is
// refreshed only after a committed write, so it never diverges from the
// server.
package addressbook

import (
	"context"
	"log/slog"

	"github.com/booksadda/storefront/internal/books"
)

// Service is the slice of the remote API the address book uses.
type Service interface {
	GetAddresses(ctx context.Context, userID string) ([]books.Address, error)
	AddAddress(ctx context.Context, address books.Address) error
	UpdateAddress(ctx context.Context, addressID string, address books.Address) error
	DeleteAddress(ctx context.Context, addressID string) error
}

// Book holds the per-user address snapshot.
type Book struct {
	service  Service
	userID   string
	snapshot []books.Address
}

// New creates an empty address book for the given user.
func New(service Service, userID string) *Book {
	return &Book{service: service, userID: userID}
}

// Refresh replaces the snapshot from the remote service. It fails softly:
// a remote error is logged and the previous snapshot is kept.
func (b *Book) Refresh(ctx context.Context) {
	addresses, err := b.service.GetAddresses(ctx, b.userID)
	if err != nil {
		slog.Warn("Failed to refresh addresses, keeping previous snapshot", "user", b.userID, "error", err)
		return
	}
	b.snapshot = addresses
}

// Add creates an address remotely and refreshes the snapshot on success.
// On failure the snapshot is untouched and the error is returned; the
// write is not retried.
func (b *Book) Add(ctx context.Context, address books.Address) error {
	address.UserID = b.userID
	if err := b.service.AddAddress(ctx, address); err != nil {
		return err
	}
	b.Refresh(ctx)
	return nil
}

// Update edits an address remotely and refreshes the snapshot on success.
func (b *Book) Update(ctx context.Context, addressID string, address books.Address) error {
	if err := b.service.UpdateAddress(ctx, addressID, address); err != nil {
		return err
	}
	b.Refresh(ctx)
	return nil
}

// Remove deletes an address remotely and refreshes the snapshot on success.
func (b *Book) Remove(ctx context.Context, addressID string) error {
	if err := b.service.DeleteAddress(ctx, addressID); err != nil {
		return err
	}
	b.Refresh(ctx)
	return nil
}

// Current returns a copy of the latest snapshot, empty before the first
// successful Refresh.
func (b *Book) Current() []books.Address {
	out := make([]books.Address, len(b.snapshot))
	copy(out, b.snapshot)
	return out
}

// ByID looks up an address in the current snapshot.
func (b *Book) ByID(addressID string) (books.Address, bool) {
	for _, a := range b.snapshot {
		if a.ID == addressID {
			return a, true
		}
	}
	return books.Address{}, false
}
