// Package purchase implements the multi-step purchase wizard: quantity
// entry, address selection and submission, with step-local validation and
// explicit cancellation.
//
// The wizard has no reference to the favorites store or the catalog. Its
// only channel back to them is the completion callback, which fires once
// per successful submission with the purchased book's identifier.
package purchase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/errors"
)

// State identifies where the wizard is in its run.
type State int

const (
	// StateIdle means no purchase is in progress.
	StateIdle State = iota
	// StateQuantityEntry means the wizard is waiting for a copy count.
	StateQuantityEntry
	// StateAddressSelection means the wizard is waiting for an address choice.
	StateAddressSelection
	// StateSubmitting means the remote purchase write is in flight.
	StateSubmitting
	// StateCompleted means the purchase was acknowledged by the service.
	StateCompleted
	// StateCancelled means the user abandoned the run; no purchase happened.
	StateCancelled
	// StateFailed means the remote write failed; the run must be restarted.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQuantityEntry:
		return "quantity entry"
	case StateAddressSelection:
		return "address selection"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Submitter performs the remote purchase write.
type Submitter interface {
	CreatePurchase(ctx context.Context, record books.PurchaseRecord) error
}

// AddressSource provides the current address snapshot the wizard selects
// from. The wizard only reads addresses, never mutates them.
type AddressSource interface {
	Current() []books.Address
	ByID(addressID string) (books.Address, bool)
}

// Wizard drives one purchase at a time through its steps.
type Wizard struct {
	state     State
	book      books.Book
	quantity  int
	addressID string

	// run identifies the active wizard run. A submission result arriving
	// after the run changed (restart after failure, new Start) is stale
	// and must be discarded; a boolean would miss a restart that lands
	// back in the same state.
	run uuid.UUID

	addresses  AddressSource
	submitter  Submitter
	onComplete func(bookID string)
	now        func() time.Time

	lastRecord *books.PurchaseRecord
}

// NewWizard creates an idle wizard reading addresses from source and
// submitting purchases through submitter.
func NewWizard(source AddressSource, submitter Submitter) *Wizard {
	return &Wizard{
		addresses: source,
		submitter: submitter,
		now:       time.Now,
	}
}

// OnComplete registers the completion callback. It is invoked synchronously
// on entry to StateCompleted, before Submit returns.
func (w *Wizard) OnComplete(fn func(bookID string)) {
	w.onComplete = fn
}

// State returns the wizard's current state.
func (w *Wizard) State() State {
	return w.state
}

// Book returns the book of the active run.
func (w *Wizard) Book() books.Book {
	return w.book
}

// Quantity returns the confirmed quantity of the active run.
func (w *Wizard) Quantity() int {
	return w.quantity
}

// LastRecord returns the committed record of the last completed run, nil
// if none completed.
func (w *Wizard) LastRecord() *books.PurchaseRecord {
	return w.lastRecord
}

// Start begins a purchase run for book. It requires a resolved user
// identity: without one the wizard stays idle and signals ErrAuthRequired
// so the caller can redirect to login.
func (w *Wizard) Start(userID string, book books.Book) error {
	switch w.state {
	case StateIdle, StateCompleted, StateCancelled, StateFailed:
	default:
		return fmt.Errorf("purchase already in progress (%s)", w.state)
	}

	if userID == "" {
		return errors.ErrAuthRequired
	}

	w.book = book
	w.quantity = 0
	w.addressID = ""
	w.run = uuid.New()
	w.state = StateQuantityEntry
	return nil
}

// ConfirmQuantity accepts the requested copy count. Valid iff
// 1 <= n <= copies available; invalid input keeps the wizard on the
// quantity step and reports the violated constraint. Quantities are never
// clamped.
func (w *Wizard) ConfirmQuantity(n int) error {
	if w.state != StateQuantityEntry {
		return fmt.Errorf("cannot confirm quantity while %s", w.state)
	}

	if n < 1 || n > w.book.CopiesAvailable {
		return errors.NewValidationError("quantity",
			fmt.Sprintf("please enter a valid number of copies (1-%d)", w.book.CopiesAvailable))
	}

	w.quantity = n
	w.state = StateAddressSelection
	return nil
}

// ConfirmAddress accepts the delivery address choice. The identifier must
// be present in the address source's current snapshot; an empty snapshot
// is reported distinctly from an unknown identifier.
func (w *Wizard) ConfirmAddress(addressID string) error {
	if w.state != StateAddressSelection {
		return fmt.Errorf("cannot confirm address while %s", w.state)
	}

	if len(w.addresses.Current()) == 0 {
		return errors.NewValidationError("address", "no address to select: add a delivery address first")
	}
	if _, ok := w.addresses.ByID(addressID); !ok {
		return errors.NewValidationError("address", "you need to select an address")
	}

	w.addressID = addressID
	w.state = StateSubmitting
	return nil
}

// Cancel abandons the run during quantity entry or address selection and
// discards the draft. A run that is already submitting cannot be
// cancelled: the remote write runs to completion first.
func (w *Wizard) Cancel() error {
	switch w.state {
	case StateQuantityEntry, StateAddressSelection:
		w.discardDraft()
		w.run = uuid.New()
		w.state = StateCancelled
		return nil
	case StateSubmitting:
		return fmt.Errorf("cannot cancel while submitting")
	default:
		return fmt.Errorf("no purchase in progress")
	}
}

// Submit performs the remote purchase write for the confirmed draft. The
// total is computed from the book's current price at this moment, not a
// price captured when the run started. On success the wizard completes and
// emits the completion event; on failure it reports and does not retry.
//
// A result arriving for a run the wizard has since left is discarded.
func (w *Wizard) Submit(ctx context.Context, userID string) error {
	if w.state != StateSubmitting {
		return fmt.Errorf("cannot submit while %s", w.state)
	}

	address, ok := w.addresses.ByID(w.addressID)
	if !ok {
		// snapshot changed between confirm and submit
		w.discardDraft()
		w.state = StateFailed
		return errors.NewValidationError("address", "selected address is no longer available")
	}

	record := books.NewPurchaseRecord(userID, w.book, w.quantity, address, w.now())
	run := w.run

	err := w.submitter.CreatePurchase(ctx, record)

	if w.run != run || w.state != StateSubmitting {
		slog.Debug("Discarding stale purchase result", "book", record.BookTitle)
		return nil
	}

	if err != nil {
		w.discardDraft()
		w.state = StateFailed
		return fmt.Errorf("purchase submission: %w", err)
	}

	w.lastRecord = &record
	w.state = StateCompleted
	bookID := w.book.ID
	w.discardDraft()
	if w.onComplete != nil {
		w.onComplete(bookID)
	}
	return nil
}

func (w *Wizard) discardDraft() {
	w.quantity = 0
	w.addressID = ""
}

// ParseQuantity converts user-entered text into a copy count. Non-integer
// input (including decimals such as "3.5") is a validation error, mirroring
// the bounds check in ConfirmQuantity.
func ParseQuantity(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errors.NewValidationError("quantity", "please enter a whole number of copies")
	}
	return n, nil
}
