// Package storefront wires the catalog, favorites, address book and
// purchase wizard together behind the user-facing screen.
//
// The controller is glue: it holds no invariant of its own beyond "never
// invoke a favorite toggle or purchase start without a resolved user
// identity". Everything else lives in the composed components.
package storefront

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/booksadda/storefront/internal/addressbook"
	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/cache"
	"github.com/booksadda/storefront/internal/catalog"
	"github.com/booksadda/storefront/internal/errors"
	"github.com/booksadda/storefront/internal/favorites"
	"github.com/booksadda/storefront/internal/purchase"
	"github.com/booksadda/storefront/internal/receipts"
)

// Service is the full remote API surface the storefront consumes.
type Service interface {
	GetBooks(ctx context.Context) ([]books.Book, error)
	GetUser(ctx context.Context, userID string) (*books.User, error)
	addressbook.Service
	purchase.Submitter
}

// Controller composes the storefront components for one active screen.
type Controller struct {
	service   Service
	catalog   *catalog.Index
	favorites *favorites.Store
	addresses *addressbook.Book
	wizard    *purchase.Wizard
	userID    string

	receiptsDir string
	useCache    bool

	// events records side effects in the order they happened; the
	// completion ordering guarantee is asserted against this log.
	events []string

	submitCtx context.Context
}

// Option configures a Controller.
type Option func(*Controller)

// WithReceiptsDir sets where purchase receipts are written. Empty disables
// receipt writing.
func WithReceiptsDir(dir string) Option {
	return func(c *Controller) {
		c.receiptsDir = dir
	}
}

// WithCatalogCache toggles the SQLite-backed catalog cache.
func WithCatalogCache(enabled bool) Option {
	return func(c *Controller) {
		c.useCache = enabled
	}
}

// New creates a Controller for the given user identity. An empty userID
// means an anonymous visitor: browsing and searching work, favorites and
// purchases signal that authentication is required.
func New(service Service, favStore *favorites.Store, userID string, opts ...Option) *Controller {
	c := &Controller{
		service:   service,
		catalog:   catalog.NewIndex(),
		favorites: favStore,
		addresses: addressbook.New(service, userID),
		userID:    userID,
		useCache:  true,
	}
	c.wizard = purchase.NewWizard(c.addresses, service)
	c.wizard.OnComplete(c.handleCompletion)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate loads the catalog and, for a resolved user, the profile and
// address snapshot. Address failures are soft; a catalog failure is
// returned because the screen is useless without it.
func (c *Controller) Activate(ctx context.Context) error {
	list, err := c.loadBooks(ctx)
	if err != nil {
		return fmt.Errorf("activate storefront: %w", err)
	}
	c.catalog.Load(list)

	if c.userID != "" {
		if _, err := c.service.GetUser(ctx, c.userID); err != nil {
			slog.Warn("Failed to fetch user profile", "user", c.userID, "error", err)
		}
		c.addresses.Refresh(ctx)
	}
	return nil
}

// Catalog returns the catalog index for read access.
func (c *Controller) Catalog() *catalog.Index {
	return c.catalog
}

// Addresses returns the address book.
func (c *Controller) Addresses() *addressbook.Book {
	return c.addresses
}

// Favorites returns the favorites store.
func (c *Controller) Favorites() *favorites.Store {
	return c.favorites
}

// Wizard returns the purchase wizard.
func (c *Controller) Wizard() *purchase.Wizard {
	return c.wizard
}

// UserID returns the resolved user identity, empty for anonymous visitors.
func (c *Controller) UserID() string {
	return c.userID
}

// Search filters the catalog and resets to the first page.
func (c *Controller) Search(text string) {
	c.catalog.SetQuery(text)
}

// SetPage moves the catalog view to page n (clamped).
func (c *Controller) SetPage(n int) {
	c.catalog.SetPage(n)
}

// IsFavorite reports whether the book is favorited.
func (c *Controller) IsFavorite(bookID string) bool {
	return c.favorites.IsFavorite(bookID)
}

// ToggleFavorite flips the favorite state of book. Anonymous visitors get
// ErrAuthRequired and are redirected to login by the caller.
func (c *Controller) ToggleFavorite(book books.Book) (bool, error) {
	if c.userID == "" {
		return false, errors.ErrAuthRequired
	}
	return c.favorites.Toggle(book)
}

// StartPurchase begins the purchase wizard for the given catalog book.
func (c *Controller) StartPurchase(bookID string) error {
	book, ok := c.catalog.ByID(bookID)
	if !ok {
		return fmt.Errorf("unknown book: %s", bookID)
	}
	return c.wizard.Start(c.userID, book)
}

// SubmitPurchase performs the wizard's remote write. The completion
// handler runs synchronously before this returns.
func (c *Controller) SubmitPurchase(ctx context.Context) error {
	c.submitCtx = ctx
	defer func() { c.submitCtx = nil }()
	return c.wizard.Submit(ctx, c.userID)
}

// Events returns the recorded side-effect log, oldest first.
func (c *Controller) Events() []string {
	out := make([]string, len(c.events))
	copy(out, c.events)
	return out
}

// handleCompletion reconciles a committed purchase. Order matters: the
// favorite is removed before the catalog reloads so a fresh render can
// never show the purchased book still marked as a favorite.
func (c *Controller) handleCompletion(bookID string) {
	ctx := c.submitCtx
	if ctx == nil {
		ctx = context.Background()
	}

	if c.favorites.IsFavorite(bookID) {
		c.favorites.RemoveIfPresent(bookID)
		c.events = append(c.events, "favorite_removed:"+bookID)
	}

	if c.useCache {
		cache.InvalidateBooks()
	}
	list, err := c.loadBooks(ctx)
	if err != nil {
		slog.Warn("Failed to reload catalog after purchase", "error", err)
	} else {
		c.catalog.Load(list)
		c.events = append(c.events, "catalog_reloaded")
	}

	if c.receiptsDir != "" {
		if record := c.wizard.LastRecord(); record != nil {
			if path, err := receipts.Write(*record, c.receiptsDir); err != nil {
				slog.Warn("Failed to write purchase receipt", "error", err)
			} else {
				slog.Info("Wrote purchase receipt", "path", path)
			}
		}
	}
}

func (c *Controller) loadBooks(ctx context.Context) ([]books.Book, error) {
	if !c.useCache {
		return c.service.GetBooks(ctx)
	}
	list, _, err := cache.GetOrFetch(cache.BooksCacheTable, "all", func() ([]books.Book, error) {
		return c.service.GetBooks(ctx)
	})
	return list, err
}
