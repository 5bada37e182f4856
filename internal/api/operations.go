package api

import (
	"context"
	"net/http"

	"github.com/booksadda/storefront/internal/books"
)

// GetBooks fetches the full catalog. Genres are normalized to lowercase
// here because the service returns them in mixed case.
func (c *Client) GetBooks(ctx context.Context) ([]books.Book, error) {
	var result []books.Book
	if err := c.doJSON(ctx, "fetch books", http.MethodGet, "/books", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Genre = books.NormalizeGenre(result[i].Genre)
	}
	return result, nil
}

// GetUser fetches a user profile by identifier.
func (c *Client) GetUser(ctx context.Context, userID string) (*books.User, error) {
	var user books.User
	if err := c.doJSON(ctx, "fetch user", http.MethodGet, "/users/"+userID, nil, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAddresses fetches the delivery addresses of a user.
func (c *Client) GetAddresses(ctx context.Context, userID string) ([]books.Address, error) {
	var result []books.Address
	if err := c.doJSON(ctx, "fetch addresses", http.MethodGet, "/address/"+userID, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// AddAddress creates a new delivery address. The service answers 201 on
// successful creation.
func (c *Client) AddAddress(ctx context.Context, address books.Address) error {
	return c.doJSON(ctx, "add address", http.MethodPost, "/address", address, http.StatusCreated, nil)
}

// UpdateAddress replaces an existing address.
func (c *Client) UpdateAddress(ctx context.Context, addressID string, address books.Address) error {
	return c.doJSON(ctx, "update address", http.MethodPut, "/address/"+addressID, address, http.StatusOK, nil)
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	return c.doJSON(ctx, "delete address", http.MethodDelete, "/address/"+addressID, nil, http.StatusOK, nil)
}

// CreatePurchase submits a committed purchase. The service answers 201 on
// acknowledged creation; anything else is a failure and is not retried.
func (c *Client) CreatePurchase(ctx context.Context, record books.PurchaseRecord) error {
	return c.doJSON(ctx, "create purchase", http.MethodPost, "/purchase", record, http.StatusCreated, nil)
}
