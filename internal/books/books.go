// Package books holds the core domain types for the Books Adda storefront.
package books

import (
	"math"
	"strings"
	"time"
)

// Book is a purchasable catalog entry as fetched from the remote service.
// Books are immutable per fetch; the catalog is replaced wholesale on reload.
type Book struct {
	ID              string  `json:"_id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Price           float64 `json:"price"`
	ImageURL        string  `json:"imageUrl"`
	Genre           string  `json:"genre"`
	CopiesAvailable int     `json:"copiesAvailable"`
	Summary         string  `json:"summary"`
}

// Address is a delivery address owned by a user. Addresses are created and
// edited only through explicit address-book commands; the purchase flow
// reads them but never mutates them.
type Address struct {
	ID         string `json:"_id"`
	UserID     string `json:"userId"`
	Street     string `json:"street"`
	Landmark   string `json:"landmark"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Label returns the single-line display form of the address.
func (a Address) Label() string {
	return strings.Join([]string{a.Street, a.Landmark, a.City, a.State, a.PostalCode, a.Country}, ", ")
}

// User is the slice of the remote user profile the storefront needs.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PurchaseRecord is the committed transaction sent to the purchase endpoint.
// It is a fact record: created once on successful submission, never mutated.
type PurchaseRecord struct {
	UserID        string  `json:"userId"`
	BookTitle     string  `json:"bookTitle"`
	BookImageURL  string  `json:"bookimageUrl"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"totalPrice"`
	PurchasedDate string  `json:"purchasedDate"`
	Address       Address `json:"address"`
}

// NewPurchaseRecord builds the record for a purchase of quantity copies of
// book, delivered to address. The total is computed from the book's current
// price and rounded to cents, matching the precision the service stores.
func NewPurchaseRecord(userID string, book Book, quantity int, address Address, now time.Time) PurchaseRecord {
	return PurchaseRecord{
		UserID:        userID,
		BookTitle:     book.Title,
		BookImageURL:  book.ImageURL,
		Author:        book.Author,
		Price:         book.Price,
		Quantity:      quantity,
		TotalPrice:    RoundPrice(book.Price * float64(quantity)),
		PurchasedDate: now.UTC().Format(time.RFC3339),
		Address:       address,
	}
}

// RoundPrice rounds a currency amount to two decimal places.
func RoundPrice(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// NormalizeGenre lowercases a genre for filtering and matching. The remote
// service returns genres in mixed case; normalization is the consumer's job.
func NormalizeGenre(genre string) string {
	return strings.ToLower(strings.TrimSpace(genre))
}
