package books

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeGenre(t *testing.T) {
	require.Equal(t, "fantasy", NormalizeGenre("Fantasy"))
	require.Equal(t, "science fiction", NormalizeGenre("  Science Fiction "))
	require.Equal(t, "", NormalizeGenre(""))
}

func TestAddressLabel(t *testing.T) {
	addr := Address{
		Street:     "12 MG Road",
		Landmark:   "Near Metro",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "India",
	}
	require.Equal(t, "12 MG Road, Near Metro, Bengaluru, Karnataka, 560001, India", addr.Label())
}

func TestNewPurchaseRecord(t *testing.T) {
	book := Book{
		ID:       "b1",
		Title:    "The Trial",
		Author:   "Franz Kafka",
		Price:    10.00,
		ImageURL: "https://example.com/trial.jpg",
	}
	addr := Address{ID: "a1", City: "Bengaluru"}
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	rec := NewPurchaseRecord("u1", book, 2, addr, now)
	require.Equal(t, "u1", rec.UserID)
	require.Equal(t, "The Trial", rec.BookTitle)
	require.Equal(t, 20.00, rec.TotalPrice)
	require.Equal(t, "2025-03-14T09:26:53Z", rec.PurchasedDate)
	require.Equal(t, "a1", rec.Address.ID)
}

func TestRoundPrice(t *testing.T) {
	// 3 copies at 9.99 hits float accumulation without rounding
	require.Equal(t, 29.97, RoundPrice(9.99*3))
	require.Equal(t, 0.1, RoundPrice(0.1))
	require.Equal(t, 1.0, RoundPrice(0.999))
}
