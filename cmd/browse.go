package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/booksadda/storefront/internal/errors"
	"github.com/booksadda/storefront/internal/purchase"
	"github.com/booksadda/storefront/internal/storefront"
	"github.com/booksadda/storefront/internal/tui"
)

// BrowseCmd represents the interactive browse command
type BrowseCmd struct{}

func (b *BrowseCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()
	if err := s.controller.Activate(ctx); err != nil {
		return err
	}

	for {
		result, err := tui.Browse(s.controller.Catalog(), s.controller.IsFavorite)
		if err != nil {
			return err
		}
		if result.Action != tui.ActionSelected {
			return nil
		}

		if result.ToggleFavorite {
			if err := toggleFavorite(s, result.BookID); err != nil {
				return err
			}
			continue
		}

		if err := runPurchaseFlow(ctx, s, result.BookID); err != nil {
			if errors.IsValidationError(err) || errors.IsAuthRequired(err) {
				fmt.Println(err.Error())
				continue
			}
			return err
		}
	}
}

func toggleFavorite(s *session, bookID string) error {
	book, ok := s.controller.Catalog().ByID(bookID)
	if !ok {
		return fmt.Errorf("unknown book: %s", bookID)
	}

	added, err := s.controller.ToggleFavorite(book)
	if errors.IsAuthRequired(err) {
		fmt.Println("You need to log in to favorite books: storefront login <user-id>")
		return nil
	}
	if err != nil {
		return err
	}

	if added {
		fmt.Printf("Added %q to favorites\n", book.Title)
	} else {
		fmt.Printf("Removed %q from favorites\n", book.Title)
	}
	return nil
}

// runPurchaseFlow drives the wizard through its interactive steps. A
// cancelled step cancels the whole run; validation failures re-prompt.
func runPurchaseFlow(ctx context.Context, s *session, bookID string) error {
	if err := s.controller.StartPurchase(bookID); err != nil {
		return err
	}
	wizard := s.controller.Wizard()

	validation := ""
	for {
		result, err := tui.PromptQuantity(wizard.Book(), validation)
		if err != nil {
			return err
		}
		if result.Action != tui.ActionSelected {
			return wizard.Cancel()
		}

		quantity, err := purchase.ParseQuantity(result.Input)
		if err != nil {
			validation = err.Error()
			continue
		}
		if err := wizard.ConfirmQuantity(quantity); err != nil {
			var valErr *errors.ValidationError
			if stderrors.As(err, &valErr) {
				validation = valErr.Message
				continue
			}
			return err
		}
		break
	}

	addressResult, err := tui.SelectAddress(s.controller.Addresses().Current())
	if err != nil {
		return err
	}
	if addressResult.Action != tui.ActionSelected {
		return wizard.Cancel()
	}
	if err := wizard.ConfirmAddress(addressResult.AddressID); err != nil {
		return err
	}

	if err := s.controller.SubmitPurchase(ctx); err != nil {
		return err
	}

	printReceipt(s.controller)
	return nil
}

func printReceipt(controller *storefront.Controller) {
	record := controller.Wizard().LastRecord()
	if record == nil {
		return
	}
	fmt.Printf("Purchased %d x %q for Rs. %.2f, delivering to %s\n",
		record.Quantity, record.BookTitle, record.TotalPrice, record.Address.Label())
}
