package cmd

import (
	"context"
	"fmt"

	"github.com/booksadda/storefront/internal/books"
)

// BooksCmd represents the non-interactive catalog listing command
type BooksCmd struct {
	Search string `short:"s" help:"Filter by title or author substring"`
	Page   int    `short:"p" help:"Page to show (starting at 1)" default:"1"`
	All    bool   `help:"List every matching book, ignoring pagination"`
}

func (b *BooksCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.controller.Activate(context.Background()); err != nil {
		return err
	}

	if b.Search != "" {
		s.controller.Search(b.Search)
	}
	index := s.controller.Catalog()

	var list []books.Book
	if b.All {
		list = index.Filtered()
	} else {
		s.controller.SetPage(b.Page - 1)
		list = index.CurrentPage()
	}

	if len(list) == 0 {
		fmt.Println("No books found")
		return nil
	}

	for _, book := range list {
		marker := " "
		if s.controller.IsFavorite(book.ID) {
			marker = "*"
		}
		fmt.Printf("%s %-26s %-24s %-20s Rs. %8.2f  %d in stock\n",
			marker, book.ID, book.Title, book.Author, book.Price, book.CopiesAvailable)
	}

	if !b.All && index.PageCount() > 1 {
		fmt.Printf("\nPage %d/%d (%d books). Use --page or --all.\n",
			index.Page()+1, index.PageCount(), index.FilteredLen())
	}
	return nil
}
