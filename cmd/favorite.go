package cmd

import (
	"context"
	"fmt"
)

// FavoriteCmd represents the favorite toggle/list command
type FavoriteCmd struct {
	BookID string `arg:"" optional:"" help:"Book to toggle"`
	List   bool   `short:"l" help:"List favorited books"`
}

func (f *FavoriteCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.controller.Activate(context.Background()); err != nil {
		return err
	}

	if f.List {
		return f.list(s)
	}

	if f.BookID == "" {
		return fmt.Errorf("book identifier is required (or use --list)")
	}
	if _, err := s.requireUser(); err != nil {
		return err
	}
	return toggleFavorite(s, f.BookID)
}

func (f *FavoriteCmd) list(s *session) error {
	ids := s.controller.Favorites().IDs()
	if len(ids) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}

	for _, id := range ids {
		if book, ok := s.controller.Catalog().ByID(id); ok {
			fmt.Printf("%-26s %-24s %s\n", id, book.Title, book.Author)
		} else {
			// favorited before the book left the catalog
			fmt.Printf("%-26s (no longer in catalog)\n", id)
		}
	}
	return nil
}
