package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/booksadda/storefront/internal/config"
	"github.com/booksadda/storefront/internal/covers"
)

// CoversCmd downloads resized cover images for the catalog
type CoversCmd struct {
	Favorites bool `help:"Only download covers for favorited books"`
}

func (c *CoversCmd) Run() error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()
	if err := s.controller.Activate(ctx); err != nil {
		return err
	}

	list := s.controller.Catalog().Filtered()
	downloader := covers.NewDownloader(config.CoversOutputDir)

	saved := 0
	for _, book := range list {
		if c.Favorites && !s.controller.IsFavorite(book.ID) {
			continue
		}
		path, err := downloader.Fetch(ctx, book.Title, book.ImageURL, config.UpdateCovers)
		if err != nil {
			slog.Warn("Failed to download cover", "title", book.Title, "error", err)
			continue
		}
		slog.Debug("Saved cover", "path", path)
		saved++
	}

	fmt.Printf("Saved %d covers to %s\n", saved, config.CoversOutputDir)
	return nil
}
