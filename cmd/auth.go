package cmd

import (
	"context"
	"fmt"

	"github.com/booksadda/storefront/internal/api"
	"github.com/booksadda/storefront/internal/config"
	"github.com/booksadda/storefront/internal/favorites"
)

// LoginCmd persists a user session after validating the identity remotely
type LoginCmd struct {
	UserID string `arg:"" help:"Books Adda user identifier"`
}

func (l *LoginCmd) Run() error {
	client := api.NewClient(
		api.WithBaseURL(config.APIBaseURL),
		api.WithTimeout(config.APITimeout),
	)

	user, err := client.GetUser(context.Background(), l.UserID)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	db, err := favorites.Open(config.FavoritesDBFile)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := db.SetUserID(user.ID); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", user.Username)
	return nil
}

// LogoutCmd clears the persisted session
type LogoutCmd struct{}

func (l *LogoutCmd) Run() error {
	db, err := favorites.Open(config.FavoritesDBFile)
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := db.ClearUserID(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
