package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/booksadda/storefront/internal/api"
	"github.com/booksadda/storefront/internal/config"
	"github.com/booksadda/storefront/internal/errors"
	"github.com/booksadda/storefront/internal/favorites"
	"github.com/booksadda/storefront/internal/storefront"
)

// session bundles the per-command runtime: the local database, the API
// client and the storefront controller built around the persisted user.
type session struct {
	db         *favorites.DB
	client     *api.Client
	controller *storefront.Controller
}

func openSession() (*session, error) {
	db, err := favorites.Open(config.FavoritesDBFile)
	if err != nil {
		return nil, err
	}

	store, err := favorites.NewStore(db)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	userID, err := db.UserID()
	if err != nil {
		closeDB(db)
		return nil, err
	}

	client := api.NewClient(
		api.WithBaseURL(config.APIBaseURL),
		api.WithTimeout(config.APITimeout),
	)

	controller := storefront.New(client, store, userID,
		storefront.WithReceiptsDir(config.ReceiptsOutputDir),
		storefront.WithCatalogCache(!viper.GetBool("cache.disabled")),
	)

	return &session{db: db, client: client, controller: controller}, nil
}

func (s *session) close() {
	closeDB(s.db)
}

// requireUser returns the logged-in user identifier or a login hint when
// the session is anonymous.
func (s *session) requireUser() (string, error) {
	userID := s.controller.UserID()
	if userID == "" {
		return "", fmt.Errorf("%w: run \"storefront login <user-id>\" first", errors.ErrAuthRequired)
	}
	return userID, nil
}

func closeDB(db *favorites.DB) {
	if err := db.Close(); err != nil {
		slog.Warn("Failed to close storefront database", "error", err)
	}
}
