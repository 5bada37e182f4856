// Package config holds the process-wide configuration snapshot read from viper.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// APIBaseURL is the base URL of the Books Adda backend service
	APIBaseURL string
	// APITimeout bounds every remote call issued by the storefront
	APITimeout time.Duration
	// FavoritesDBFile is the SQLite file holding the favorites mirror and session
	FavoritesDBFile string
	// ReceiptsOutputDir is where purchase receipts are written
	ReceiptsOutputDir string
	// CoversOutputDir is where downloaded cover images are stored
	CoversOutputDir string
	// UpdateCovers controls whether existing cover images are re-downloaded
	UpdateCovers bool
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("api.baseurl", "https://books-adda-backend.onrender.com")
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("favorites.dbfile", "./storefront.db")
	viper.SetDefault("receipts.outputdir", "./receipts/")
	viper.SetDefault("covers.outputdir", "./covers/")

	APIBaseURL = viper.GetString("api.baseurl")
	APITimeout = viper.GetDuration("api.timeout")
	if APITimeout <= 0 {
		APITimeout = 10 * time.Second
	}
	FavoritesDBFile = viper.GetString("favorites.dbfile")
	ReceiptsOutputDir = viper.GetString("receipts.outputdir")
	CoversOutputDir = viper.GetString("covers.outputdir")
}

// SetAPIBaseURL overrides the backend base URL (used by CLI flags and tests).
func SetAPIBaseURL(url string) {
	APIBaseURL = url
}

// SetUpdateCovers sets whether existing cover images are re-downloaded.
func SetUpdateCovers(value bool) {
	UpdateCovers = value
}
