package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/booksadda/storefront/internal/config"
)

// CLI represents the complete command structure for the storefront application
type CLI struct {
	// Global flags
	UpdateCovers bool `help:"Re-download cover images even if they already exist"`

	DBFile string `help:"Path to the storefront SQLite database (favorites and session)" default:"./storefront.db"`
	APIURL string `help:"Base URL of the Books Adda backend (defaults to the hosted service)"`

	// Cache flags
	NoCache     bool   `help:"Bypass the catalog cache and always fetch fresh data"`
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Catalog cache time-to-live duration (e.g., 1h)" default:"1h"`

	ReceiptsDir string `help:"Directory for purchase receipt files" default:"./receipts/"`
	CoversDir   string `help:"Directory for downloaded cover images" default:"./covers/"`

	Browse   BrowseCmd   `cmd:"" help:"Browse the catalog interactively"`
	Books    BooksCmd    `cmd:"" help:"List catalog books"`
	Favorite FavoriteCmd `cmd:"" help:"Toggle or list favorite books"`
	Buy      BuyCmd      `cmd:"" help:"Purchase a book without the interactive screen"`
	Address  AddressCmd  `cmd:"" help:"Manage delivery addresses"`
	Login    LoginCmd    `cmd:"" help:"Log in as a Books Adda user"`
	Logout   LogoutCmd   `cmd:"" help:"Log out and clear the persisted session"`
	Covers   CoversCmd   `cmd:"" help:"Download cover images for the catalog"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("storefront"),
		kong.Description("A storefront for the Books Adda catalog: browse, favorite and purchase books."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("api.baseurl", "https://books-adda-backend.onrender.com")
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("favorites.dbfile", "./storefront.db")
	viper.SetDefault("receipts.outputdir", "./receipts/")
	viper.SetDefault("covers.outputdir", "./covers/")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "1h")

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("api.baseurl", "BOOKSADDA_API_URL"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetUpdateCovers(cli.UpdateCovers)

	viper.Set("favorites.dbfile", cli.DBFile)
	viper.Set("receipts.outputdir", cli.ReceiptsDir)
	viper.Set("covers.outputdir", cli.CoversDir)

	// Update cache config
	viper.Set("cache.disabled", cli.NoCache)
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)

	if cli.APIURL != "" {
		viper.Set("api.baseurl", cli.APIURL)
	}

	// Recompute the config snapshot now that flag overrides are in place
	config.InitConfig()
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("STOREFRONT_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
