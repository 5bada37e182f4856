// Package cache provides a SQLite-backed TTL cache for remote catalog data.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

// DefaultTTL is the default time-to-live for cached entries.
const DefaultTTL = time.Hour

// BooksCacheTable holds the cached catalog payload.
const BooksCacheTable = "books_cache"

const booksCacheSchema = `
CREATE TABLE IF NOT EXISTS books_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_books_cached_at ON books_cache(cached_at);
`

// validTableNames is the whitelist of allowed cache table names, guarding
// the table-name interpolation below.
var validTableNames = map[string]bool{
	BooksCacheTable: true,
}

// FetchFunc fetches data from the remote service on a cache miss.
type FetchFunc[T any] func() (T, error)

// CacheDB manages the SQLite database connection for caching.
type CacheDB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

var (
	globalCache     *CacheDB
	globalCacheOnce sync.Once
)

// ResetGlobalCache closes the current global cache and resets the
// singleton. Primarily for tests.
func ResetGlobalCache() error {
	if globalCache != nil {
		if err := globalCache.Close(); err != nil {
			return err
		}
	}
	globalCache = nil
	globalCacheOnce = sync.Once{}
	return nil
}

// GetGlobalCache returns the singleton cache database instance.
func GetGlobalCache() (*CacheDB, error) {
	var initErr error
	globalCacheOnce.Do(func() {
		dbPath := viper.GetString("cache.dbfile")
		if dbPath == "" {
			dbPath = "./cache.db"
		}
		globalCache, initErr = NewCacheDB(dbPath)
	})
	if initErr != nil {
		return nil, initErr
	}
	return globalCache, nil
}

// NewCacheDB opens the cache database at dbPath and ensures its tables.
func NewCacheDB(dbPath string) (*CacheDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(booksCacheSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &CacheDB{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (c *CacheDB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get retrieves a cached value. Returns the data, whether it was fresh
// enough to use, and any error.
func (c *CacheDB) Get(tableName, key string, ttl time.Duration) (string, bool, error) {
	if err := validateTableName(tableName); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`SELECT data, cached_at FROM %s WHERE cache_key = ?`, tableName)

	var data string
	var cachedAt time.Time
	err := c.db.QueryRow(query, key).Scan(&data, &cachedAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	age := time.Now().UTC().Sub(cachedAt)
	if age > ttl {
		slog.Debug("Cache expired", "table", tableName, "key", key, "age", age)
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a value in the cache.
func (c *CacheDB) Set(tableName, key, data string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, data, cached_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, tableName)
	if _, err := c.db.Exec(query, key, data); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Invalidate deletes all entries from the specified cache table. Used
// after a purchase so the next catalog read goes back to the service.
func (c *CacheDB) Invalidate(tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf("DELETE FROM %s", tableName)
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Debug("Cache table cleared", "table", tableName)
	return nil
}

func validateTableName(tableName string) error {
	if !validTableNames[tableName] {
		return fmt.Errorf("invalid cache table name: %s", tableName)
	}
	return nil
}

// GetOrFetch retrieves data from cache or fetches it with fetchFunc on a
// miss. If the cache cannot be opened the fetch happens directly; caching
// failures are logged, never fatal. Returns the data and whether it came
// from cache.
func GetOrFetch[T any](tableName, cacheKey string, fetchFunc FetchFunc[T]) (T, bool, error) {
	var zero T

	cacheDB, err := GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to initialize cache, fetching directly", "error", err)
		data, fetchErr := fetchFunc()
		return data, false, fetchErr
	}

	ttl := DefaultTTL
	if ttlStr := viper.GetString("cache.ttl"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		} else {
			slog.Warn("Invalid cache TTL, using default", "ttl", ttlStr, "error", err)
		}
	}

	cached, fromCache, err := cacheDB.Get(tableName, cacheKey, ttl)
	if err == nil && fromCache {
		var result T
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			slog.Debug("Cache hit", "table", tableName, "key", cacheKey)
			return result, true, nil
		}
		slog.Warn("Failed to unmarshal cached data, will refetch", "table", tableName, "key", cacheKey, "error", err)
	}

	slog.Debug("Cache miss, fetching data", "table", tableName, "key", cacheKey)
	data, err := fetchFunc()
	if err != nil {
		return zero, false, fmt.Errorf("failed to fetch data: %w", err)
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to marshal data for caching", "table", tableName, "key", cacheKey, "error", err)
	} else if err := cacheDB.Set(tableName, cacheKey, string(jsonData)); err != nil {
		slog.Warn("Failed to cache data", "table", tableName, "key", cacheKey, "error", err)
	}

	return data, false, nil
}

// InvalidateBooks clears the cached catalog. A missing cache is fine.
func InvalidateBooks() {
	cacheDB, err := GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to open cache for invalidation", "error", err)
		return
	}
	if err := cacheDB.Invalidate(BooksCacheTable); err != nil {
		slog.Warn("Failed to invalidate books cache", "error", err)
	}
}
