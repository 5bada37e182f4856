package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.Set("cache.dbfile", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, ResetGlobalCache())
	t.Cleanup(func() {
		_ = ResetGlobalCache()
		viper.Reset()
	})
}

func TestGetOrFetchCachesSecondCall(t *testing.T) {
	setupCache(t)

	var fetches int
	fetch := func() ([]string, error) {
		fetches++
		return []string{"b1", "b2"}, nil
	}

	data, fromCache, err := GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)
	require.False(t, fromCache)
	require.Equal(t, []string{"b1", "b2"}, data)

	data, fromCache, err = GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)
	require.True(t, fromCache)
	require.Equal(t, []string{"b1", "b2"}, data)
	require.Equal(t, 1, fetches)
}

func TestGetOrFetchExpiredEntryRefetches(t *testing.T) {
	setupCache(t)
	viper.Set("cache.ttl", "1ns")

	var fetches int
	fetch := func() (string, error) {
		fetches++
		return "payload", nil
	}

	_, _, err := GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, fromCache, err := GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)
	require.False(t, fromCache)
	require.Equal(t, 2, fetches)
}

func TestInvalidateBooksForcesRefetch(t *testing.T) {
	setupCache(t)

	var fetches int
	fetch := func() (string, error) {
		fetches++
		return "payload", nil
	}

	_, _, err := GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)

	InvalidateBooks()

	_, fromCache, err := GetOrFetch(BooksCacheTable, "all", fetch)
	require.NoError(t, err)
	require.False(t, fromCache)
	require.Equal(t, 2, fetches)
}

func TestValidateTableName(t *testing.T) {
	setupCache(t)

	cacheDB, err := GetGlobalCache()
	require.NoError(t, err)

	_, _, err = cacheDB.Get("favorites; DROP TABLE books_cache", "k", time.Hour)
	require.Error(t, err)

	require.Error(t, cacheDB.Set("unknown_table", "k", "v"))
	require.Error(t, cacheDB.Invalidate("unknown_table"))
}
