package favorites

import (
	stderrors "errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/errors"
)

// fakeMirror records operations and can be told to fail.
type fakeMirror struct {
	ids     map[string]struct{}
	failAdd bool
	failDel bool
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{ids: make(map[string]struct{})}
}

func (m *fakeMirror) Add(bookID string) error {
	if m.failAdd {
		return stderrors.New("mirror write failed")
	}
	m.ids[bookID] = struct{}{}
	return nil
}

func (m *fakeMirror) Remove(bookID string) error {
	if m.failDel {
		return stderrors.New("mirror delete failed")
	}
	delete(m.ids, bookID)
	return nil
}

func (m *fakeMirror) IDs() ([]string, error) {
	var ids []string
	for id := range m.ids {
		ids = append(ids, id)
	}
	return ids, nil
}

func mirrorHas(m *fakeMirror, id string) bool {
	_, ok := m.ids[id]
	return ok
}

func requireConsistent(t *testing.T, store *Store, mirror *fakeMirror, id string) {
	t.Helper()
	require.Equal(t, store.IsFavorite(id), mirrorHas(mirror, id),
		"in-process and mirror disagree on %s", id)
}

func TestToggleAddsAndRemoves(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	book := books.Book{ID: "b1"}

	on, err := store.Toggle(book)
	require.NoError(t, err)
	require.True(t, on)
	require.True(t, store.IsFavorite("b1"))
	require.True(t, mirrorHas(mirror, "b1"))

	on, err = store.Toggle(book)
	require.NoError(t, err)
	require.False(t, on)
	require.False(t, store.IsFavorite("b1"))
	require.False(t, mirrorHas(mirror, "b1"))
}

func TestToggleSequencesStayConsistent(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	sequence := []string{"b1", "b2", "b1", "b3", "b3", "b2", "b1"}
	for _, id := range sequence {
		_, err := store.Toggle(books.Book{ID: id})
		require.NoError(t, err)
		for _, check := range []string{"b1", "b2", "b3"} {
			requireConsistent(t, store, mirror, check)
		}
	}
}

func TestToggleRollsBackOnAddFailure(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	mirror.failAdd = true
	on, err := store.Toggle(books.Book{ID: "b1"})
	require.Error(t, err)
	require.True(t, errors.IsConsistencyError(err))
	require.False(t, on)
	require.False(t, store.IsFavorite("b1"))
	requireConsistent(t, store, mirror, "b1")
}

func TestToggleRollsBackOnRemoveFailure(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	_, err = store.Toggle(books.Book{ID: "b1"})
	require.NoError(t, err)

	mirror.failDel = true
	on, err := store.Toggle(books.Book{ID: "b1"})
	require.True(t, errors.IsConsistencyError(err))
	require.True(t, on, "book must still read as favorite after rollback")
	require.True(t, store.IsFavorite("b1"))
	requireConsistent(t, store, mirror, "b1")
}

func TestRemoveIfPresentIdempotent(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	_, err = store.Toggle(books.Book{ID: "b1"})
	require.NoError(t, err)

	store.RemoveIfPresent("b1")
	require.False(t, store.IsFavorite("b1"))
	require.False(t, mirrorHas(mirror, "b1"))

	// second removal is a no-op with identical observable state
	store.RemoveIfPresent("b1")
	require.False(t, store.IsFavorite("b1"))
	require.False(t, mirrorHas(mirror, "b1"))
}

func TestRemoveIfPresentRollsBackOnMirrorError(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewStore(mirror)
	require.NoError(t, err)

	_, err = store.Toggle(books.Book{ID: "b1"})
	require.NoError(t, err)

	mirror.failDel = true
	store.RemoveIfPresent("b1")
	require.True(t, store.IsFavorite("b1"))
	requireConsistent(t, store, mirror, "b1")
}

func TestNewStoreWarmsFromMirror(t *testing.T) {
	mirror := newFakeMirror()
	mirror.ids["b1"] = struct{}{}
	mirror.ids["b2"] = struct{}{}

	store, err := NewStore(mirror)
	require.NoError(t, err)
	require.True(t, store.IsFavorite("b1"))
	require.True(t, store.IsFavorite("b2"))

	ids := store.IDs()
	sort.Strings(ids)
	require.Equal(t, []string{"b1", "b2"}, ids)
}
