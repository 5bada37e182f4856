// Package catalog maintains the in-memory book catalog with its filtered,
// paginated view. It does no I/O; loading fresh data is the caller's job.
package catalog

import (
	"strings"

	"github.com/booksadda/storefront/internal/books"
)

// PageSize is the fixed number of books shown per page.
const PageSize = 8

// Index holds the full catalog plus the current filter and page state.
// It is not safe for concurrent use; the storefront runs a single screen.
type Index struct {
	all      []books.Book
	filtered []books.Book
	query    string
	page     int
}

// NewIndex creates an empty catalog index.
func NewIndex() *Index {
	return &Index{}
}

// Load replaces the full catalog and resets the query and page.
func (i *Index) Load(list []books.Book) {
	i.all = make([]books.Book, len(list))
	copy(i.all, list)
	i.query = ""
	i.page = 0
	i.refilter()
}

// SetQuery filters by case-insensitive substring match against title or
// author and resets to the first page. A new search always starts at page 0
// so a shrinking result set never leaves an empty page on screen.
func (i *Index) SetQuery(text string) {
	i.query = strings.ToLower(text)
	i.page = 0
	i.refilter()
}

// Query returns the current search text as entered (lowercased).
func (i *Index) Query() string {
	return i.query
}

// SetPage moves to page n, clamped to the valid range. Out-of-range
// requests come from stale pagination controls and are tolerated.
func (i *Index) SetPage(n int) {
	maxPage := i.PageCount() - 1
	if maxPage < 0 {
		maxPage = 0
	}
	if n < 0 {
		n = 0
	}
	if n > maxPage {
		n = maxPage
	}
	i.page = n
}

// Page returns the current page number.
func (i *Index) Page() int {
	return i.page
}

// PageCount returns the number of pages in the filtered view.
func (i *Index) PageCount() int {
	return (len(i.filtered) + PageSize - 1) / PageSize
}

// FilteredLen returns the number of books matching the current query.
func (i *Index) FilteredLen() int {
	return len(i.filtered)
}

// CurrentPage returns the slice of the filtered view for the current page.
func (i *Index) CurrentPage() []books.Book {
	start := i.page * PageSize
	if start >= len(i.filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(i.filtered) {
		end = len(i.filtered)
	}
	page := make([]books.Book, end-start)
	copy(page, i.filtered[start:end])
	return page
}

// Filtered returns a copy of every book matching the current query,
// ignoring pagination.
func (i *Index) Filtered() []books.Book {
	out := make([]books.Book, len(i.filtered))
	copy(out, i.filtered)
	return out
}

// ByID looks up a book in the full catalog.
func (i *Index) ByID(id string) (books.Book, bool) {
	for _, b := range i.all {
		if b.ID == id {
			return b, true
		}
	}
	return books.Book{}, false
}

func (i *Index) refilter() {
	if i.query == "" {
		i.filtered = i.all
		return
	}
	filtered := make([]books.Book, 0, len(i.all))
	for _, b := range i.all {
		if strings.Contains(strings.ToLower(b.Title), i.query) ||
			strings.Contains(strings.ToLower(b.Author), i.query) {
			filtered = append(filtered, b)
		}
	}
	i.filtered = filtered
}
