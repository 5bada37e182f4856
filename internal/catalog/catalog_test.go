package catalog

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/booksadda/storefront/internal/books"
)

func makeBooks(n int) []books.Book {
	list := make([]books.Book, n)
	for i := range list {
		list[i] = books.Book{
			ID:     fmt.Sprintf("b%d", i),
			Title:  fmt.Sprintf("Book %02d", i),
			Author: fmt.Sprintf("Author %02d", i),
		}
	}
	return list
}

func TestLoadResetsState(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(17))
	idx.SetQuery("book 0")
	idx.SetPage(1)

	idx.Load(makeBooks(5))
	assert.Equal(t, "", idx.Query())
	assert.Equal(t, 0, idx.Page())
	assert.Equal(t, 5, idx.FilteredLen())
}

func TestPaginationDeterminism(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(17))

	assert.Equal(t, 3, idx.PageCount())

	page0 := idx.CurrentPage()
	assert.Equal(t, 8, len(page0))
	assert.Equal(t, "b0", page0[0].ID)
	assert.Equal(t, "b7", page0[7].ID)

	idx.SetPage(1)
	page1 := idx.CurrentPage()
	assert.Equal(t, 8, len(page1))
	assert.Equal(t, "b8", page1[0].ID)
	assert.Equal(t, "b15", page1[7].ID)

	idx.SetPage(2)
	page2 := idx.CurrentPage()
	assert.Equal(t, 1, len(page2))
	assert.Equal(t, "b16", page2[0].ID)

	// page 3 does not exist: clamp to page 2, same content
	idx.SetPage(3)
	assert.Equal(t, 2, idx.Page())
	assert.Equal(t, page2, idx.CurrentPage())
}

func TestSetPageClampsNegative(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(17))
	idx.SetPage(-4)
	assert.Equal(t, 0, idx.Page())
}

func TestSearchMatchesTitleOrAuthor(t *testing.T) {
	idx := NewIndex()
	idx.Load([]books.Book{
		{ID: "b1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "b2", Title: "Emma", Author: "Jane Austen"},
		{ID: "b3", Title: "Persuasion", Author: "Jane Austen"},
	})

	idx.SetQuery("AUSTEN")
	assert.Equal(t, 2, idx.FilteredLen())

	idx.SetQuery("dun")
	assert.Equal(t, 1, idx.FilteredLen())
	assert.Equal(t, "b1", idx.CurrentPage()[0].ID)

	idx.SetQuery("zeppelin")
	assert.Equal(t, 0, idx.FilteredLen())
	assert.Equal(t, 0, len(idx.CurrentPage()))
}

func TestSearchResetsPage(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(17))
	idx.SetPage(2)

	// resets even when the query matches nothing
	idx.SetQuery("no such book")
	assert.Equal(t, 0, idx.Page())

	idx.SetQuery("")
	idx.SetPage(2)
	idx.SetQuery("book")
	assert.Equal(t, 0, idx.Page())
}

func TestByID(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(3))

	b, ok := idx.ByID("b1")
	assert.True(t, ok)
	assert.Equal(t, "Book 01", b.Title)

	_, ok = idx.ByID("missing")
	assert.False(t, ok)
}

func TestCurrentPageIsACopy(t *testing.T) {
	idx := NewIndex()
	idx.Load(makeBooks(2))

	page := idx.CurrentPage()
	page[0].Title = "mutated"

	fresh := idx.CurrentPage()
	assert.Equal(t, "Book 00", fresh[0].Title)
}
