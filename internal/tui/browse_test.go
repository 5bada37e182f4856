package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/catalog"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testCatalog(n int) *catalog.Index {
	list := make([]books.Book, n)
	for i := range list {
		list[i] = books.Book{
			ID:              fmt.Sprintf("b%02d", i),
			Title:           fmt.Sprintf("Book %02d", i),
			Author:          "Author",
			Price:           9.99,
			CopiesAvailable: 3,
		}
	}
	idx := catalog.NewIndex()
	idx.Load(list)
	return idx
}

func noFavorites(string) bool { return false }

func TestBrowseEnterSelectsBook(t *testing.T) {
	m := newBrowseModel(testCatalog(3), noFavorites)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command after enter")
	}
	if m.result.Action != ActionSelected {
		t.Errorf("expected ActionSelected, got %v", m.result.Action)
	}
	if m.result.BookID != "b00" {
		t.Errorf("expected first book selected, got %q", m.result.BookID)
	}
	if m.result.ToggleFavorite {
		t.Error("enter must not request a favorite toggle")
	}
}

func TestBrowseFavoriteKey(t *testing.T) {
	m := newBrowseModel(testCatalog(3), noFavorites)

	_, _ = m.Update(keyRune('f'))
	if m.result.Action != ActionSelected || !m.result.ToggleFavorite {
		t.Errorf("expected favorite toggle result, got %+v", m.result)
	}
}

func TestBrowsePageNavigation(t *testing.T) {
	idx := testCatalog(catalog.PageSize*2 + 1) // three pages
	m := newBrowseModel(idx, noFavorites)

	if got := len(m.list.Items()); got != catalog.PageSize {
		t.Fatalf("expected a full first page, got %d items", got)
	}

	_, _ = m.Update(keyRune('n'))
	if idx.Page() != 1 {
		t.Errorf("expected page 1 after next, got %d", idx.Page())
	}

	_, _ = m.Update(keyRune('n'))
	_, _ = m.Update(keyRune('n')) // past the end, clamps
	if idx.Page() != 2 {
		t.Errorf("expected clamp at page 2, got %d", idx.Page())
	}
	if got := len(m.list.Items()); got != 1 {
		t.Errorf("expected one item on the last page, got %d", got)
	}

	_, _ = m.Update(keyRune('p'))
	if idx.Page() != 1 {
		t.Errorf("expected page 1 after prev, got %d", idx.Page())
	}
}

func TestBrowseSearchResetsToFirstPage(t *testing.T) {
	idx := testCatalog(catalog.PageSize + 2)
	m := newBrowseModel(idx, noFavorites)

	_, _ = m.Update(keyRune('n'))
	if idx.Page() != 1 {
		t.Fatalf("expected page 1, got %d", idx.Page())
	}

	_, _ = m.Update(keyRune('/'))
	if !m.searching {
		t.Fatal("expected search mode after /")
	}

	for _, r := range "book 03" {
		_, _ = m.Update(keyRune(r))
	}
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.searching {
		t.Error("expected search mode to end on enter")
	}
	if idx.Page() != 0 {
		t.Errorf("search must reset to the first page, got %d", idx.Page())
	}
	if idx.FilteredLen() != 1 {
		t.Errorf("expected one match, got %d", idx.FilteredLen())
	}
	if got := len(m.list.Items()); got != 1 {
		t.Errorf("expected one visible item, got %d", got)
	}
}

func TestBrowseSearchEscKeepsFilter(t *testing.T) {
	idx := testCatalog(4)
	idx.SetQuery("book 01")
	m := newBrowseModel(idx, noFavorites)

	_, _ = m.Update(keyRune('/'))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.searching {
		t.Error("expected search mode to end on esc")
	}
	if idx.Query() != "book 01" {
		t.Errorf("esc must leave the active filter untouched, got %q", idx.Query())
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newBrowseModel(testCatalog(1), noFavorites)

	_, _ = m.Update(keyRune('q'))
	if m.result.Action != ActionQuit {
		t.Errorf("expected ActionQuit, got %v", m.result.Action)
	}
}

func TestBrowseFavoriteMarker(t *testing.T) {
	idx := testCatalog(2)
	m := newBrowseModel(idx, func(id string) bool { return id == "b01" })

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].(bookItem).favorite {
		t.Error("b00 must not be marked favorite")
	}
	if !items[1].(bookItem).favorite {
		t.Error("b01 must be marked favorite")
	}
}
