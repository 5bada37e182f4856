package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/booksadda/storefront/internal/books"
	"github.com/booksadda/storefront/internal/catalog"
)

// BrowseResult holds the outcome of the catalog browse screen.
type BrowseResult struct {
	Action Action
	BookID string
	// ToggleFavorite is set when the user asked to flip the selected
	// book's favorite state instead of buying it.
	ToggleFavorite bool
}

type bookItem struct {
	books.Book
	favorite bool
}

func (i bookItem) Title() string       { return i.Book.Title }
func (i bookItem) Description() string { return i.Author }
func (i bookItem) FilterValue() string { return i.Book.Title + " " + i.Author }

type bookDelegate struct {
	styles itemStyles
}

func (d bookDelegate) Height() int                         { return 4 }
func (d bookDelegate) Spacing() int                        { return 1 }
func (d bookDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d bookDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	book, ok := item.(bookItem)
	if !ok {
		return
	}

	title := book.Book.Title
	if book.favorite {
		title = d.styles.favoriteStyle.Render("* ") + title
	}
	titleLine := d.styles.titleStyle.Render(title)
	authorLine := d.styles.metadataStyle.Render(book.Author)
	priceLine := d.styles.priceStyle.Render(fmt.Sprintf("Rs. %.2f", book.Price)) +
		d.styles.metadataStyle.Render(fmt.Sprintf("  %d in stock", book.CopiesAvailable))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, authorLine, priceLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type browseModel struct {
	catalog    *catalog.Index
	isFavorite func(bookID string) bool

	list      list.Model
	search    textinput.Model
	searching bool
	result    BrowseResult
}

func newBrowseModel(cat *catalog.Index, isFavorite func(string) bool) *browseModel {
	search := textinput.New()
	search.Placeholder = "title or author"
	search.CharLimit = 64
	search.Width = 30

	l := list.New(nil, bookDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	m := &browseModel{
		catalog:    cat,
		isFavorite: isFavorite,
		list:       l,
		search:     search,
		result:     BrowseResult{Action: ActionNone},
	}
	m.reloadPage()
	return m
}

// reloadPage rebuilds the visible items from the catalog's current page.
func (m *browseModel) reloadPage() {
	page := m.catalog.CurrentPage()
	items := make([]list.Item, len(page))
	for i, b := range page {
		items[i] = bookItem{Book: b, favorite: m.isFavorite(b.ID)}
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

func (m *browseModel) selectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(bookItem); ok {
		return item.ID, true
	}
	return "", false
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-8, 8)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *browseModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if id, ok := m.selectedID(); ok {
			m.result = BrowseResult{Action: ActionSelected, BookID: id}
			return m, tea.Quit
		}
	case "f":
		if id, ok := m.selectedID(); ok {
			m.result = BrowseResult{Action: ActionSelected, BookID: id, ToggleFavorite: true}
			return m, tea.Quit
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.catalog.Query())
		m.search.Focus()
		return m, textinput.Blink
	case "right", "n":
		m.catalog.SetPage(m.catalog.Page() + 1)
		m.reloadPage()
		return m, nil
	case "left", "p":
		m.catalog.SetPage(m.catalog.Page() - 1)
		m.reloadPage()
		return m, nil
	case "esc", "q", "ctrl+c":
		m.result = BrowseResult{Action: ActionQuit}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *browseModel) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.catalog.SetQuery(m.search.Value())
		m.reloadPage()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		m.result = BrowseResult{Action: ActionQuit}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	header := headerStyle.Render("Books Adda")

	var searchLine string
	if m.searching {
		searchLine = "Search: " + m.search.View()
	} else if q := m.catalog.Query(); q != "" {
		searchLine = helpStyle.Render(fmt.Sprintf("Filter: %q (%d matches)", q, m.catalog.FilteredLen()))
	}

	pageLine := helpStyle.Render(fmt.Sprintf("Page %d/%d", m.catalog.Page()+1, max(m.catalog.PageCount(), 1)))
	help := helpStyle.Render("Enter buy | f favorite | / search | Left/Right page | q quit")

	sections := []string{header}
	if searchLine != "" {
		sections = append(sections, searchLine)
	}
	sections = append(sections, m.list.View(), pageLine, help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Browse shows the paginated catalog and returns what the user picked.
// isFavorite is consulted per visible book so markers stay current after
// the caller toggles a favorite and re-enters the screen.
func Browse(cat *catalog.Index, isFavorite func(bookID string) bool) (BrowseResult, error) {
	m := newBrowseModel(cat, isFavorite)
	finalModel, err := runProgram(m)
	if err != nil {
		return BrowseResult{}, err
	}

	if typed, ok := finalModel.(*browseModel); ok {
		return typed.result, nil
	}
	return BrowseResult{}, fmt.Errorf("unexpected program result")
}
