package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/booksadda/storefront/internal/books"
)

// AddressResult holds the outcome of the address selection step.
type AddressResult struct {
	Action    Action
	AddressID string
}

type addressItem struct {
	books.Address
}

func (i addressItem) Title() string       { return i.Street }
func (i addressItem) Description() string { return i.Label() }
func (i addressItem) FilterValue() string { return i.Label() }

type addressDelegate struct {
	styles itemStyles
}

func (d addressDelegate) Height() int                         { return 3 }
func (d addressDelegate) Spacing() int                        { return 1 }
func (d addressDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d addressDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	address, ok := item.(addressItem)
	if !ok {
		return
	}

	titleLine := d.styles.titleStyle.Render(address.Street)
	detailLine := d.styles.metadataStyle.Render(truncate(address.Label(), m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, detailLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type addressModel struct {
	list   list.Model
	result AddressResult
}

func newAddressModel(addresses []books.Address) *addressModel {
	items := make([]list.Item, len(addresses))
	for i, a := range addresses {
		items[i] = addressItem{Address: a}
	}

	l := list.New(items, addressDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &addressModel{
		list:   l,
		result: AddressResult{Action: ActionNone},
	}
}

func (m *addressModel) Init() tea.Cmd { return nil }

func (m *addressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(addressItem); ok {
				m.result = AddressResult{Action: ActionSelected, AddressID: selected.ID}
				return m, tea.Quit
			}
		case "esc":
			m.result = AddressResult{Action: ActionCancelled}
			return m, tea.Quit
		case "ctrl+c", "q":
			m.result = AddressResult{Action: ActionQuit}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *addressModel) View() string {
	header := headerStyle.Render("Select a delivery address")
	help := helpStyle.Render("Up/Down navigate | Enter select | Esc cancel | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

// SelectAddress presents the delivery addresses for the purchase wizard's
// address step and returns the chosen identifier.
func SelectAddress(addresses []books.Address) (AddressResult, error) {
	m := newAddressModel(addresses)
	finalModel, err := runProgram(m)
	if err != nil {
		return AddressResult{}, err
	}

	if typed, ok := finalModel.(*addressModel); ok {
		return typed.result, nil
	}
	return AddressResult{}, fmt.Errorf("unexpected program result")
}
