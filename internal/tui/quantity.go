package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/booksadda/storefront/internal/books"
)

// QuantityResult holds the outcome of the quantity entry step.
type QuantityResult struct {
	Action Action
	Input  string
}

type quantityModel struct {
	input      textinput.Model
	book       books.Book
	validation string
	result     QuantityResult
}

func newQuantityModel(book books.Book, validation string) *quantityModel {
	input := textinput.New()
	input.Placeholder = "1"
	input.CharLimit = 6
	input.Width = 10
	input.Focus()

	return &quantityModel{
		input:      input,
		book:       book,
		validation: validation,
		result:     QuantityResult{Action: ActionNone},
	}
}

func (m *quantityModel) Init() tea.Cmd { return textinput.Blink }

func (m *quantityModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.result = QuantityResult{Action: ActionSelected, Input: m.input.Value()}
			return m, tea.Quit
		case "esc":
			m.result = QuantityResult{Action: ActionCancelled}
			return m, tea.Quit
		case "ctrl+c":
			m.result = QuantityResult{Action: ActionQuit}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *quantityModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Buying: %s by %s", m.book.Title, m.book.Author))
	prompt := fmt.Sprintf("Number of copies (1-%d): %s", m.book.CopiesAvailable, m.input.View())
	help := helpStyle.Render("Enter confirm | Esc cancel")

	lines := []string{header, prompt}
	if m.validation != "" {
		lines = append(lines, errorStyle.Render(m.validation))
	}
	lines = append(lines, help)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// PromptQuantity asks for the number of copies to purchase. validation, if
// non-empty, is the message from a previously rejected value and is shown
// above the help line; the wizard itself decides what is valid.
func PromptQuantity(book books.Book, validation string) (QuantityResult, error) {
	m := newQuantityModel(book, validation)
	finalModel, err := runProgram(m)
	if err != nil {
		return QuantityResult{}, err
	}

	if typed, ok := finalModel.(*quantityModel); ok {
		return typed.result, nil
	}
	return QuantityResult{}, fmt.Errorf("unexpected program result")
}
