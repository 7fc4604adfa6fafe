package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/protonav/pkg/nav"
)

var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorGray)
)

const browserHelp = "↑/↓ move  ⏎ drill  ← back  0-9 jump  g root  q quit"

// =============================================================================
// BrowserModel - Interactive definition browser
// =============================================================================

// BrowserModel is the bubbletea model for the browse command. All state
// transitions go through the Navigator; the model only tracks the cursor.
type BrowserModel struct {
	Nav     *nav.Navigator
	Current nav.View
	Cursor  int
	Source  string
	Width   int
}

// NewBrowserModel creates a browser over n.
func NewBrowserModel(n *nav.Navigator, source string) BrowserModel {
	return BrowserModel{Nav: n, Current: n.View(), Source: source}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Current.Rows)-1 {
				m.Cursor++
			}
		case "enter", "right", "l":
			if m.Cursor < len(m.Current.Rows) {
				if row := m.Current.Rows[m.Cursor]; row.HasLink() {
					m = m.apply(m.Nav.Drill(row.Link))
				}
			}
		case "left", "h", "backspace":
			m = m.apply(m.Nav.Back())
		case "g":
			m = m.apply(m.Nav.JumpTo(0))
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m = m.apply(m.Nav.JumpTo(int(key[0] - '0')))
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

// apply installs a new view. The cursor resets only when the current
// definition changed, so no-op jumps keep the selection.
func (m BrowserModel) apply(v nav.View) BrowserModel {
	if v.Depth() != m.Current.Depth() || v.CurrentKey != m.Current.CurrentKey {
		m.Cursor = 0
	}
	m.Current = v
	return m
}

func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("protonav"))
	if m.Source != "" {
		b.WriteString(" " + listDimStyle.Render(m.Source))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(browserHelp))
	b.WriteString("\n\n")
	b.WriteString(renderView(m.Current, m.Cursor))

	if n := len(m.Current.Rows); n > 0 {
		b.WriteString("\n")
		b.WriteString(statusBarStyle.Render(fmt.Sprintf("  [%d/%d] depth %d", m.Cursor+1, n, m.Current.Depth())))
	}
	return b.String()
}
