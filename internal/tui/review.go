package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// Model is the bubbletea model for reviewing one session.
type Model struct {
	store     *review.Store
	sessionID string
	styles    *Styles

	suggestions []suggest.Suggestion
	decisions   []review.Decision
	selected    int
	height      int

	// Save is true when the user quit with the write key.
	Save bool
	err  error
}

// NewModel creates a review model over an existing session.
func NewModel(store *review.Store, sessionID string) (*Model, error) {
	m := &Model{
		store:     store,
		sessionID: sessionID,
		styles:    DefaultStyles(),
		height:    24,
	}
	err := store.View(sessionID, func(s *review.Session) error {
		m.suggestions = s.Suggestions
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.refresh()
	return m, nil
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.suggestions)-1 {
				m.selected++
			}
		case "a", "enter":
			m.apply(m.store.Accept)
			m.advance()
		case "r", "x":
			m.apply(m.store.Reject)
			m.advance()
		case "u":
			m.apply(m.store.Reset)
		case "A":
			for _, sg := range m.suggestions {
				m.err = m.store.Accept(m.sessionID, sg.DestinationURL)
			}
			m.refresh()
		case "w":
			m.Save = true
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) apply(fn func(id, url string) error) {
	if len(m.suggestions) == 0 {
		return
	}
	m.err = fn(m.sessionID, m.suggestions[m.selected].DestinationURL)
	m.refresh()
}

func (m *Model) advance() {
	if m.selected < len(m.suggestions)-1 {
		m.selected++
	}
}

func (m *Model) refresh() {
	m.decisions = make([]review.Decision, len(m.suggestions))
	_ = m.store.View(m.sessionID, func(s *review.Session) error {
		for i, sg := range m.suggestions {
			m.decisions[i] = s.DecisionFor(sg.DestinationURL)
		}
		return nil
	})
}

// Stats returns the current decision counts.
func (m *Model) Stats() review.Stats {
	st := review.Stats{Total: len(m.suggestions)}
	for _, d := range m.decisions {
		switch d {
		case review.DecisionAccepted:
			st.Accepted++
		case review.DecisionRejected:
			st.Rejected++
		default:
			st.Pending++
		}
	}
	return st
}

// View renders the review screen.
func (m *Model) View() string {
	var b strings.Builder
	st := m.Stats()
	b.WriteString(m.styles.Title.Render("Link review"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d suggestions · %d accepted · %d rejected · %d pending",
		st.Total, st.Accepted, st.Rejected, st.Pending)))
	b.WriteString("\n\n")

	if len(m.suggestions) == 0 {
		b.WriteString(m.styles.Muted.Render("No suggestions"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		b.WriteString(m.item(i))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Rejected.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("↑/↓ move · a accept · r reject · u undo · A accept all · w write & quit · q quit"))
	return b.String()
}

// window returns the visible item range; each item takes three lines.
func (m *Model) window() (int, int) {
	visible := (m.height - 6) / 3
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(m.suggestions) {
		end = len(m.suggestions)
	}
	return start, end
}

func (m *Model) item(i int) string {
	sg := m.suggestions[i]
	mark := "[ ]"
	anchor := m.styles.Anchor.Render(sg.AnchorText)
	switch m.decisions[i] {
	case review.DecisionAccepted:
		mark = m.styles.Accepted.Render("[✓]")
	case review.DecisionRejected:
		mark = m.styles.Rejected.Render("[✗]")
		anchor = m.styles.Rejected.Render(sg.AnchorText)
	}

	head := fmt.Sprintf("%s %s → %s  %s %.2f  %s", mark, anchor, sg.DestinationURL,
		m.styles.Relevance(render.RelevanceLabel(sg.Score)), sg.Score, m.styles.Muted.Render(string(sg.Category)))
	body := m.styles.Muted.Render("    " + sg.ContextSnippet)

	text := head + "\n" + body
	if i == m.selected {
		return m.styles.Selected.Render(text)
	}
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}
