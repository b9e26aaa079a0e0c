package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

func newTestModel(t *testing.T) (*Model, *review.Store, string) {
	t.Helper()
	store := review.NewStore()
	sess := store.Create(content.Document{Source: "text"}, []suggest.Suggestion{
		{DestinationURL: "https://example.com/a", AnchorText: "alpha", ContextSnippet: "alpha ctx", Score: 0.8},
		{DestinationURL: "https://example.com/b", AnchorText: "beta", Score: 0.5},
		{DestinationURL: "https://example.com/c", AnchorText: "gamma", Score: 0.2},
	})
	m, err := NewModel(store, sess.ID)
	require.NoError(t, err)
	return m, store, sess.ID
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel_UnknownSession(t *testing.T) {
	_, err := NewModel(review.NewStore(), "missing")
	assert.True(t, errors.Is(err, review.ErrSessionNotFound))
}

func TestModel_AcceptRejectUndo(t *testing.T) {
	m, store, id := newTestModel(t)
	assert.Nil(t, m.Init())

	m.Update(key("a"))
	assert.Equal(t, 1, m.selected, "accept advances the cursor")
	m.Update(key("r"))
	assert.Equal(t, review.Stats{Total: 3, Accepted: 1, Rejected: 1, Pending: 1}, m.Stats())

	m.Update(key("up"))
	m.Update(key("u"))
	assert.Equal(t, review.Stats{Total: 3, Accepted: 1, Pending: 2}, m.Stats())

	var accepted []suggest.Suggestion
	require.NoError(t, store.View(id, func(s *review.Session) error {
		accepted = s.Accepted()
		return nil
	}))
	require.Len(t, accepted, 1)
	assert.Equal(t, "https://example.com/a", accepted[0].DestinationURL)
}

func TestModel_Navigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(key("up"))
	assert.Equal(t, 0, m.selected)
	m.Update(key("j"))
	m.Update(key("down"))
	m.Update(key("down"))
	assert.Equal(t, 2, m.selected, "cursor stops at the last item")
	m.Update(key("k"))
	assert.Equal(t, 1, m.selected)
}

func TestModel_AcceptAllAndWrite(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(key("A"))
	assert.Equal(t, 3, m.Stats().Accepted)

	_, cmd := m.Update(key("w"))
	require.NotNil(t, cmd)
	assert.True(t, m.Save)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_QuitWithoutSaving(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.False(t, m.Save)
}

func TestModel_View(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(key("enter"))

	view := m.View()
	assert.Contains(t, view, "Link review")
	assert.Contains(t, view, "1 accepted")
	assert.Contains(t, view, "https://example.com/b")
	assert.Contains(t, view, "alpha ctx")
}
