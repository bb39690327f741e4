package input

import (
	"testing"

	"epubshelf/internal/ui/input/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	categories bool
	books      bool
	term       string
	ready      bool
}

func (c *fakeContext) CategoriesFocused() bool { return c.categories }
func (c *fakeContext) HasBooks() bool          { return c.books }
func (c *fakeContext) SearchTerm() string      { return c.term }
func (c *fakeContext) Ready() bool             { return c.ready }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := &fakeContext{ready: true, books: true}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, ctx)
	assert.Equal(t, []types.Action{types.SwitchFocusAction{}}, actions)

	actions, _ = h.HandleKey(runes("]"), ctx)
	assert.Equal(t, []types.Action{types.CycleCategoryAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("["), ctx)
	assert.Equal(t, []types.Action{types.CycleCategoryAction{Delta: -1}}, actions)

	actions, _ = h.HandleKey(runes("i"), ctx)
	assert.Equal(t, []types.Action{types.ShowDetailsAction{}}, actions)
}

func TestNormalModeBeforeLoad(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(runes("j"), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("/"), ctx)
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: false}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}

func TestDetailsNeedsFocusedBook(t *testing.T) {
	h := New(types.DefaultKeyMap())

	actions, _ := h.HandleKey(runes("i"), &fakeContext{ready: true, categories: true, books: true})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("i"), &fakeContext{ready: true})
	assert.Empty(t, actions)
}

func TestClearSearch(t *testing.T) {
	h := New(types.DefaultKeyMap())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU}, &fakeContext{ready: true})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlU}, &fakeContext{ready: true, term: "x"})
	assert.Equal(t, []types.Action{types.ClearSearchAction{}}, actions)
}

func TestSearchModeLiveUpdates(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := &fakeContext{ready: true, term: "ab"}

	_, _ = h.HandleKey(runes("/"), ctx)
	require.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "ab", h.TextInput().Value())
	assert.Equal(t, "search", h.ModeName())

	actions, _ := h.HandleKey(runes("c"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "abc"}}, actions)

	// q is text while searching
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "abcq"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "abcq", Mode: types.ModeSearch}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchModeCancelRestores(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := &fakeContext{ready: true, term: "old"}

	_, _ = h.HandleKey(runes("/"), ctx)
	_, _ = h.HandleKey(runes("x"), ctx)
	ctx.term = "oldx"

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{Restore: "old"}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestReset(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := &fakeContext{ready: true}
	_, _ = h.HandleKey(runes("/"), ctx)
	require.Equal(t, types.ModeSearch, h.CurrentMode())

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
