package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epubshelf/internal/catalog"
	"epubshelf/internal/config"
	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
)

var testBooks = []domain.Book{
	{Title: "Dune", Category: "Fiction", Subcategory: "SF", DownloadURL: "https://example.com/Dune.epub"},
	{Title: "Cosmos", Category: "Science", DownloadURL: "https://example.com/Cosmos.epub"},
	{Title: "Emma", Category: "Fiction", DownloadURL: "https://example.com/Emma.epub"},
}

type providerFunc func(ctx context.Context) ([]domain.Book, error)

func (f providerFunc) Fetch(ctx context.Context) ([]domain.Book, error) { return f(ctx) }

type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) ofType(t eventbus.EventType) []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.DomainEvent
	for _, e := range b.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestModel(t *testing.T, delay time.Duration) (*Model, *recordingBus) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.RenderDelay = config.Duration(delay)
	bus := &recordingBus{}
	provider := providerFunc(func(context.Context) ([]domain.Book, error) { return testBooks, nil })
	m := NewModel(context.Background(), bus, cfg, provider)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, bus
}

func loaded(t *testing.T, delay time.Duration) (*Model, *recordingBus) {
	t.Helper()
	m, bus := newTestModel(t, delay)
	m.Update(catalogFetchedMsg{books: testBooks})
	require.Equal(t, catalog.StateLoaded, m.controller.State())
	return m, bus
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestInitFetchesCatalog(t *testing.T) {
	m, _ := newTestModel(t, 0)
	assert.Contains(t, m.View(), "Loading books...")

	msg := m.fetchCatalog()()
	fetched, ok := msg.(catalogFetchedMsg)
	require.True(t, ok)
	assert.Equal(t, testBooks, fetched.books)
	assert.NoError(t, fetched.err)
}

func TestCatalogLoaded(t *testing.T) {
	m, bus := loaded(t, 0)

	assert.Equal(t, []string{domain.AllCategories, "Fiction", "Science"}, m.categories)
	assert.Equal(t, domain.AllCategories, m.activeCategory)
	assert.Equal(t, []string{"Dune", "Cosmos", "Emma"}, titles(m.books))
	assert.Len(t, bus.ofType(eventbus.EventCatalogLoaded), 1)

	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "3 of 3 books")
}

func TestCatalogLoadError(t *testing.T) {
	m, bus := newTestModel(t, 0)
	m.Update(catalogFetchedMsg{err: errors.New("HTTP error! status: 500")})

	assert.True(t, m.loadError)
	assert.Contains(t, m.View(), catalog.LoadErrorMessage)
	assert.Len(t, bus.ofType(eventbus.EventCatalogLoadFailed), 1)

	// Filtering keys are inert after a failed load
	press(m, "]", "/", "x")
	assert.Equal(t, domain.AllCategories, m.controller.ActiveCategory())
	assert.Empty(t, m.controller.SearchTerm())
}

func TestCycleCategory(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "]")
	assert.Equal(t, "Fiction", m.activeCategory)
	assert.Equal(t, []string{"Dune", "Emma"}, titles(m.books))
	assert.Contains(t, m.View(), "[Category: Fiction]")

	press(m, "]", "]")
	assert.Equal(t, domain.AllCategories, m.activeCategory)
	assert.Len(t, m.books, 3)

	press(m, "[")
	assert.Equal(t, "Science", m.activeCategory)
	assert.Equal(t, []string{"Cosmos"}, titles(m.books))
}

func TestSelectCategoryFromSidebar(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "tab", "down", "down", "enter")
	assert.Equal(t, focusCategories, m.focus)
	assert.Equal(t, "Science", m.activeCategory)
	assert.Equal(t, []string{"Cosmos"}, titles(m.books))

	press(m, "tab")
	assert.Equal(t, focusBooks, m.focus)
}

func TestSearchLive(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "/", "e", "m")
	assert.Equal(t, "em", m.controller.SearchTerm())
	assert.Equal(t, []string{"Emma"}, titles(m.books))
	assert.Contains(t, m.View(), "Search: ")

	press(m, "enter")
	assert.Equal(t, "em", m.controller.SearchTerm())
	assert.Contains(t, m.View(), "[Search: em]")

	press(m, "ctrl+u")
	assert.Empty(t, m.controller.SearchTerm())
	assert.Len(t, m.books, 3)
}

func TestSearchCancelRestoresTerm(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "/", "c", "o", "enter")
	require.Equal(t, "co", m.controller.SearchTerm())

	press(m, "/", "x", "esc")
	assert.Equal(t, "co", m.controller.SearchTerm())
	assert.Equal(t, []string{"Cosmos"}, titles(m.books))
}

func TestSearchNoResults(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "/", "z", "z", "z")
	assert.True(t, m.noResults)
	assert.Empty(t, m.books)
	assert.Contains(t, m.View(), catalog.NoResultsMessage)

	press(m, "esc")
	assert.False(t, m.noResults)
}

func TestDelayedRenderDropsStaleTasks(t *testing.T) {
	m, _ := loaded(t, 300*time.Millisecond)

	press(m, "/", "d")
	first := m.scheduler.next
	press(m, "u")
	second := m.scheduler.next
	require.NotEqual(t, first, second)

	assert.True(t, m.pending)
	assert.Len(t, m.books, 3, "list is unchanged until the delay elapses")
	assert.Equal(t, 1, m.scheduler.Pending())

	m.Update(renderDueMsg{id: first})
	assert.True(t, m.pending)
	assert.Len(t, m.books, 3)

	m.Update(renderDueMsg{id: second})
	assert.False(t, m.pending)
	assert.Equal(t, []string{"Dune"}, titles(m.books))
}

func TestDelayedRenderQueuesTick(t *testing.T) {
	m, _ := loaded(t, 300*time.Millisecond)

	cmd := press(m, "]")
	assert.NotNil(t, cmd)
	assert.Equal(t, "Fiction", m.activeCategory, "category list updates at once")
	assert.Len(t, m.books, 3)
	assert.Nil(t, m.scheduler.Drain(), "ticks were handed to the runtime")
}

func TestDownloadRequest(t *testing.T) {
	m, bus := loaded(t, 0)

	press(m, "down", "enter")
	requests := bus.ofType(eventbus.EventDownloadRequested)
	require.Len(t, requests, 1)
	assert.Equal(t, []domain.Book{testBooks[1]}, requests[0].(eventbus.DownloadRequestedEvent).Books)
	assert.Equal(t, 1, m.downloading)
	assert.Contains(t, m.View(), "Downloading 1")

	m.Update(EventMsg{Event: eventbus.DownloadCompletedEvent{Title: "Cosmos", Path: "/tmp/Cosmos.epub"}})
	assert.Equal(t, 0, m.downloading)
	assert.Equal(t, "Saved /tmp/Cosmos.epub", m.statusMessage)
	assert.False(t, m.statusIsError)

	m.Update(EventMsg{Event: eventbus.DownloadCompletedEvent{Title: "Cosmos", Err: errors.New("boom")}})
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMessage, "Download failed: Cosmos")
}

func TestStatusClears(t *testing.T) {
	m, _ := loaded(t, 0)
	m.setStatus("one", false)
	stale := m.statusSeq
	m.setStatus("two", false)

	m.Update(clearStatusMsg{seq: stale})
	assert.Equal(t, "two", m.statusMessage)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.statusMessage)
}

func TestNavigationClamps(t *testing.T) {
	m, _ := loaded(t, 0)

	press(m, "k")
	assert.Equal(t, 0, m.bookCursor)
	press(m, "G")
	assert.Equal(t, 2, m.bookCursor)
	press(m, "j")
	assert.Equal(t, 2, m.bookCursor)
	press(m, "g")
	assert.Equal(t, 0, m.bookCursor)

	// A new result set resets the cursor
	press(m, "G", "]")
	assert.Equal(t, 0, m.bookCursor)
}

func TestHelpWithoutProgram(t *testing.T) {
	m, _ := loaded(t, 0)
	press(m, "?")
	assert.True(t, m.help.ShowAll)
	press(m, "?")
	assert.False(t, m.help.ShowAll)
}

func TestDetailsWithoutProgram(t *testing.T) {
	m, _ := loaded(t, 0)
	press(m, "i")
	assert.Equal(t, "Dune • Fiction / SF", m.statusMessage)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, 0)
	assert.True(t, containsQuit(press(m, "q")))
}

func containsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if containsQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestBookDetails(t *testing.T) {
	details := buildBookDetails(domain.Book{
		Title:       "Dune",
		Category:    "Fiction",
		Path:        "Fiction/Dune.epub",
		DownloadURL: "https://example.com/Dune.epub",
	}, "/books")

	assert.Contains(t, details, "Dune")
	assert.Contains(t, details, "Fiction/Dune.epub")
	assert.Contains(t, details, "https://example.com/Dune.epub")
	assert.Contains(t, details, "/books/Dune.epub")
	assert.NotContains(t, details, "Subcategory")
}

func TestHelpContent(t *testing.T) {
	content := NewHelpRenderer().RenderHelpContent()
	assert.Contains(t, content, "epubshelf Help")
	assert.Contains(t, content, "Download the book under the cursor")
}
