package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"epubshelf/internal/catalog"
	"epubshelf/internal/config"
	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
	"epubshelf/internal/ui/input"
	inputtypes "epubshelf/internal/ui/input/types"
	"epubshelf/internal/ui/views"
)

const (
	pageSize      = 10
	statusTimeout = 4 * time.Second
)

type focusArea int

const (
	focusBooks focusArea = iota
	focusCategories
)

// Model is the terminal catalog browser. It is the controller's presenter:
// the Render* methods only record what to draw and View draws it.
type Model struct {
	ctx        context.Context
	bus        eventbus.EventBus
	config     *config.Config
	provider   catalog.Provider
	controller *catalog.Controller
	scheduler  *TeaScheduler

	// Presenter state, written by the controller
	categories     []string
	activeCategory string
	books          []domain.Book
	noResults      bool
	loadError      bool
	pending        bool

	// UI-specific state
	width          int
	height         int
	focus          focusArea
	categoryCursor int
	bookCursor     int
	statusMessage  string
	statusIsError  bool
	statusSeq      int
	downloading    int
	inPagerMode    bool // tracks if we're currently in pager mode

	help         help.Model
	keys         inputtypes.KeyMap
	spinner      spinner.Model
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. The catalog is fetched from provider
// once the program starts.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, provider catalog.Provider) *Model {
	keys := inputtypes.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:            ctx,
		bus:            bus,
		config:         cfg,
		provider:       provider,
		scheduler:      NewTeaScheduler(),
		activeCategory: domain.AllCategories,
		help:           help.New(),
		keys:           keys,
		spinner:        sp,
		renderer:       views.NewRenderer(cfg.UISettings.ShowPaths),
		inputHandler:   input.New(keys),
		helpRenderer:   NewHelpRenderer(),
	}

	m.controller = catalog.NewController(m, m.scheduler, time.Duration(cfg.RenderDelay))
	if bus != nil {
		m.controller.SetBus(bus)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Controller exposes the catalog session driven by this model
func (m *Model) Controller() *catalog.Controller {
	return m.controller
}

// Init starts the catalog fetch and the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCatalog())
}

// fetchCatalog runs the provider off the update loop
func (m *Model) fetchCatalog() tea.Cmd {
	ctx, provider := m.ctx, m.provider
	return func() tea.Msg {
		books, err := provider.Fetch(ctx)
		return catalogFetchedMsg{books: books, err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, &modelContext{m: m})

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		cmds = append(cmds, m.scheduler.Drain())
		return m, tea.Batch(cmds...)

	case catalogFetchedMsg:
		m.controller.Resolve(msg.books, msg.err)
		return m, m.scheduler.Drain()

	case renderDueMsg:
		m.scheduler.Fire(msg.id)
		return m, m.scheduler.Drain()

	case spinner.TickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case detailsPagerMsg:
		if msg.err != nil {
			slog.Warn("Details pager failed", "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Could not open details: %v", msg.err), true)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the full key list in the footer
			slog.Warn("Help pager failed", "error", msg.err)
			m.help.ShowAll = true
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.SwitchFocusAction:
		if m.focus == focusBooks {
			m.focus = focusCategories
			m.categoryCursor = m.activeCategoryIndex()
		} else {
			m.focus = focusBooks
		}

	case inputtypes.CycleCategoryAction:
		if len(m.categories) == 0 {
			return nil
		}
		n := len(m.categories)
		next := ((m.activeCategoryIndex()+a.Delta)%n + n) % n
		m.categoryCursor = next
		m.controller.SetActiveCategory(m.categories[next])

	case inputtypes.SelectAction:
		if m.focus == focusCategories {
			if m.categoryCursor < len(m.categories) {
				m.controller.SetActiveCategory(m.categories[m.categoryCursor])
			}
			return nil
		}
		return m.requestDownload()

	case inputtypes.UpdateTextAction:
		m.controller.SetSearchTerm(a.Text)

	case inputtypes.SubmitTextAction:
		if a.Text != m.controller.SearchTerm() {
			m.controller.SetSearchTerm(a.Text)
		}

	case inputtypes.CancelTextAction:
		if a.Restore != m.controller.SearchTerm() {
			m.controller.SetSearchTerm(a.Restore)
		}

	case inputtypes.ClearSearchAction:
		m.controller.SetSearchTerm("")

	case inputtypes.ShowDetailsAction:
		book, ok := m.focusedBook()
		if !ok {
			return nil
		}
		if m.program == nil {
			return m.setStatus(book.Title+" • "+book.CategoryLabel(), false)
		}
		content := buildBookDetails(book, config.ExpandHome(m.config.DownloadDir))
		return m.openPager(content, func(err error) tea.Msg { return detailsPagerMsg{err: err} })

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.openPager(m.helpRenderer.RenderHelpContent(), func(err error) tea.Msg { return helpPagerMsg{err: err} })

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// openPager returns a command that shows content in the pager, pausing
// rendering while the pager owns the terminal
func (m *Model) openPager(content string, done func(error) tea.Msg) tea.Cmd {
	program, pager := m.program, m.pager
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := pager.Show(content)
		program.Send(resumeRenderingMsg{})
		return done(err)
	}
}

func (m *Model) requestDownload() tea.Cmd {
	book, ok := m.focusedBook()
	if !ok {
		return nil
	}
	if m.bus == nil {
		return m.setStatus("Downloads are not available", true)
	}
	m.downloading++
	m.bus.Publish(eventbus.DownloadRequestedEvent{Books: []domain.Book{book}})
	return m.setStatus("Downloading "+book.Title, false)
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DownloadCompletedEvent:
		if m.downloading > 0 {
			m.downloading--
		}
		switch {
		case e.Err != nil:
			return m.setStatus(fmt.Sprintf("Download failed: %s: %v", e.Title, e.Err), true)
		case e.Skipped:
			return m.setStatus("Already downloaded: "+e.Path, false)
		default:
			return m.setStatus("Saved "+e.Path, false)
		}
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.statusMessage = message
	m.statusIsError = isError
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) navigate(direction string) {
	cursor, total := &m.bookCursor, len(m.books)
	if m.focus == focusCategories {
		cursor, total = &m.categoryCursor, len(m.categories)
	}
	if total == 0 {
		*cursor = 0
		return
	}

	switch direction {
	case "up":
		*cursor--
	case "down":
		*cursor++
	case "pageup":
		*cursor -= pageSize
	case "pagedown":
		*cursor += pageSize
	case "home":
		*cursor = 0
	case "end":
		*cursor = total - 1
	}
	*cursor = clamp(*cursor, 0, total-1)
}

func (m *Model) focusedBook() (domain.Book, bool) {
	if m.focus != focusBooks || m.bookCursor >= len(m.books) {
		return domain.Book{}, false
	}
	return m.books[m.bookCursor], true
}

func (m *Model) activeCategoryIndex() int {
	for i, name := range m.categories {
		if name == m.activeCategory {
			return i
		}
	}
	return 0
}

// RenderCategories implements catalog.Presenter
func (m *Model) RenderCategories(categories []string, active string) {
	m.categories = categories
	m.activeCategory = active
	m.categoryCursor = clamp(m.categoryCursor, 0, len(categories)-1)
}

// RenderBooks implements catalog.Presenter
func (m *Model) RenderBooks(books []domain.Book) {
	m.books = books
	m.noResults = false
	m.bookCursor = 0
}

// RenderNoResults implements catalog.Presenter
func (m *Model) RenderNoResults() {
	m.books = nil
	m.noResults = true
	m.bookCursor = 0
}

// RenderLoadError implements catalog.Presenter
func (m *Model) RenderLoadError() {
	m.loadError = true
}

// RenderLoading implements catalog.LoadingPresenter
func (m *Model) RenderLoading(pending bool) {
	m.pending = pending
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Categories:      m.categories,
		ActiveCategory:  m.activeCategory,
		CategoryCursor:  m.categoryCursor,
		Books:           m.books,
		BookCursor:      m.bookCursor,
		TotalBooks:      m.controller.Len(),
		FocusCategories: m.focus == focusCategories,
		Loading:         m.controller.State() == catalog.StateUnloaded,
		Pending:         m.pending,
		NoResults:       m.noResults,
		LoadError:       m.loadError,
		SearchTerm:      m.controller.SearchTerm(),
		Spinner:         m.spinner.View(),
		StatusMessage:   m.statusMessage,
		StatusIsError:   m.statusIsError,
		Downloading:     m.downloading,
		HelpView:        m.help.View(m.keys),
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InputMode = m.inputHandler.ModeName()
		state.InputPrompt = "Search: "
		state.TextInput = ti.View()
	}

	return m.renderer.Render(state)
}

// modelContext adapts the model for the input handler
type modelContext struct {
	m *Model
}

func (c *modelContext) CategoriesFocused() bool { return c.m.focus == focusCategories }
func (c *modelContext) HasBooks() bool          { return len(c.m.books) > 0 }
func (c *modelContext) SearchTerm() string      { return c.m.controller.SearchTerm() }
func (c *modelContext) Ready() bool             { return c.m.controller.State() == catalog.StateLoaded }

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
