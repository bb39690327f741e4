package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Categories      []string
	ActiveCategory  string
	CategoryCursor  int
	Books           []domain.Book
	BookCursor      int
	TotalBooks      int
	FocusCategories bool
	Loading         bool // waiting for the catalog
	Pending         bool // a filtered list is about to replace the current one
	NoResults       bool
	LoadError       bool
	SearchTerm      string
	InputMode       string
	InputPrompt     string
	TextInput       string
	Spinner         string
	StatusMessage   string
	StatusIsError   bool
	Downloading     int
	HelpView        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	categoryRender *CategoryRenderer
	bookRender     *BookRenderer
	messageRender  *MessageRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showPaths bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		categoryRender: NewCategoryRenderer(styles),
		bookRender:     NewBookRenderer(styles, showPaths),
		messageRender:  NewMessageRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}

	// Account for main container padding
	innerWidth := width - r.styles.Main.GetHorizontalFrameSize()
	innerHeight := height - r.styles.Main.GetVerticalFrameSize()

	var header []string
	header = append(header, r.renderTitleLine(state, innerWidth))
	if state.InputMode != "" {
		header = append(header, r.styles.Filter.Render(state.InputPrompt)+state.TextInput)
	}
	header = append(header, "")

	footer := []string{"", r.renderStatusLine(state)}
	if state.HelpView != "" {
		footer = append(footer, r.styles.Help.Render(state.HelpView))
	}
	footerText := strings.Join(footer, "\n")

	bodyHeight := innerHeight - len(header) - lipgloss.Height(footerText)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case state.LoadError:
		body = r.messageRender.RenderMessage(catalog.LoadErrorMessage, innerWidth, bodyHeight, r.styles.StatusError)
	case state.Loading:
		loading := fmt.Sprintf("%s Loading books...", state.Spinner)
		body = lipgloss.Place(innerWidth, bodyHeight, lipgloss.Center, lipgloss.Center, r.styles.StatusLoading.Render(loading))
	default:
		body = r.renderPanels(state, innerWidth, bodyHeight)
	}

	content := strings.Join(header, "\n") + "\n" + body + "\n" + footerText
	return r.styles.Main.MaxHeight(height).Render(content)
}

// renderTitleLine renders the logo with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState, availableWidth int) string {
	logo := r.styles.Title.Render("epubshelf")

	var indicators []string
	if state.Pending {
		indicators = append(indicators, fmt.Sprintf("%s Filtering", state.Spinner))
	}
	if state.Downloading > 0 {
		indicators = append(indicators, fmt.Sprintf("↓ Downloading %d", state.Downloading))
	}

	rightContent := ""
	if len(indicators) > 0 {
		rightContent = r.styles.Dim.Render(strings.Join(indicators, " | "))
	}
	var filters []string
	if state.ActiveCategory != "" && state.ActiveCategory != domain.AllCategories {
		filters = append(filters, fmt.Sprintf("[Category: %s]", state.ActiveCategory))
	}
	if state.SearchTerm != "" {
		filters = append(filters, fmt.Sprintf("[Search: %s]", state.SearchTerm))
	}
	if len(filters) > 0 {
		filterText := r.styles.Filter.Render(strings.Join(filters, " "))
		if rightContent != "" {
			rightContent = fmt.Sprintf("%s  %s", rightContent, filterText)
		} else {
			rightContent = filterText
		}
	}

	if rightContent == "" {
		return logo
	}

	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	// If not enough space, just show with minimal spacing
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	var parts []string
	switch {
	case state.LoadError:
		parts = append(parts, r.styles.StatusError.Render("Catalog unavailable"))
	case state.Loading:
		parts = append(parts, r.styles.StatusLoading.Render("Fetching catalog"))
	default:
		parts = append(parts, r.styles.Status.Render(fmt.Sprintf("%d of %d books", len(state.Books), state.TotalBooks)))
	}
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		parts = append(parts, style.Render(state.StatusMessage))
	}
	return strings.Join(parts, r.styles.Dim.Render(" • "))
}

// renderPanels lays out the category sidebar next to the book list
func (r *Renderer) renderPanels(state ViewState, width, height int) string {
	sidebarStyle, booksStyle := r.styles.Panel, r.styles.PanelFocused
	if state.FocusCategories {
		sidebarStyle, booksStyle = r.styles.PanelFocused, r.styles.Panel
	}

	sidebarWidth := r.sidebarWidth(state.Categories, width)
	sidebarInner := sidebarWidth - sidebarStyle.GetHorizontalFrameSize()
	booksWidth := width - sidebarWidth - 1
	booksInner := booksWidth - booksStyle.GetHorizontalFrameSize()
	innerHeight := height - sidebarStyle.GetVerticalFrameSize()
	if innerHeight < 1 {
		innerHeight = 1
	}

	sidebar := sidebarStyle.
		Width(sidebarInner + sidebarStyle.GetHorizontalPadding()).
		Height(innerHeight).
		Render(r.renderCategoryList(state, sidebarInner, innerHeight))

	var booksContent string
	if state.NoResults {
		booksContent = r.messageRender.RenderMessage(catalog.NoResultsMessage, booksInner, innerHeight, r.styles.Dim)
	} else {
		booksContent = r.renderBookList(state, booksInner, innerHeight)
	}
	books := booksStyle.
		Width(booksInner + booksStyle.GetHorizontalPadding()).
		Height(innerHeight).
		Render(booksContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", books)
}

func (r *Renderer) sidebarWidth(categories []string, width int) int {
	longest := 0
	for _, name := range categories {
		if w := runewidth.StringWidth(name); w > longest {
			longest = w
		}
	}
	sidebar := longest + 2 + r.styles.Panel.GetHorizontalFrameSize()
	if limit := width / 3; sidebar > limit {
		sidebar = limit
	}
	if sidebar < 12 {
		sidebar = 12
	}
	return sidebar
}

func (r *Renderer) renderCategoryList(state ViewState, width, height int) string {
	start, end, above, below := pageWindow(state.CategoryCursor, len(state.Categories), height, 1)

	var lines []string
	if above > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", above)))
	}
	for i := start; i < end; i++ {
		name := state.Categories[i]
		lines = append(lines, r.categoryRender.RenderCategory(name, name == state.ActiveCategory, state.FocusCategories && i == state.CategoryCursor, width))
	}
	if below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", below)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderBookList(state ViewState, width, height int) string {
	content := height
	cardHeight := r.bookRender.CardHeight()
	start, end, above, below := pageWindow(state.BookCursor, len(state.Books), content, cardHeight)

	lines := make([]string, 0, height)
	if above > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", above)))
	}
	for i := start; i < end; i++ {
		selected := !state.FocusCategories && i == state.BookCursor
		lines = append(lines, r.bookRender.RenderBook(state.Books[i], selected, state.SearchTerm, width)...)
	}
	if below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}

	out := strings.Join(lines, "\n")
	if state.Pending {
		return r.styles.Dim.Render(out)
	}
	return out
}

// pageWindow returns the slice of items shown on the cursor's page. Two
// lines are reserved for scroll indicators when the list does not fit.
func pageWindow(cursor, total, height, itemHeight int) (start, end, above, below int) {
	if total == 0 {
		return 0, 0, 0, 0
	}
	perPage := height / itemHeight
	if perPage >= total {
		return 0, total, 0, 0
	}
	perPage = (height - 2) / itemHeight
	if perPage < 1 {
		perPage = 1
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	start = (cursor / perPage) * perPage
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, start, total - end
}
