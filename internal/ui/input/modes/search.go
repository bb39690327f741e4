package modes

import (
	"epubshelf/internal/ui/input/types"
	"github.com/charmbracelet/bubbles/textinput"
)

// SearchMode edits the search term live; every keystroke re-filters
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
