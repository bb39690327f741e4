package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// MessageRenderer places framed messages in the middle of a region
type MessageRenderer struct {
	styles *Styles
}

// NewMessageRenderer creates a new message renderer
func NewMessageRenderer(styles *Styles) *MessageRenderer {
	return &MessageRenderer{
		styles: styles,
	}
}

// RenderMessage wraps text to fit the region and centers it inside a box
func (mr *MessageRenderer) RenderMessage(text string, width, height int, textStyle lipgloss.Style) string {
	box := mr.styles.MessageBox
	frameW := box.GetHorizontalFrameSize()

	wrapWidth := width - frameW - 2
	if wrapWidth > 60 {
		wrapWidth = 60
	}
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	body := box.Render(textStyle.Render(wordwrap.String(text, wrapWidth)))
	if width <= 0 || height <= 0 {
		return body
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
