package ui

import (
	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// catalogFetchedMsg carries the provider result into the update loop
type catalogFetchedMsg struct {
	books []domain.Book
	err   error
}

// detailsPagerMsg contains the result of a details pager command
type detailsPagerMsg struct {
	err error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status message after a delay
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
