// Package catalog holds the in-memory catalog state: the loaded records,
// the active category and search term, and the visible subset derived
// from them.
package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
)

// Presenter is the rendering surface the controller drives
type Presenter interface {
	RenderCategories(categories []string, active string)
	RenderBooks(books []domain.Book)
	RenderNoResults()
	RenderLoadError()
}

// LoadingPresenter is implemented by presenters that show a transition
// while a recomputed book list is pending
type LoadingPresenter interface {
	RenderLoading(pending bool)
}

// Provider yields the full record collection in a single request
type Provider interface {
	Fetch(ctx context.Context) ([]domain.Book, error)
}

// State is the controller's macro state
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// Controller owns one catalog session. It is not safe for concurrent use;
// all calls must come from the same event loop.
type Controller struct {
	presenter Presenter
	scheduler Scheduler
	delay     time.Duration
	bus       eventbus.EventBus

	state          State
	all            []domain.Book
	categories     []string
	activeCategory string
	searchTerm     string
	err            *LoadFailure

	pending     uint64 // token of the latest scheduled render
	stopPending func()
}

// NewController creates a controller in the unloaded state. A nil
// scheduler renders synchronously.
func NewController(presenter Presenter, scheduler Scheduler, delay time.Duration) *Controller {
	if scheduler == nil {
		scheduler = Immediate{}
	}
	return &Controller{
		presenter:      presenter,
		scheduler:      scheduler,
		delay:          delay,
		activeCategory: domain.AllCategories,
	}
}

// SetBus enables publishing of catalog events
func (c *Controller) SetBus(bus eventbus.EventBus) {
	c.bus = bus
}

// Load fetches the records from the provider and resolves the session
func (c *Controller) Load(ctx context.Context, provider Provider) {
	if c.state != StateUnloaded {
		slog.Warn("Ignoring repeated catalog load", "state", c.state)
		return
	}
	books, err := provider.Fetch(ctx)
	c.Resolve(books, err)
}

// Resolve completes the single-shot load with the provider result.
// A non-nil err moves the controller to the terminal load-failed state.
func (c *Controller) Resolve(books []domain.Book, err error) {
	if c.state != StateUnloaded {
		slog.Warn("Ignoring repeated catalog load", "state", c.state)
		return
	}

	if err != nil {
		c.state = StateLoadFailed
		c.err = &LoadFailure{Err: err}
		slog.Error("Could not fetch books", "error", err)
		c.publish(eventbus.CatalogLoadFailedEvent{Err: c.err})
		c.presenter.RenderLoadError()
		return
	}

	c.all = slices.Clip(slices.Clone(books))
	c.categories = Categories(c.all)
	c.state = StateLoaded
	slog.Debug("Catalog loaded", "books", len(c.all), "categories", len(c.categories)-1)
	c.publish(eventbus.CatalogLoadedEvent{Books: len(c.all), Categories: len(c.categories) - 1})

	c.presenter.RenderCategories(c.Categories(), c.activeCategory)
	c.render()
}

// SetActiveCategory selects a category (or domain.AllCategories).
// Comparison is exact; an unknown category yields no results.
func (c *Controller) SetActiveCategory(category string) {
	if c.state == StateLoadFailed {
		return
	}
	c.activeCategory = category
	if c.state != StateLoaded {
		return
	}
	c.presenter.RenderCategories(c.Categories(), c.activeCategory)
	c.scheduleRender()
}

// SetSearchTerm replaces the free-text search term
func (c *Controller) SetSearchTerm(term string) {
	if c.state == StateLoadFailed {
		return
	}
	c.searchTerm = term
	if c.state != StateLoaded {
		return
	}
	c.scheduleRender()
}

// State returns the macro state
func (c *Controller) State() State {
	return c.state
}

// Err returns the load failure, if any
func (c *Controller) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// ActiveCategory returns the selected category
func (c *Controller) ActiveCategory() string {
	return c.activeCategory
}

// SearchTerm returns the search term as typed
func (c *Controller) SearchTerm() string {
	return c.searchTerm
}

// Categories returns the category list, sentinel first
func (c *Controller) Categories() []string {
	return slices.Clone(c.categories)
}

// All returns every loaded record in provider order
func (c *Controller) All() []domain.Book {
	return slices.Clone(c.all)
}

// Len returns the number of loaded records
func (c *Controller) Len() int {
	return len(c.all)
}

// Visible returns the records matching the current filter state
func (c *Controller) Visible() []domain.Book {
	if c.state != StateLoaded {
		return nil
	}
	return Filter(c.all, c.activeCategory, c.searchTerm)
}

// scheduleRender replaces any pending render with a new one. The task
// reads the state when it fires, so the newest filter always wins.
func (c *Controller) scheduleRender() {
	if c.stopPending != nil {
		c.stopPending()
		c.stopPending = nil
	}
	if lp, ok := c.presenter.(LoadingPresenter); ok {
		lp.RenderLoading(true)
	}

	c.pending++
	token := c.pending
	fired := false
	stop := c.scheduler.Schedule(c.delay, func() {
		fired = true
		if token != c.pending {
			return
		}
		c.stopPending = nil
		c.render()
	})
	if !fired {
		c.stopPending = stop
	}
}

func (c *Controller) render() {
	visible := c.Visible()
	if lp, ok := c.presenter.(LoadingPresenter); ok {
		lp.RenderLoading(false)
	}
	c.publish(eventbus.FilterChangedEvent{
		Category:   c.activeCategory,
		SearchTerm: c.searchTerm,
		Visible:    len(visible),
	})

	if len(visible) == 0 {
		c.presenter.RenderNoResults()
		return
	}
	c.presenter.RenderBooks(visible)
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
