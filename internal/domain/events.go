package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded     EventType = "CatalogLoaded"
	EventCatalogLoadFailed EventType = "CatalogLoadFailed"
	EventFilterChanged     EventType = "FilterChanged"
	EventScanStarted       EventType = "ScanStarted"
	EventBookIndexed       EventType = "BookIndexed"
	EventScanCompleted     EventType = "ScanCompleted"
	EventDownloadRequested EventType = "DownloadRequested"
	EventDownloadCompleted EventType = "DownloadCompleted"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted once the provider delivered the records
type CatalogLoadedEvent struct {
	Books      int
	Categories int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogLoadFailedEvent is emitted when the provider failed
type CatalogLoadFailedEvent struct {
	Err error
}

func (e CatalogLoadFailedEvent) Type() EventType { return EventCatalogLoadFailed }

// FilterChangedEvent is emitted after the visible set was recomputed
type FilterChangedEvent struct {
	Category   string
	SearchTerm string
	Visible    int
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// ScanStartedEvent is emitted when the indexer begins walking directories
type ScanStartedEvent struct {
	Root  string
	Paths []string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// BookIndexedEvent is emitted for every epub the indexer finds
type BookIndexedEvent struct {
	Book Book
}

func (e BookIndexedEvent) Type() EventType { return EventBookIndexed }

// ScanCompletedEvent is emitted when the indexer finished
type ScanCompletedEvent struct {
	BooksFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// DownloadRequestedEvent asks the download service to fetch books
type DownloadRequestedEvent struct {
	Books []Book
}

func (e DownloadRequestedEvent) Type() EventType { return EventDownloadRequested }

// DownloadCompletedEvent is emitted once per requested book
type DownloadCompletedEvent struct {
	Title   string
	Path    string // local file path, empty on failure
	Skipped bool   // file already existed
	Err     error
}

func (e DownloadCompletedEvent) Type() EventType { return EventDownloadCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
