package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
)

// Result describes the outcome of one book download
type Result struct {
	Book    domain.Book
	Path    string
	Skipped bool
	Err     error
}

// Service downloads books into a directory
type Service struct {
	bus        eventbus.EventBus
	dir        string
	client     *http.Client
	workerPool chan struct{} // Semaphore for limiting concurrent downloads
}

// NewService creates a download service. When bus is non-nil the service
// handles DownloadRequested events and answers with DownloadCompleted.
// Downloads started from events stop when ctx is cancelled.
func NewService(ctx context.Context, bus eventbus.EventBus, dir string, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	s := &Service{
		bus:        bus,
		dir:        dir,
		client:     client,
		workerPool: make(chan struct{}, 3), // Limit to 3 concurrent downloads
	}

	if bus != nil {
		bus.Subscribe(eventbus.EventDownloadRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.DownloadRequestedEvent); ok {
				ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
				defer cancel()

				for _, r := range s.FetchAll(ctx, event.Books) {
					if r.Err != nil {
						slog.Error("Download failed", "title", r.Book.Title, "error", r.Err)
					}
					bus.Publish(eventbus.DownloadCompletedEvent{
						Title:   r.Book.Title,
						Path:    r.Path,
						Skipped: r.Skipped,
						Err:     r.Err,
					})
				}
			}
		})
	}

	return s
}

// Dir returns the target directory
func (s *Service) Dir() string {
	return s.dir
}

// FetchAll downloads books concurrently. Results are in input order.
func (s *Service) FetchAll(ctx context.Context, books []domain.Book) []Result {
	results := make([]Result, len(books))
	var wg sync.WaitGroup

	for i, book := range books {
		wg.Add(1)
		go func(i int, book domain.Book) {
			defer wg.Done()
			results[i] = s.Fetch(ctx, book)
		}(i, book)
	}

	wg.Wait()
	return results
}

// Fetch downloads one book. Existing files are not downloaded again.
func (s *Service) Fetch(ctx context.Context, book domain.Book) Result {
	result := Result{Book: book}

	// Acquire worker slot
	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-ctx.Done():
		result.Err = ctx.Err()
		return result
	}

	dest, err := s.destination(book)
	if err != nil {
		result.Err = err
		return result
	}
	if _, err := os.Stat(dest); err == nil {
		result.Path = dest
		result.Skipped = true
		return result
	}

	if err := s.download(ctx, book.DownloadURL, dest); err != nil {
		result.Err = fmt.Errorf("failed to download %q: %w", book.Title, err)
		return result
	}

	slog.Info("Downloaded book", "title", book.Title, "path", dest)
	result.Path = dest
	return result
}

func (s *Service) download(ctx context.Context, rawURL, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	// Write to a temp file first so a failed transfer leaves nothing behind
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// FileName returns the local file name for a book: the unescaped last
// segment of its URL, or the title when the URL has none. The result is
// always a single path element.
func FileName(book domain.Book) string {
	name := ""
	if u, err := url.Parse(book.DownloadURL); err == nil {
		name = safeName(path.Base(u.Path))
	}
	if name == "" {
		name = safeName(book.Title + ".epub")
	}
	if name == "" {
		name = "book.epub"
	}
	return name
}

// safeName reduces name to one path element, or "" when nothing usable remains
func safeName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	name = filepath.Base(name)
	switch name {
	case "", ".", "..", "_", string(filepath.Separator):
		return ""
	}
	return name
}

// ErrUnsafePath is returned when a destination would leave the download directory
var ErrUnsafePath = errors.New("destination outside download directory")

// destination joins the file name for book onto the download directory
// and checks that the result stays inside it
func (s *Service) destination(book domain.Book) (string, error) {
	dest := filepath.Join(s.dir, FileName(book))
	rel, err := filepath.Rel(s.dir, dest)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || strings.Contains(rel, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, book.Title)
	}
	return dest, nil
}

// ErrNothingToDownload is returned when a download request is empty
var ErrNothingToDownload = errors.New("nothing to download")
