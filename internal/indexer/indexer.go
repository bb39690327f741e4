// Package indexer scans directories of epub files and produces the
// books.json catalog consumed by the browser.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"epubshelf/internal/domain"
	"epubshelf/internal/eventbus"
)

// rawURLFormat builds raw.githubusercontent.com links: user, repo, branch, path
const rawURLFormat = "https://raw.githubusercontent.com/%s/%s/%s/%s"

// Options configures a scan
type Options struct {
	Root        string   // directory the category directories live in
	Directories []string // category directories to scan, relative to Root
	RepoUser    string
	RepoName    string
	Branch      string
}

// Indexer finds epub files and turns them into catalog records
type Indexer struct {
	opts Options
	bus  eventbus.EventBus
}

// New creates an indexer. bus may be nil.
func New(opts Options, bus eventbus.EventBus) *Indexer {
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Indexer{opts: opts, bus: bus}
}

// Scan walks every configured directory and returns the records in walk
// order. Missing directories are skipped with a warning.
func (ix *Indexer) Scan(ctx context.Context) ([]domain.Book, error) {
	ix.publish(eventbus.ScanStartedEvent{Root: ix.opts.Root, Paths: ix.opts.Directories})
	slog.Info("Starting scan for EPUB files", "root", ix.opts.Root, "directories", len(ix.opts.Directories))

	var books []domain.Book
	for _, dir := range ix.opts.Directories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base := filepath.Join(ix.opts.Root, dir)
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			slog.Warn("Directory not found, skipping", "directory", dir)
			continue
		}

		found, err := ix.scanDirectory(ctx, base)
		if err != nil {
			return nil, err
		}
		books = append(books, found...)
	}

	slog.Info("Scan finished", "books", len(books))
	ix.publish(eventbus.ScanCompletedEvent{BooksFound: len(books)})
	return books, nil
}

// scanDirectory walks one category directory
func (ix *Indexer) scanDirectory(ctx context.Context, base string) ([]domain.Book, error) {
	var books []domain.Book

	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			slog.Warn("Error walking path", "path", p, "error", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".epub") {
			return nil
		}

		rel, err := filepath.Rel(ix.opts.Root, p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}

		book := ix.bookFor(filepath.ToSlash(rel))
		books = append(books, book)
		ix.publish(eventbus.BookIndexedEvent{Book: book})
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan %s: %w", base, err)
	}

	return books, nil
}

// bookFor derives a record from a slash-separated path relative to root:
// the first directory is the category, the remaining ones the subcategory
func (ix *Indexer) bookFor(relPath string) domain.Book {
	dir, file := path.Split(relPath)
	parts := strings.Split(strings.TrimSuffix(dir, "/"), "/")

	return domain.Book{
		Title:       strings.TrimSuffix(file, path.Ext(file)),
		Category:    parts[0],
		Subcategory: strings.Join(parts[1:], "/"),
		Path:        relPath,
		DownloadURL: ix.DownloadURL(relPath),
	}
}

// DownloadURL returns the raw GitHub URL for a repository-relative path
func (ix *Indexer) DownloadURL(relPath string) string {
	segments := strings.Split(relPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(rawURLFormat, ix.opts.RepoUser, ix.opts.RepoName, ix.opts.Branch, strings.Join(segments, "/"))
}

func (ix *Indexer) publish(event eventbus.DomainEvent) {
	if ix.bus != nil {
		ix.bus.Publish(event)
	}
}

// WriteJSON writes the records as indented UTF-8 JSON, creating the
// parent directory if needed
func WriteJSON(books []domain.Book, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if books == nil {
		books = []domain.Book{}
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return file.Close()
}
