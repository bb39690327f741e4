package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"epubshelf/internal/domain"
)

// File reads the collection from a local .json, .jsonl, .yaml or
// .parquet file
type File struct {
	path string
}

// NewFile creates a file provider
func NewFile(path string) *File {
	return &File{path: path}
}

// Fetch loads the collection, choosing the decoder by extension
func (p *File) Fetch(ctx context.Context) ([]domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		books []domain.Book
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(p.path)); ext {
	case ".json":
		books, err = p.loadJSON()
	case ".jsonl":
		books, err = p.loadJSONL()
	case ".yaml", ".yml":
		books, err = p.loadYAML()
	case ".parquet":
		books, err = p.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .json, .jsonl, .yaml, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validate(books); err != nil {
		return nil, err
	}
	slog.Debug("Loaded catalog file", "path", p.path, "books", len(books))
	return books, nil
}

func (p *File) loadJSON() ([]domain.Book, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return books, nil
}

func (p *File) loadJSONL() ([]domain.Book, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var books []domain.Book
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024 // 1MB per line
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var book domain.Book
		if err := json.Unmarshal(line, &book); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		books = append(books, book)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}
	return books, nil
}

func (p *File) loadYAML() ([]domain.Book, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var books []domain.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return books, nil
}

func (p *File) loadParquet() ([]domain.Book, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[domain.Book](pf)
	defer reader.Close()

	books := make([]domain.Book, 0, pf.NumRows())
	rows := make([]domain.Book, 128)
	for {
		n, err := reader.Read(rows)
		books = append(books, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
	return books, nil
}
