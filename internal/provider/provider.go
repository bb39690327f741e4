// Package provider fetches the catalog records from a URL or a local file.
package provider

import (
	"fmt"
	"strings"

	"epubshelf/internal/catalog"
	"epubshelf/internal/domain"
)

// New returns an HTTP provider for http(s) sources and a file provider
// for everything else
func New(source string) catalog.Provider {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTP(source, nil)
	}
	return NewFile(source)
}

// validate rejects the whole collection if any record is incomplete
func validate(books []domain.Book) error {
	for i, book := range books {
		if err := book.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
