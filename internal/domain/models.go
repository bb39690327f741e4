package domain

import (
	"errors"
	"fmt"
)

// AllCategories is the category sentinel meaning "no category filter"
const AllCategories = "הכל"

// CategorySeparator joins category and subcategory in display
const CategorySeparator = " / "

// Book represents one catalog entry
type Book struct {
	Title       string `json:"title" yaml:"title" parquet:"title"`
	Category    string `json:"category" yaml:"category" parquet:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory,omitempty" parquet:"subcategory"` // "" when absent
	Path        string `json:"path,omitempty" yaml:"path,omitempty" parquet:"path"`            // repository-relative file path
	DownloadURL string `json:"downloadUrl" yaml:"downloadUrl" parquet:"downloadUrl"`
}

// ErrInvalidBook is returned when a record is missing a required field
var ErrInvalidBook = errors.New("invalid book record")

// HasSubcategory reports whether the book carries a subcategory
func (b Book) HasSubcategory() bool {
	return b.Subcategory != ""
}

// CategoryLabel returns the category joined with the subcategory, if any
func (b Book) CategoryLabel() string {
	if b.HasSubcategory() {
		return b.Category + CategorySeparator + b.Subcategory
	}
	return b.Category
}

// Validate checks the required fields of a record
func (b Book) Validate() error {
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: missing title", ErrInvalidBook)
	case b.Category == "":
		return fmt.Errorf("%w: %q has no category", ErrInvalidBook, b.Title)
	case b.DownloadURL == "":
		return fmt.Errorf("%w: %q has no downloadUrl", ErrInvalidBook, b.Title)
	}
	return nil
}
