package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"epubshelf/internal/domain"
)

// Filter returns the books in the given category (domain.AllCategories
// for every category) that match term. The input order is preserved.
func Filter(books []domain.Book, category, term string) []domain.Book {
	matcher := NewMatcher(term)
	filtered := make([]domain.Book, 0, len(books))
	for _, book := range books {
		if category != domain.AllCategories && book.Category != category {
			continue
		}
		if !matcher.Match(book) {
			continue
		}
		filtered = append(filtered, book)
	}
	return filtered
}

// Categories returns the sentinel followed by each distinct category in
// first-occurrence order
func Categories(books []domain.Book) []string {
	seen := map[string]bool{domain.AllCategories: true}
	categories := []string{domain.AllCategories}
	for _, book := range books {
		if seen[book.Category] {
			continue
		}
		seen[book.Category] = true
		categories = append(categories, book.Category)
	}
	return categories
}

// Matcher tests books against a lowercased search term.
// A Matcher is not safe for concurrent use.
type Matcher struct {
	term  string
	lower cases.Caser
}

// NewMatcher creates a matcher for term
func NewMatcher(term string) *Matcher {
	lower := cases.Lower(language.Und)
	return &Matcher{
		term:  lower.String(term),
		lower: lower,
	}
}

// Match reports whether the term is a substring of the title, the
// category or the subcategory. An empty term matches everything.
func (m *Matcher) Match(book domain.Book) bool {
	if m.term == "" {
		return true
	}
	return strings.Contains(m.lower.String(book.Title), m.term) ||
		strings.Contains(m.lower.String(book.Category), m.term) ||
		(book.HasSubcategory() && strings.Contains(m.lower.String(book.Subcategory), m.term))
}
