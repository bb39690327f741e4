package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"epubshelf/internal/domain"
)

// HTTP fetches a JSON array of books with a single GET request
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP provider. A nil client uses a client with a
// 30 second timeout.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTP{url: url, client: client}
}

// Fetch downloads and decodes the collection
func (p *HTTP) Fetch(ctx context.Context) ([]domain.Book, error) {
	slog.Debug("Fetching catalog", "url", p.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var books []domain.Book
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validate(books); err != nil {
		return nil, err
	}

	slog.Debug("Fetched catalog", "url", p.url, "books", len(books))
	return books, nil
}
