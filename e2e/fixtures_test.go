//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// book mirrors one catalog record
type book struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	DownloadURL string `json:"downloadUrl"`
}

// sampleBooks is a small catalog over three categories
func sampleBooks(baseURL string) []book {
	return []book{
		{Title: "Dune", Category: "Fiction", Subcategory: "SF", DownloadURL: baseURL + "/fiction/dune.epub"},
		{Title: "Cosmos", Category: "Science", DownloadURL: baseURL + "/science/cosmos.epub"},
		{Title: "Emma", Category: "Fiction", Subcategory: "Classics", DownloadURL: baseURL + "/fiction/emma.epub"},
		{Title: "Meditations", Category: "Philosophy", DownloadURL: baseURL + "/philosophy/meditations.epub"},
	}
}

// CreateTestWorkspace creates the temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteCatalog writes books as books.json in the workspace
func (tf *TUITestFramework) WriteCatalog(books []book) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	data, err := json.Marshal(books)
	if err != nil {
		return "", err
	}
	path := filepath.Join(tf.workspace, "books.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}
	return path, nil
}

// StartWithCatalog creates a workspace holding books and starts the browser on it
func (tf *TUITestFramework) StartWithCatalog(books []book) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	source, err := tf.WriteCatalog(books)
	if err != nil {
		return err
	}
	return tf.StartApp("--source", source)
}

// newBookServer serves a small fake epub for every path
func newBookServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/epub+zip")
		_, _ = w.Write([]byte("PK epub " + r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv
}
