package web

import (
	"bytes"
	"fmt"
	"html/template"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func newAboutPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// RenderMarkdown converts markdown to sanitised HTML
func RenderMarkdown(src []byte) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(newAboutPolicy().SanitizeBytes(buf.Bytes())), nil
}

// LoadAbout reads and renders the about file. An empty path yields no block.
func LoadAbout(path string) (template.HTML, error) {
	if path == "" {
		return "", nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read about file: %w", err)
	}
	return RenderMarkdown(src)
}
