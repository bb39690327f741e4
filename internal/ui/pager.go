package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/noborus/ov/oviewer"

	"epubshelf/internal/domain"
	"epubshelf/internal/download"
)

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show pages content, handing the terminal to ov until it exits
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// buildBookDetails renders the details page for one book
func buildBookDetails(book domain.Book, downloadDir string) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(wordwrap.String(book.Title, 72)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label+":")), value))
	}

	field("Category", book.Category)
	field("Subcategory", book.Subcategory)
	field("Path", book.Path)
	field("Download", book.DownloadURL)
	if downloadDir != "" {
		field("Saves to", filepath.Join(downloadDir, download.FileName(book)))
	}

	return b.String()
}
