package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Fiction", Book{Category: "Fiction"}.CategoryLabel())
	assert.Equal(t, "Science / Physics", Book{Category: "Science", Subcategory: "Physics"}.CategoryLabel())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		book Book
		ok   bool
	}{
		{"complete", Book{Title: "Alpha", Category: "Fiction", DownloadURL: "u1"}, true},
		{"subcategory optional", Book{Title: "Beta", Category: "Science", Subcategory: "Physics", DownloadURL: "u2"}, true},
		{"missing title", Book{Category: "Fiction", DownloadURL: "u1"}, false},
		{"missing category", Book{Title: "Alpha", DownloadURL: "u1"}, false},
		{"missing url", Book{Title: "Alpha", Category: "Fiction"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidBook))
		})
	}
}
