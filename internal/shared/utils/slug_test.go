package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"version suffix kept", "Hello, World! v2", "hello-world-v2"},
		{"multiple spaces collapse", "a   lot   of   spaces", "a-lot-of-spaces"},
		{"diacritics folded", "Café au Lait", "cafe-au-lait"},
		{"leading and trailing junk", "  --Trim Me--  ", "trim-me"},
		{"numbers survive", "Top 10 Go Tips", "top-10-go-tips"},
		{"only symbols", "!!!", ""},
		{"empty title", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "creme brulee", RemoveDiacritics("crème brûlée"))
	assert.Equal(t, "unchanged", RemoveDiacritics("unchanged"))
}
