package services

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims surrounding whitespace",
			input:    "  hello world  ",
			expected: "hello world",
		},
		{
			name:     "collapses blank lines",
			input:    "line one\n\n\n\nline two\n\nline three",
			expected: "line one\nline two\nline three",
		},
		{
			name:     "trims each line",
			input:    "  indented  \n\t tabbed \n",
			expected: "indented\ntabbed",
		},
		{
			name:     "empty input",
			input:    "   \n\n  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractTextRejectsGarbage(t *testing.T) {
	extractor := NewPDFExtractor()

	if _, err := extractor.ExtractText([]byte("definitely not a pdf")); err == nil {
		t.Fatal("expected error for non-PDF bytes")
	}
}
