package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToEmailHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain paragraph",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<p><strong>bold</strong></p>\n",
		},
		{
			name:     "italic text",
			input:    "*italic*",
			expected: "<p><em>italic</em></p>\n",
		},
		{
			name:     "heading kept",
			input:    "# Market Update",
			expected: "<h1>Market Update</h1>\n",
		},
		{
			name:     "strikethrough",
			input:    "~~struck~~",
			expected: "<p><del>struck</del></p>\n",
		},
		{
			name:     "list",
			input:    "- first\n- second",
			expected: "<ul>\n<li>first</li>\n<li>second</li>\n</ul>\n",
		},
		{
			name:     "code tags stripped",
			input:    "`rate`",
			expected: "<p>rate</p>\n",
		},
		{
			name:     "link kept with href only",
			input:    "[site](https://example.com)",
			expected: "<p><a href=\"https://example.com\">site</a></p>\n",
		},
		{
			name:     "script tags sanitized",
			input:    "<script>alert(1)</script>",
			expected: "\n",
		},
		{
			name:     "blockquote",
			input:    "> quoted",
			expected: "<blockquote>\n<p>quoted</p>\n</blockquote>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToEmailHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToEmailHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownToPlainText(t *testing.T) {
	got, err := MarkdownToPlainText([]byte("**Quarterly outlook** for your portfolio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<") {
		t.Errorf("plain text still contains markup: %q", got)
	}
	if !strings.Contains(got, "Quarterly outlook") {
		t.Errorf("plain text lost content: %q", got)
	}
}

func TestMarkdownToPlainText_KeepsLinkTargets(t *testing.T) {
	got, err := MarkdownToPlainText([]byte("See [our site](https://example.com) for details"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("plain text dropped link target: %q", got)
	}
}
