package textproc

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips month label prefix",
			input:    "June Newsletter Intro: Summer is here!",
			expected: "Summer is here!",
		},
		{
			name:     "strips bare label prefix",
			input:    "Quick Tip: Store your pearls away from other jewelry.",
			expected: "Store your pearls away from other jewelry.",
		},
		{
			name:     "strips label case insensitively",
			input:    "VIDEO DESCRIPTION: A tour of the vault.",
			expected: "A tour of the vault.",
		},
		{
			name:     "strips wrapping quotes",
			input:    "\"Summer is here!\"",
			expected: "Summer is here!",
		},
		{
			name:     "strips curly quotes",
			input:    "“Summer is here!”",
			expected: "Summer is here!",
		},
		{
			name:     "strips markdown heading marker",
			input:    "## Intro: Welcome back to the studio.",
			expected: "Welcome back to the studio.",
		},
		{
			name:     "drops short hallucinated title line",
			input:    "A Sparkling June\nSummer is here and so are the sapphires we love to see.",
			expected: "Summer is here and so are the sapphires we love to see.",
		},
		{
			name:     "keeps first line ending in terminal punctuation",
			input:    "Summer is here.\nAnd so are the sapphires.",
			expected: "Summer is here.\nAnd so are the sapphires.",
		},
		{
			name:     "quoted label over heading is fully unwrapped",
			input:    "\"Newsletter Intro: Sunshine and citrine all month long!\"",
			expected: "Sunshine and citrine all month long!",
		},
		{
			name:     "plain text passes through",
			input:    "Summer is here!",
			expected: "Summer is here!",
		},
		{
			name:     "whitespace only becomes empty",
			input:    "   \n  ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"June Newsletter Intro: Summer is here!",
		"\"Quick Tip: Keep gold away from chlorine.\"",
		"## A Month of Emeralds\nGreen is having a moment this season.",
		"**Bold** opener with a [link](https://example.com) inside.",
		"Trend Alert: Stacked rings are back in a big way this year.",
		"Plain already-clean copy that needs no work at all.",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold",
			input:    "A **sparkling** deal",
			expected: "A <strong>sparkling</strong> deal",
		},
		{
			name:     "italic",
			input:    "A *subtle* shine",
			expected: "A <em>subtle</em> shine",
		},
		{
			name:     "link",
			input:    "Read [the story](https://example.com/ring)",
			expected: `Read <a href="https://example.com/ring">the story</a>`,
		},
		{
			name:     "no markdown",
			input:    "Nothing fancy here",
			expected: "Nothing fancy here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML(tt.input)
			if got != tt.expected {
				t.Errorf("MarkdownToHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
