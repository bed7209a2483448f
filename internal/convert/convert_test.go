package convert

import (
	"strings"
	"testing"
)

func TestConvertTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"first h1", "intro text\n\n# Getting Started\n\n# Second\n", "Getting Started"},
		{"inline markup", "# Using `docnav` **fast**\n", "Using docnav fast"},
		{"setext h1", "Setext Title\n============\n\n# Later\n", "Setext Title"},
		{"setext h2 ignored", "Subtitle\n--------\n", "fallback"},
		{"h2 ignored", "## Not a title\n\ntext\n", "fallback"},
		{"h1 in code fence ignored", "```\n# comment\n```\n", "fallback"},
		{"front matter wins", "---\ntitle: From Header\n---\n# From Heading\n", "From Header"},
		{"empty front matter title", "---\ndraft: false\n---\n# Heading\n", "Heading"},
		{"no content", "", "fallback"},
		{"unicode", "# 快速开始\n", "快速开始"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := c.Convert([]byte(tt.input), "fallback")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Title != tt.expected {
				t.Errorf("title = %q, want %q", doc.Title, tt.expected)
			}
		})
	}
}

func TestConvertHTML(t *testing.T) {
	src := "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~ <span>raw</span>\n"
	doc, err := New().Convert([]byte(src), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(doc.HTML)

	if !strings.HasPrefix(html, "<article class=\"doc-article\">\n") {
		t.Errorf("expected article wrapper, got %q", html)
	}
	if !strings.HasSuffix(html, "\n</article>\n") {
		t.Errorf("expected closing article tag, got %q", html)
	}
	for _, want := range []string{`<h1 id="title">Title</h1>`, "<table>", "<del>old</del>", "<span>raw</span>"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, html)
		}
	}
}

func TestConvertFrontMatter(t *testing.T) {
	t.Run("draft flag", func(t *testing.T) {
		doc, err := New().Convert([]byte("---\ndraft: true\n---\nbody\n"), "x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !doc.Draft {
			t.Error("expected draft document")
		}
		if strings.Contains(string(doc.HTML), "draft") {
			t.Error("expected front matter stripped from output")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := New().Convert([]byte("---\ntitle: [broken\n---\nbody\n"), "x")
		if err == nil {
			t.Error("expected error for malformed front matter")
		}
	})

	t.Run("unterminated is body", func(t *testing.T) {
		doc, err := New().Convert([]byte("---\ntitle: x\nstill body\n"), "fb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Title != "fb" {
			t.Errorf("title = %q, want fallback", doc.Title)
		}
	})
}

func TestConvertText(t *testing.T) {
	src := "# Title\n\nSome *emphasis* here.\n\n- one\n- two\n\n```go\nfunc main() {}\n```\n"
	doc, err := New().Convert([]byte(src), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Title\nSome emphasis here.\none\ntwo\nfunc main() {}"
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"03_getting_started.html", "getting started"},
		{"00_intro", "intro"},
		{"readme", "readme"},
		{"10_", ""},
		{"2024report", "2024report"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
