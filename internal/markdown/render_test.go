package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"bold", "**bold** text", []string{"<strong>bold</strong>"}},
		{"emphasis", "an *italic* word", []string{"<em>italic</em>"}},
		{"paragraphs", "one\n\ntwo", []string{"<p>one</p>", "<p>two</p>"}},
		{"hard wrap", "line one\nline two", []string{"line one<br", "line two"}},
		{"list", "- a\n- b", []string{"<ul>", "<li>a</li>", "<li>b</li>"}},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, missing %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single paragraph unwrapped", "Breakfast", "Breakfast"},
		{"inline bold", "**Louvre** visit", "<strong>Louvre</strong> visit"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderInline(tt.input); got != tt.want {
				t.Errorf("RenderInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("multiple paragraphs kept", func(t *testing.T) {
		got := RenderInline("one\n\ntwo")
		if !strings.HasPrefix(got, "<p>one</p>") {
			t.Errorf("RenderInline() = %q, want paragraphs kept", got)
		}
	})

	t.Run("list kept", func(t *testing.T) {
		got := RenderInline("- a\n- b")
		if !strings.HasPrefix(got, "<ul>") {
			t.Errorf("RenderInline() = %q, want list", got)
		}
	})
}
