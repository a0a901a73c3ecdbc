package service

import (
	"reflect"
	"testing"
)

func TestPreview(t *testing.T) {
	partial := "Your plan:## Day 1: Rome\n**Morning**\nCol"
	want := "Your plan:\n\n**Day 1: Rome**\n\n**Morning**\n\nCol"
	if got := Preview(partial); got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
	if again := Preview(Preview(partial)); again != want {
		t.Errorf("Preview() not stable: %q", again)
	}
}

func TestIsTrivialContent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", true},
		{"whitespace", "  \n\t ", true},
		{"ellipsis", "...", true},
		{"thinking", "Thinking...", true},
		{"real content", "Day 1", false},
		{"contains thinking", "I'm thinking... about Rome", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTrivialContent(tt.text); got != tt.want {
				t.Errorf("IsTrivialContent(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCompleteLines(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantComplete []string
		wantPartial  string
	}{
		{"no newline", "Hel", nil, "Hel"},
		{"one line", "Hello\nWor", []string{"Hello"}, "Wor"},
		{"trailing newline", "a\nb\n", []string{"a", "b"}, ""},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete, partial := CompleteLines(tt.text)
			if !reflect.DeepEqual(complete, tt.wantComplete) {
				t.Errorf("complete = %q, want %q", complete, tt.wantComplete)
			}
			if partial != tt.wantPartial {
				t.Errorf("partial = %q, want %q", partial, tt.wantPartial)
			}
		})
	}
}
