package display

import (
	"strings"
	"testing"
)

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role     string
		contains string
		color    string
	}{
		{"user", "you", Yellow},
		{"assistant", "triphelix", Cyan},
		{"system", "system", Gray},
	}

	for _, tt := range tests {
		label := RoleLabel(tt.role)
		if !strings.Contains(label, tt.contains) {
			t.Errorf("RoleLabel(%q) = %q, expected to contain %q", tt.role, label, tt.contains)
		}
		if !strings.Contains(label, tt.color) {
			t.Errorf("RoleLabel(%q) = %q, expected color %q", tt.role, label, tt.color)
		}
	}
}

func TestHealthLabel(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"healthy", "healthy"},
		{"", "unreachable"},
		{"degraded", "degraded"},
	}

	for _, tt := range tests {
		label := HealthLabel(tt.input)
		if !strings.Contains(label, tt.contains) {
			t.Errorf("HealthLabel(%q) = %q, expected to contain %q", tt.input, label, tt.contains)
		}
		if !strings.HasSuffix(label, Reset) {
			t.Errorf("HealthLabel(%q) = %q, expected ANSI-colored output", tt.input, label)
		}
	}
}
