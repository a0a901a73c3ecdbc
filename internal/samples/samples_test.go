package samples

import (
	"os"
	"path/filepath"
	"testing"

	"triphelix-cli/internal/markdown"
	"triphelix-cli/internal/service"
)

func TestLoadDefault(t *testing.T) {
	all, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(all) < 4 {
		t.Fatalf("samples = %d, want at least 4", len(all))
	}
	for _, s := range all {
		if s.Name == "" || s.Answer == "" {
			t.Errorf("incomplete sample %+v", s)
		}
	}
}

// Every built-in sample must survive the full pipeline with the expected
// number of days and a stable normalization.
func TestDefaultSamplesPipeline(t *testing.T) {
	all, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range all {
		t.Run(s.Name, func(t *testing.T) {
			res := service.Finalize(s.Answer)
			if got := res.Table.Len(); got != s.Days {
				t.Errorf("rows = %d, want %d\nnormalized:\n%s", got, s.Days, res.Normalized)
			}
			if again := markdown.Normalize(res.Normalized); again != res.Normalized {
				t.Errorf("normalization not idempotent:\n%q\n%q", res.Normalized, again)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds.yaml")
	data := "samples:\n  - name: one\n    days: 1\n    answer: \"**Day 1**\\nHike\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	all, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(all) != 1 || all[0].Answer != "**Day 1**\nHike" {
		t.Errorf("Load() = %+v", all)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("samples: [unclosed"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestFind(t *testing.T) {
	all := []Sample{{Name: "lisbon"}, {Name: "rome"}}
	if s, err := Find(all, "ROME"); err != nil || s.Name != "rome" {
		t.Errorf("Find(ROME) = %+v, %v", s, err)
	}
	if _, err := Find(all, "paris"); err == nil {
		t.Error("Find(paris) expected error")
	}
}

func TestPick(t *testing.T) {
	all := []Sample{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	tests := []struct {
		count int
		want  int
	}{
		{0, 3},
		{-1, 3},
		{2, 2},
		{5, 3},
	}
	for _, tt := range tests {
		if got := len(Pick(all, tt.count)); got != tt.want {
			t.Errorf("Pick(%d) = %d samples, want %d", tt.count, got, tt.want)
		}
	}
}
