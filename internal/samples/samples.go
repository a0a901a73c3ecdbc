// Package samples ships named assistant answers for offline rendering and
// pipeline checks.
package samples

import (
	_ "embed"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var defaultDataset []byte

type Sample struct {
	Name   string   `yaml:"name" json:"name"`
	Title  string   `yaml:"title" json:"title"`
	Tags   []string `yaml:"tags" json:"tags,omitempty"`
	Days   int      `yaml:"days" json:"days"`
	Answer string   `yaml:"answer" json:"answer"`
}

type dataset struct {
	Samples []Sample `yaml:"samples"`
}

// Load parses a dataset file. When filename is empty the built-in dataset
// is used.
func Load(filename string) ([]Sample, error) {
	raw := defaultDataset
	if filename != "" {
		var err error
		raw, err = os.ReadFile(filename)
		if err != nil {
			return nil, oops.In("samples").With("file", filename).Errorf("reading dataset: %w", err)
		}
	}
	var ds dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, oops.In("samples").Errorf("parsing dataset: %w", err)
	}
	return ds.Samples, nil
}

// Find looks a sample up by name, ignoring case.
func Find(all []Sample, name string) (Sample, error) {
	s, ok := lo.Find(all, func(s Sample) bool {
		return strings.EqualFold(s.Name, name)
	})
	if !ok {
		names := lo.Map(all, func(s Sample, _ int) string { return s.Name })
		return Sample{}, oops.In("samples").Errorf("unknown sample %q (available: %s)", name, strings.Join(names, ", "))
	}
	return s, nil
}

// Pick returns the first count samples, or all of them when count <= 0.
func Pick(all []Sample, count int) []Sample {
	if count <= 0 || count >= len(all) {
		return all
	}
	return all[:count]
}
