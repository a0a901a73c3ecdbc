// Package export writes finalized itineraries to files.
package export

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"

	"triphelix-cli/internal/markdown"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table.itinerary-table { border-collapse: collapse; width: 100%; }
table.itinerary-table th, table.itinerary-table td { border: 1px solid #ccc; padding: 0.5rem; vertical-align: top; text-align: left; }
table.itinerary-table th { background: #f3f3f3; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))

// DefaultTitle heads exported documents.
const DefaultTitle = "TripHelix Itinerary"

// HTML writes content as a standalone document. The content is sanitized
// again before it is embedded.
func HTML(content, path string) error {
	if strings.TrimSpace(content) == "" {
		return oops.In("export").Errorf("nothing to export")
	}

	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: DefaultTitle,
		Body:  template.HTML(markdown.Sanitize(content)),
	})
	if err != nil {
		return oops.In("export").Errorf("rendering page: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return oops.In("export").With("path", path).Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oops.In("export").With("path", path).Errorf("writing file: %w", err)
	}
	return nil
}
