package export

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"

	"triphelix-cli/internal/itinerary"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatICS  Format = "ics"
)

// DefaultName is used when no file name is given.
const DefaultName = "itinerary.html"

// FormatOf picks the export format from the file extension. A name without
// an extension gets ".html" appended.
func FormatOf(name string) (Format, string, error) {
	if name == "" {
		name = DefaultName
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case "":
		return FormatHTML, name + ".html", nil
	case ".html", ".htm":
		return FormatHTML, name, nil
	case ".ics":
		return FormatICS, name, nil
	}
	return "", name, oops.In("export").With("file", name).Errorf("unsupported export type %q (use .html or .ics)", filepath.Ext(name))
}

// Itinerary is one finished answer ready for export.
type Itinerary struct {
	HTML  string
	Table *itinerary.Table
	Start time.Time
}

// Write exports it to path in the format implied by the extension and
// returns the path actually written.
func Write(it Itinerary, path string) (string, error) {
	format, path, err := FormatOf(path)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatICS:
		start := it.Start
		if start.IsZero() {
			start = time.Now()
		}
		return path, ICS(it.Table, start, path)
	default:
		return path, HTML(it.HTML, path)
	}
}
