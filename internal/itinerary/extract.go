package itinerary

import (
	"github.com/samber/lo"

	"triphelix-cli/internal/markdown"
)

// Row is one day of the table. Morning, Afternoon and Evening are
// sanitized HTML fragments; DateLabel is plain text.
type Row struct {
	Day       int
	DateLabel string
	Morning   string
	Afternoon string
	Evening   string
}

// Table is immutable once built. Rows keep source order.
type Table struct {
	Rows []Row
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Extract parses normalized markdown and renders every segment to safe
// HTML. When the text has no day marker it returns nil, false; that is a
// passthrough, not an error.
func Extract(normalized string) (*Table, bool) {
	doc := Parse(normalized)
	if len(doc.Days) == 0 {
		return nil, false
	}
	return FromDocument(doc), true
}

func FromDocument(doc Document) *Table {
	rows := lo.Map(doc.Days, func(d Day, _ int) Row {
		return Row{
			Day:       d.Number,
			DateLabel: d.Label,
			Morning:   renderSegment(d.Morning),
			Afternoon: renderSegment(d.Afternoon),
			Evening:   renderSegment(d.Evening),
		}
	})
	return &Table{Rows: rows}
}

func renderSegment(md string) string {
	if md == "" {
		return ""
	}
	return markdown.Sanitize(markdown.RenderInline(md))
}
