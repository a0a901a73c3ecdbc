package itinerary

import (
	"fmt"
	"html"
	"strings"

	"triphelix-cli/internal/markdown"
)

// Columns are the table headings in display order.
var Columns = []string{"Day", "Morning", "Afternoon", "Evening"}

// HTML assembles the table markup. The result is sanitized.
func (t *Table) HTML() string {
	if t == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<table class="itinerary-table"><thead><tr>`)
	for _, c := range Columns {
		fmt.Fprintf(&b, "<th>%s</th>", c)
	}
	b.WriteString("</tr></thead><tbody>")
	for _, r := range t.Rows {
		b.WriteString(`<tr class="itinerary-row">`)
		fmt.Fprintf(&b, `<td class="itinerary-day">%s</td>`, dayCell(r))
		fmt.Fprintf(&b, `<td class="itinerary-morning">%s</td>`, r.Morning)
		fmt.Fprintf(&b, `<td class="itinerary-afternoon">%s</td>`, r.Afternoon)
		fmt.Fprintf(&b, `<td class="itinerary-evening">%s</td>`, r.Evening)
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return markdown.Sanitize(b.String())
}

// DayHeading is "Day N" or "Day N: label".
func (r Row) DayHeading() string {
	if r.DateLabel == "" {
		return fmt.Sprintf("Day %d", r.Day)
	}
	return fmt.Sprintf("Day %d: %s", r.Day, r.DateLabel)
}

func dayCell(r Row) string {
	cell := fmt.Sprintf("<strong>Day %d</strong>", r.Day)
	if r.DateLabel != "" {
		cell += "<br>" + html.EscapeString(r.DateLabel)
	}
	return cell
}
