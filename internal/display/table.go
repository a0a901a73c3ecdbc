package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"triphelix-cli/internal/itinerary"
	"triphelix-cli/internal/markdown"
)

const minColWidth = 8 // never shrink a column below this

// RenderTable draws an itinerary table with box-drawing borders. Column
// widths are capped so the table fits in maxWidth, and cells wrap across
// lines when needed.
func RenderTable(t *itinerary.Table, maxWidth int) string {
	if t.Len() == 0 {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = 100
	}

	header := itinerary.Columns
	rows := lo.Map(t.Rows, func(r itinerary.Row, _ int) []string {
		return []string{
			r.DayHeading(),
			cellText(r.Morning),
			cellText(r.Afternoon),
			cellText(r.Evening),
		}
	})
	numCols := len(header)

	// Natural width of a cell is its longest line.
	widths := make([]int, numCols)
	for _, cells := range append([][]string{header}, rows...) {
		for i, cell := range cells {
			for _, line := range strings.Split(cell, "\n") {
				widths[i] = max(widths[i], lipgloss.Width(line))
			}
		}
	}

	// Overhead per column: 1 border + 2 padding spaces = 3; plus 1 for the final border.
	overhead := 3*numCols + 1
	available := max(maxWidth-overhead, numCols*minColWidth)
	capColumns(widths, available)

	buildSepLine := func(left, mid, right string) string {
		var sb strings.Builder
		sb.WriteString(ansiAccent)
		sb.WriteString(left)
		for i, w := range widths {
			sb.WriteString(strings.Repeat("─", w+2))
			if i < len(widths)-1 {
				sb.WriteString(mid)
			}
		}
		sb.WriteString(right)
		sb.WriteString(ansiReset)
		return sb.String()
	}

	var out strings.Builder
	out.WriteString(buildSepLine("┌", "┬", "┐") + "\n")
	writeRow(&out, header, widths, ansiBold)
	out.WriteString(buildSepLine("├", "┼", "┤") + "\n")
	for i, cells := range rows {
		if i > 0 {
			out.WriteString(buildSepLine("├", "┼", "┤") + "\n")
		}
		writeRow(&out, cells, widths, ansiBody)
	}
	out.WriteString(buildSepLine("└", "┴", "┘"))
	return out.String()
}

// capColumns binary-searches the largest column cap that keeps the total
// width within available.
func capColumns(widths []int, available int) {
	if lo.Sum(widths) <= available {
		return
	}
	low, high := minColWidth, lo.Max(widths)
	colCap := minColWidth
	for low <= high {
		mid := (low + high) / 2
		sum := 0
		for _, w := range widths {
			sum += min(w, mid)
		}
		if sum <= available {
			colCap = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	for i, w := range widths {
		widths[i] = min(w, colCap)
	}
}

func writeRow(out *strings.Builder, cells []string, widths []int, style string) {
	cellLines := make([][]string, len(widths))
	maxSubLines := 1
	for i := range widths {
		for _, line := range strings.Split(cells[i], "\n") {
			cellLines[i] = append(cellLines[i], wrapCell(line, widths[i])...)
		}
		maxSubLines = max(maxSubLines, len(cellLines[i]))
	}

	for lineIdx := 0; lineIdx < maxSubLines; lineIdx++ {
		out.WriteString(ansiAccent + "│" + ansiReset)
		for i := range widths {
			cell := ""
			if lineIdx < len(cellLines[i]) {
				cell = cellLines[i][lineIdx]
			}
			padding := strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0))
			out.WriteString(" " + style + cell + ansiReset + padding + " ")
			out.WriteString(ansiAccent + "│" + ansiReset)
		}
		out.WriteString("\n")
	}
}

// wrapCell splits text into lines of at most maxWidth runes. It tries to
// break at spaces; falls back to hard wrap when no good break point is found
// in the second half of the line.
func wrapCell(text string, maxWidth int) []string {
	runes := []rune(text)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return []string{text}
	}
	var lines []string
	for len(runes) > maxWidth {
		split := maxWidth
		for split > maxWidth/2 && runes[split] != ' ' {
			split--
		}
		if split <= maxWidth/2 {
			split = maxWidth
		}
		lines = append(lines, string(runes[:split]))
		runes = []rune(strings.TrimLeft(string(runes[split:]), " "))
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return lines
}

// cellText turns a sanitized HTML segment into plain terminal text.
func cellText(fragment string) string {
	text := markdown.ToText(fragment)
	return strings.NewReplacer("**", "", "__", "").Replace(text)
}

// RenderAnswer renders a finished answer: the day table when one was
// extracted, otherwise the normalized markdown.
func RenderAnswer(normalized string, table *itinerary.Table, width int) string {
	if table.Len() > 0 {
		return RenderTable(table, width)
	}
	return RenderMarkdown(normalized, width)
}
