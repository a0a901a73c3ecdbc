package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// ─── Markdown (lightweight in-house renderer) ──────────────────────────────
//
// Fast line-by-line rendering for text that is still streaming. Finished
// answers go through glamour when it is available.

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiItalic    = "\033[3m"
	ansiUnderline = "\033[4m"

	ansiHeading = "\033[1;97m"     // bold bright white
	ansiInfo    = "\033[38;5;39m"  // cyan 39, links
	ansiWarning = "\033[38;5;220m" // yellow 220, inline code
	ansiSuccess = "\033[38;5;78m"  // green 78, code borders
	ansiAccent  = "\033[38;5;73m"  // teal 73, table borders and numbered dots
	ansiBody    = "\033[38;5;252m" // light 252, body text
)

// MarkdownState tracks state across lines (e.g., inside code block).
type MarkdownState struct {
	inCodeBlock bool
}

// RenderMarkdownLine renders a single line of markdown to styled terminal
// output.
func RenderMarkdownLine(line string, state *MarkdownState) string {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, "```") {
		if !state.inCodeBlock {
			state.inCodeBlock = true
			lang := strings.TrimSpace(trimmed[3:])
			if lang != "" {
				return fmt.Sprintf("%s┌─ %s ─%s", ansiSuccess, lang, ansiReset)
			}
			return fmt.Sprintf("%s┌──%s", ansiSuccess, ansiReset)
		}
		state.inCodeBlock = false
		return fmt.Sprintf("%s└──%s", ansiSuccess, ansiReset)
	}

	if state.inCodeBlock {
		return fmt.Sprintf("%s│%s %s%s%s", ansiSuccess, ansiReset, ansiBody, line, ansiReset)
	}

	if level := headingLevel(trimmed); level > 0 {
		return fmt.Sprintf("%s%s%s", ansiHeading, trimmed[level+1:], ansiReset)
	}

	// Day and section lines are bold-only lines after normalization.
	if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4 &&
		!strings.Contains(trimmed[2:len(trimmed)-2], "**") {
		return fmt.Sprintf("%s%s%s", ansiHeading, trimmed[2:len(trimmed)-2], ansiReset)
	}

	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		return fmt.Sprintf("%s────────────────────────────────────────%s", ansiAccent, ansiReset)
	}

	if strings.HasPrefix(trimmed, "> ") {
		return fmt.Sprintf("%s│%s %s%s%s", ansiAccent, ansiReset, ansiBody, RenderInlineMarkdown(trimmed[2:]), ansiReset)
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	pad := strings.Repeat(" ", indent)

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return fmt.Sprintf("%s%s• %s%s", pad, ansiBody, RenderInlineMarkdown(trimmed[2:]), ansiReset)
	}

	if dotIdx := strings.Index(trimmed, ". "); dotIdx > 0 && dotIdx <= 3 {
		num := trimmed[:dotIdx]
		allDigit := true
		for _, c := range num {
			if c < '0' || c > '9' {
				allDigit = false
				break
			}
		}
		if allDigit {
			return fmt.Sprintf("%s%s%s.%s %s%s%s", pad, ansiAccent, num, ansiReset, ansiBody, RenderInlineMarkdown(trimmed[dotIdx+2:]), ansiReset)
		}
	}

	return fmt.Sprintf("%s%s%s", ansiBody, RenderInlineMarkdown(line), ansiReset)
}

func headingLevel(trimmed string) int {
	for level := 6; level >= 1; level-- {
		if strings.HasPrefix(trimmed, strings.Repeat("#", level)+" ") {
			return level
		}
	}
	return 0
}

// RenderInlineMarkdown handles inline formatting: **bold**, *italic*, `code`, [links](url)
func RenderInlineMarkdown(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		// Bold: **text**
		if i+3 < len(text) && text[i] == '*' && text[i+1] == '*' {
			end := strings.Index(text[i+2:], "**")
			if end > 0 {
				out.WriteString(ansiBold)
				out.WriteString(RenderInlineMarkdown(text[i+2 : i+2+end]))
				out.WriteString(ansiReset)
				i += 4 + end
				continue
			}
		}

		// Italic: *text*
		if text[i] == '*' && (i == 0 || text[i-1] == ' ') {
			end := strings.IndexByte(text[i+1:], '*')
			if end > 0 {
				out.WriteString(ansiItalic)
				out.WriteString(text[i+1 : i+1+end])
				out.WriteString(ansiReset)
				i += 2 + end
				continue
			}
		}

		if text[i] == '`' {
			end := strings.IndexByte(text[i+1:], '`')
			if end >= 0 {
				out.WriteString(ansiWarning)
				out.WriteString(text[i+1 : i+1+end])
				out.WriteString(ansiReset)
				i += 2 + end
				continue
			}
		}

		// Links: [text](url)
		if text[i] == '[' {
			cb := strings.IndexByte(text[i:], ']')
			if cb > 1 && i+cb+1 < len(text) && text[i+cb+1] == '(' {
				cp := strings.IndexByte(text[i+cb+1:], ')')
				if cp > 0 {
					linkText := text[i+1 : i+cb]
					url := text[i+cb+2 : i+cb+1+cp]
					out.WriteString(ansiUnderline)
					out.WriteString(ansiInfo)
					out.WriteString(linkText)
					out.WriteString(ansiReset)
					out.WriteString(ansiInfo)
					out.WriteString(" (")
					out.WriteString(url)
					out.WriteString(")")
					out.WriteString(ansiReset)
					i += cb + 1 + cp + 1
					continue
				}
			}
		}

		out.WriteByte(text[i])
		i++
	}
	return out.String()
}

// RenderMarkdownBlock renders a full markdown block line by line.
func RenderMarkdownBlock(content string) string {
	lines := strings.Split(content, "\n")
	state := &MarkdownState{}
	var result []string
	for _, line := range lines {
		result = append(result, RenderMarkdownLine(line, state))
	}
	return strings.Join(result, "\n")
}

// RenderMarkdown renders a finished answer with glamour, falling back to the
// in-house renderer if glamour cannot be set up.
func RenderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return RenderMarkdownBlock(content)
	}
	out, err := r.Render(content)
	if err != nil {
		return RenderMarkdownBlock(content)
	}
	return strings.Trim(out, "\n")
}

// LinePrinter prints a growing answer one complete line at a time. It is
// fed the accumulated text after every chunk.
type LinePrinter struct {
	w       io.Writer
	printed int
	buf     string
	state   MarkdownState
}

func NewLinePrinter(w io.Writer) *LinePrinter {
	return &LinePrinter{w: w}
}

// Update prints the lines completed since the previous call.
func (p *LinePrinter) Update(accumulated string) {
	if len(accumulated) < p.printed {
		return
	}
	p.buf += accumulated[p.printed:]
	p.printed = len(accumulated)
	for {
		idx := strings.IndexByte(p.buf, '\n')
		if idx < 0 {
			break
		}
		line := p.buf[:idx]
		p.buf = p.buf[idx+1:]
		fmt.Fprintln(p.w, RenderMarkdownLine(line, &p.state))
	}
}

// Flush prints any trailing partial line.
func (p *LinePrinter) Flush() {
	if p.buf == "" {
		return
	}
	fmt.Fprintln(p.w, RenderMarkdownLine(p.buf, &p.state))
	p.buf = ""
}
