package tui

import (
	"fmt"
	"strings"

	"triphelix-cli/internal/display"
	"triphelix-cli/internal/service"
)

// ─── Welcome Screen ─────────────────────────────────────────────────────────

func renderWelcome(version, server, sessionID string, width int) string {
	titleLine := logoTitleStyle.Render("TripHelix") + " " + versionStyle.Render("v"+version)

	serverDisplay := truncate(server, 40)
	infoLine := welcomeInfoLabel.Render(fmt.Sprintf("%s · session %s", serverDisplay, truncateUUID(sessionID)))
	hint := welcomeHintStyle.Render("Ask for a trip plan, or type /help")

	art := ""
	if width == 0 || width >= 40 {
		art = renderLogoASCIIArt() + "\n\n"
	}
	return fmt.Sprintf("\n%s%s\n%s\n%s\n", art, titleLine, infoLine, hint)
}

const logoASCIIArt = `
          \   |   /
        ~~  .ooo.  ~~      ~~~
     ~~~   ooooooo   ~~~
            'ooo'         ~~
        /\          /\
       /  \   /\   /  \/\
      /    \_/  \_/    \ \
  ___/                  \_\___
`

func renderLogoASCIIArt() string {
	lines := strings.Split(logoASCIIArt, "\n")
	lines = trimEmptyEdgeLines(lines)

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := countLeadingSpaces(line)
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		if minIndent > 0 && len(line) >= minIndent {
			line = line[minIndent:]
		}
		lines[i] = colorizeLogoLine(line)
	}

	return strings.Join(lines, "\n")
}

func trimEmptyEdgeLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func countLeadingSpaces(s string) int {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// colorizeLogoLine styles runs of sun, sky and land characters.
func colorizeLogoLine(line string) string {
	const (
		stylePlain = iota
		styleSky
		styleSun
		styleLand
	)

	styleFor := func(r rune) int {
		switch r {
		case '~':
			return styleSky
		case 'o', '.', '\'', '|':
			return styleSun
		case '/', '\\', '_':
			return styleLand
		default:
			return stylePlain
		}
	}

	render := func(style int, s string) string {
		switch style {
		case styleSky:
			return logoSkyStyle.Render(s)
		case styleSun:
			return logoSunStyle.Render(s)
		case styleLand:
			return logoLandStyle.Render(s)
		default:
			return s
		}
	}

	var out strings.Builder
	var run strings.Builder
	currentStyle := stylePlain
	first := true

	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(render(currentStyle, run.String()))
		run.Reset()
	}

	for _, r := range line {
		nextStyle := styleFor(r)
		if first {
			currentStyle = nextStyle
			first = false
		} else if nextStyle != currentStyle {
			flush()
			currentStyle = nextStyle
		}
		run.WriteRune(r)
	}

	flush()
	return out.String()
}

// ─── Live preview ───────────────────────────────────────────────────────────

const maxPreviewLines = 8

// renderPreview shows the tail of a partial answer, normalized so that
// compressed headings and list items already break onto their own lines.
func renderPreview(partial string, width int) string {
	if service.IsTrivialContent(partial) {
		return ""
	}
	lines, last := service.CompleteLines(service.Preview(partial))
	if last != "" {
		lines = append(lines, last)
	}
	lines = trimEmptyEdgeLines(lines)
	if len(lines) > maxPreviewLines {
		lines = lines[len(lines)-maxPreviewLines:]
	}

	var state display.MarkdownState
	maxLen := max(width-4, 20)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, "  "+display.RenderMarkdownLine(truncate(line, maxLen), &state))
	}
	return strings.Join(out, "\n")
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func indentText(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func truncateUUID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
