// Package markdown repairs, renders and sanitizes assistant markdown.
package markdown

import (
	"regexp"
	"strings"
)

var (
	// A heading marker, or a run of them, glued to the end of a sentence:
	// "plan:## Day 1", "plan ## ## Day 1".
	gluedHeading = regexp.MustCompile(`([^\n# \t])[ \t]*((?:#{1,6}[ \t]+)+)`)
	// A bullet glued to preceding text: "Paris:- Louvre".
	gluedBullet = regexp.MustCompile(`([^\s*])(- )`)

	headingLine   = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.*)$`)
	headingPrefix = regexp.MustCompile(`^(?:#{1,6}[ \t]+)+`)

	dayLineGap     = regexp.MustCompile(`(?m)^(\*\*Day[ \t]+\d+[^\n]*)\n+`)
	sectionLineGap = regexp.MustCompile(`(?mi)^(\*\*[ \t]*(?:morning|afternoon|evening)\b[^\n]*)\n+`)
	newlineRun     = regexp.MustCompile(`\n{3,}`)
	bulletLineGap  = regexp.MustCompile(`(?m)^([ \t]*[-*+][ \t][^\n]*)\n(?:[ \t]*\n)+`)
)

// rule is one rewrite step of the normalizer.
type rule struct {
	name  string
	apply func(string) string
}

// rules run in order; each rule's output is the next rule's input.
var rules = []rule{
	{"blank line before glued heading", func(s string) string {
		return gluedHeading.ReplaceAllString(s, "$1\n\n$2")
	}},
	{"newline before glued bullet", func(s string) string {
		return gluedBullet.ReplaceAllString(s, "$1\n$2")
	}},
	{"headings to bold", func(s string) string {
		return headingLine.ReplaceAllStringFunc(s, boldHeading)
	}},
	{"blank line after day line", func(s string) string {
		return dayLineGap.ReplaceAllString(s, "$1\n\n")
	}},
	{"blank line after section line", func(s string) string {
		return sectionLineGap.ReplaceAllString(s, "$1\n\n")
	}},
	{"collapse newline runs", func(s string) string {
		return newlineRun.ReplaceAllString(s, "\n\n")
	}},
	{"tight bullet lines", func(s string) string {
		return bulletLineGap.ReplaceAllString(s, "$1\n")
	}},
}

// Normalize applies the rewrite rules to raw assistant output. It is
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	for _, r := range rules {
		s = r.apply(s)
	}
	return s
}

// boldHeading turns "## Day 1: Paris ##" into "**Day 1: Paris**". A heading
// with no text is left alone.
func boldHeading(line string) string {
	text := headingPrefix.ReplaceAllString(line, "")
	text = strings.TrimSpace(strings.TrimRight(text, "#"))
	text = strings.TrimSpace(strings.Trim(text, "*"))
	if text == "" {
		return line
	}
	return "**" + text + "**"
}
