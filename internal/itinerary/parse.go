// Package itinerary recovers the day-by-day structure of an assistant answer
// and turns it into a Day / Morning / Afternoon / Evening table.
package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

// Section is one of the three parts of a day.
type Section int

const (
	SectionNone Section = iota
	SectionMorning
	SectionAfternoon
	SectionEvening
)

func (s Section) String() string {
	switch s {
	case SectionMorning:
		return "Morning"
	case SectionAfternoon:
		return "Afternoon"
	case SectionEvening:
		return "Evening"
	}
	return ""
}

// Day is one "Day N" block of normalized markdown. Segments hold markdown,
// not HTML.
type Day struct {
	Number    int
	Label     string
	Intro     string
	Morning   string
	Afternoon string
	Evening   string
}

// Document is the parsed day structure, in source order.
type Document struct {
	Days []Day
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenDay
	tokenSection
)

type token struct {
	kind    tokenKind
	day     int
	label   string
	section Section
	text    string // text following the marker on the same line
}

var (
	// **Day 1: Jan 1**, **Day 1 - Paris**, **Day 1:** Jan 1
	dayMarker = regexp.MustCompile(`^\*\*\s*Day\s+(\d+)\s*[:.\-–—]?\s*(.*?)\s*\*\*\s*[:.\-–—]?\s*(.*)$`)
	// **Morning**, **Afternoon:** text, - **Evening (8pm)**
	sectionMarker = regexp.MustCompile(`(?i)^(?:[-*+]\s+)?\*\*\s*(morning|afternoon|evening)\b(.*?)\*\*\s*[:\-–—]?\s*(.*)$`)
)

func tokenize(line string) token {
	trimmed := strings.TrimSpace(line)

	if m := dayMarker.FindStringSubmatch(trimmed); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 {
			return token{kind: tokenDay, day: n, label: m[2], text: m[3]}
		}
	}

	if m := sectionMarker.FindStringSubmatch(trimmed); m != nil {
		tok := token{kind: tokenSection, text: m[3]}
		switch strings.ToLower(m[1]) {
		case "morning":
			tok.section = SectionMorning
		case "afternoon":
			tok.section = SectionAfternoon
		default:
			tok.section = SectionEvening
		}
		// "**Morning: Louvre**" carries its content inside the bold run.
		if inner := strings.TrimSpace(m[2]); strings.HasPrefix(inner, ":") || strings.HasPrefix(inner, "-") {
			inner = strings.TrimSpace(strings.TrimLeft(inner, ":-"))
			tok.text = strings.TrimSpace(inner + " " + tok.text)
		}
		return tok
	}

	return token{kind: tokenText, text: line}
}

// block is the raw content of one day, marker line excluded.
type block struct {
	head   token
	lines  []string
	tokens []token
}

func (b *block) add(line string, tok token) {
	b.lines = append(b.lines, line)
	b.tokens = append(b.tokens, tok)
}

// first returns the index of the first marker of one of the sections at or
// after from, or len(lines).
func (b *block) first(from int, sections ...Section) int {
	for i := from; i < len(b.tokens); i++ {
		if b.tokens[i].kind != tokenSection {
			continue
		}
		for _, s := range sections {
			if b.tokens[i].section == s {
				return i
			}
		}
	}
	return len(b.tokens)
}

// segment returns the text after the first marker of s up to the first
// following marker of any of stops.
func (b *block) segment(s Section, stops ...Section) string {
	start := b.first(0, s)
	if start == len(b.tokens) {
		return ""
	}
	end := len(b.tokens)
	if len(stops) > 0 {
		end = b.first(start+1, stops...)
	}
	var parts []string
	if t := b.tokens[start].text; t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, b.lines[start+1:end]...)
	return joinLines(parts)
}

func (b *block) build() Day {
	d := Day{Number: b.head.day, Label: cleanLabel(b.head.label)}

	var intro []string
	if d.Label == "" {
		d.Label = cleanLabel(b.head.text)
	} else if b.head.text != "" {
		intro = append(intro, b.head.text)
	}
	intro = append(intro, b.lines[:b.first(0, SectionMorning, SectionAfternoon, SectionEvening)]...)
	d.Intro = joinLines(intro)

	d.Morning = b.segment(SectionMorning, SectionAfternoon, SectionEvening)
	d.Afternoon = b.segment(SectionAfternoon, SectionEvening)
	d.Evening = b.segment(SectionEvening)
	return d
}

// Parse splits normalized markdown into day blocks. Text before the first
// day marker is ignored. Day order follows the source and is never sorted.
func Parse(normalized string) Document {
	var (
		doc Document
		cur *block
	)

	for _, line := range strings.Split(normalized, "\n") {
		tok := tokenize(line)
		switch {
		case tok.kind == tokenDay:
			if cur != nil {
				doc.Days = append(doc.Days, cur.build())
			}
			cur = &block{head: tok}
		case cur != nil:
			cur.add(line, tok)
		}
	}
	if cur != nil {
		doc.Days = append(doc.Days, cur.build())
	}
	return doc
}

func joinLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_")
	return strings.TrimSpace(s)
}
