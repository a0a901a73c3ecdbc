package itinerary

import (
	"testing"

	"triphelix-cli/internal/markdown"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		kind    tokenKind
		day     int
		label   string
		section Section
		text    string
	}{
		{"day colon inside", "**Day 1: Jan 1**", tokenDay, 1, "Jan 1", SectionNone, ""},
		{"day dash", "**Day 12 - Rome**", tokenDay, 12, "Rome", SectionNone, ""},
		{"day colon outside", "**Day 3:** Kyoto", tokenDay, 3, "", SectionNone, "Kyoto"},
		{"day bare", "**Day 4**", tokenDay, 4, "", SectionNone, ""},
		{"day zero is text", "**Day 0: nothing**", tokenText, 0, "", SectionNone, "**Day 0: nothing**"},
		{"morning", "**Morning**", tokenSection, 0, "", SectionMorning, ""},
		{"afternoon with text", "**Afternoon:** Museum", tokenSection, 0, "", SectionAfternoon, "Museum"},
		{"evening text inside bold", "**Evening: Opera**", tokenSection, 0, "", SectionEvening, "Opera"},
		{"bulleted lower case", "- **morning** coffee", tokenSection, 0, "", SectionMorning, "coffee"},
		{"qualifier dropped", "**Evening (8pm)**", tokenSection, 0, "", SectionEvening, ""},
		{"plain text", "Breakfast", tokenText, 0, "", SectionNone, "Breakfast"},
		{"not bold", "Morning walk", tokenText, 0, "", SectionNone, "Morning walk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := tokenize(tt.line)
			if tok.kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.kind, tt.kind)
			}
			if tok.day != tt.day {
				t.Errorf("day = %d, want %d", tok.day, tt.day)
			}
			if tok.label != tt.label {
				t.Errorf("label = %q, want %q", tok.label, tt.label)
			}
			if tok.section != tt.section {
				t.Errorf("section = %v, want %v", tok.section, tt.section)
			}
			if tok.text != tt.text {
				t.Errorf("text = %q, want %q", tok.text, tt.text)
			}
		})
	}
}

func TestParse(t *testing.T) {
	src := markdown.Normalize("Here you go!\n\n" +
		"## Day 1: Arrival\nSettle in first.\n" +
		"### Morning\nFlight lands\n### Afternoon\n- Check in\n- Nap\n### Evening\nDinner\n" +
		"**Day 2:** Old Town\n**Evening:** Concert\n**Morning:** Market\n" +
		"**Day 2 - Again**\nfree day")

	doc := Parse(src)
	if len(doc.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(doc.Days))
	}

	d1 := doc.Days[0]
	if d1.Number != 1 || d1.Label != "Arrival" {
		t.Errorf("day 1 = %d %q", d1.Number, d1.Label)
	}
	if d1.Intro != "Settle in first." {
		t.Errorf("day 1 intro = %q", d1.Intro)
	}
	if d1.Morning != "Flight lands" {
		t.Errorf("day 1 morning = %q", d1.Morning)
	}
	if d1.Afternoon != "- Check in\n- Nap" {
		t.Errorf("day 1 afternoon = %q", d1.Afternoon)
	}
	if d1.Evening != "Dinner" {
		t.Errorf("day 1 evening = %q", d1.Evening)
	}

	// Evening runs to block end, so it includes the later morning marker.
	d2 := doc.Days[1]
	if d2.Label != "Old Town" {
		t.Errorf("day 2 label = %q", d2.Label)
	}
	if d2.Morning != "Market" {
		t.Errorf("day 2 morning = %q", d2.Morning)
	}
	if d2.Evening != "Concert\n\n**Morning:** Market" {
		t.Errorf("day 2 evening = %q", d2.Evening)
	}

	d3 := doc.Days[2]
	if d3.Number != 2 || d3.Label != "Again" || d3.Intro != "free day" {
		t.Errorf("day 3 = %+v", d3)
	}
	if d3.Morning != "" || d3.Afternoon != "" || d3.Evening != "" {
		t.Errorf("day 3 segments = %+v, want empty", d3)
	}
}

func TestParseNoDays(t *testing.T) {
	doc := Parse(markdown.Normalize("**Morning**\nJust a tip about mornings."))
	if len(doc.Days) != 0 {
		t.Errorf("got %d days, want 0", len(doc.Days))
	}
}

func TestParseFirstMarkerWins(t *testing.T) {
	doc := Parse("**Day 1**\n**Morning**\nA\n**Morning**\nB\n**Afternoon**\nC")
	if got := doc.Days[0].Morning; got != "A\n**Morning**\nB" {
		t.Errorf("morning = %q", got)
	}
	if got := doc.Days[0].Afternoon; got != "C" {
		t.Errorf("afternoon = %q", got)
	}
}
