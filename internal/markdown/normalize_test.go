package markdown

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"glued heading", "Here is the plan:## Day 1", "Here is the plan:\n\n**Day 1**"},
		{"glued stacked markers", "Overview:## ## Day 1: Lisbon", "Overview:\n\n**Day 1: Lisbon**"},
		{"spaced stacked markers", "C# # Tips", "C\n\n**Tips**"},
		{"stacked markers at line start", "# # nested", "**nested**"},
		{"glued bullets", "Pack:- socks- shoes", "Pack:\n- socks\n- shoes"},
		{"heading to bold", "### Paris ###", "**Paris**"},
		{"heading with bold text", "## **Tips**", "**Tips**"},
		{"empty heading kept", "# ", "# "},
		{"blank line after day", "**Day 1: Jan 1**\nArrive", "**Day 1: Jan 1**\n\nArrive"},
		{"day gap collapsed", "**Day 2**\n\n\n\nHike", "**Day 2**\n\nHike"},
		{"blank line after section", "**Morning**\nCoffee", "**Morning**\n\nCoffee"},
		{"section case insensitive", "**EVENING:** out\nDinner", "**EVENING:** out\n\nDinner"},
		{"word starting with section name", "**Mornings** are slow\nYes", "**Mornings** are slow\nYes"},
		{"collapse newline run", "a\n\n\n\nb", "a\n\nb"},
		{"bullet followed by blank lines", "- a\n\n\nNext", "- a\nNext"},
		{"bullet list tightened", "- a\n\n- b\n  \n- c", "- a\n- b\n- c"},
		{"crlf", "a\r\nb", "a\nb"},
		{"hyphenated words untouched", "a well-known spot", "a well-known spot"},
		{"spaced dash untouched", "Paris - Lyon", "Paris - Lyon"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeItineraryExample(t *testing.T) {
	input := "**Day 1: Jan 1**\n**Morning**\nBreakfast\n**Afternoon**\nMuseum\n**Evening**\nDinner\n**Day 2: Jan 2**\n**Morning**\nHike"
	want := "**Day 1: Jan 1**\n\n**Morning**\n\nBreakfast\n**Afternoon**\n\nMuseum\n**Evening**\n\nDinner\n**Day 2: Jan 2**\n\n**Morning**\n\nHike"
	if got := Normalize(input); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"Intro:### Day 1: Paris\nMorning walk- Louvre- Seine",
		"# - dash heading",
		"# # nested",
		"Overview:## ## Day 1: Lisbon\n**Morning**\nTram",
		"x## ## Day 1",
		"C# # Tips",
		"x# # # y",
		"a # \nb",
		"x# ##y",
		"## C# basics",
		"####### seven",
		"**Day 1**\n\n\n\n\n- a\n\n\n\n- b\n\n\n**Day 2**",
		"**Morning**- coffee\n**Afternoon**\n\n\n\nnap\n**Evening**",
		"- **Morning:** hike\n\n\n- **Evening:** dinner\n\n",
		"Text\r\n\r\n\r\n## Heading\r\n- item\r\n\r\n",
		"**Day 1**\n  \n\n**Morning**\n \nx",
		"* star bullet\n\n\n+ plus bullet\n\nafter",
		"Your itinerary:## Day 1 - Rome##Day 2- Florence",
		"**Day 3:** Jan 3\n\n\n### Morning\nMuseum\n#### Afternoon ####\nGelato\n# Evening\nOpera",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\n once  = %q\n twice = %q", in, once, twice)
		}
	}
}
