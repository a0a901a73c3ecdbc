// Command itinerarypreview prints every stage of the answer pipeline for a
// markdown file or a built-in sample, for tuning the normalizer and the day
// extractor.
//
//	go run ./cmd/itinerarypreview [file|-|sample-name]
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"triphelix-cli/internal/display"
	"triphelix-cli/internal/itinerary"
	"triphelix-cli/internal/markdown"
	"triphelix-cli/internal/samples"
	"triphelix-cli/internal/service"
)

const (
	teal  = "\033[38;2;43;179;163m"
	gray  = "\033[38;5;242m"
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"
)

// defaultSample is shown when no argument is given.
const defaultSample = "lisbon"

func main() {
	name := defaultSample
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	raw, err := load(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	section("Raw")
	fmt.Println(dim + raw + reset)

	normalized := markdown.Normalize(raw)
	section("Normalized")
	fmt.Println(normalized)
	if again := markdown.Normalize(normalized); again != normalized {
		fmt.Println(teal + "! normalizing twice changed the text" + reset)
	}

	section("Days")
	doc := itinerary.Parse(normalized)
	if len(doc.Days) == 0 {
		fmt.Println(gray + "(no day structure)" + reset)
	}
	for _, d := range doc.Days {
		fmt.Printf("%sDay %d%s %s\n", bold, d.Number, reset, d.Label)
		field("intro", d.Intro)
		field(itinerary.SectionMorning.String(), d.Morning)
		field(itinerary.SectionAfternoon.String(), d.Afternoon)
		field(itinerary.SectionEvening.String(), d.Evening)
	}

	res := service.Finalize(raw)
	section("Sanitized HTML")
	fmt.Println(res.HTML)

	section("Terminal")
	fmt.Println(display.RenderAnswer(res.Normalized, res.Table, 0))
	fmt.Printf("\n%sitinerary mention: %t · table rows: %d%s\n", gray, res.Itinerary, res.Table.Len(), reset)
}

func section(title string) {
	fmt.Println()
	fmt.Println(bold + teal + "═══ " + title + " ═══" + reset)
}

func field(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %s%-9s%s %s\n", gray, name, reset, strings.ReplaceAll(value, "\n", "\n            "))
}

// load reads a markdown file, stdin for "-", or a built-in sample by name.
func load(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	if data, err := os.ReadFile(name); err == nil {
		return string(data), nil
	}
	all, err := samples.Load("")
	if err != nil {
		return "", err
	}
	s, err := samples.Find(all, name)
	if err != nil {
		return "", err
	}
	return s.Answer, nil
}
