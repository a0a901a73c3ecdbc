package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"triphelix-cli/internal/itinerary"
)

func sampleTable() *itinerary.Table {
	return &itinerary.Table{Rows: []itinerary.Row{
		{Day: 1, DateLabel: "Jan 1", Morning: "Breakfast", Afternoon: "Museum", Evening: "Dinner"},
		{Day: 2, DateLabel: "Jan 2", Morning: "<strong>Hike</strong>"},
	}}
}

func TestHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trip.html")
	content := sampleTable().HTML() + `<script>alert(1)</script>`

	if err := HTML(content, path); err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	got := string(data)
	for _, want := range []string{"<!DOCTYPE html>", DefaultTitle, `<table class="itinerary-table">`, "Breakfast"} {
		if !strings.Contains(got, want) {
			t.Errorf("export missing %q", want)
		}
	}
	if strings.Contains(got, "<script>") {
		t.Error("export contains script")
	}
}

func TestHTMLEmpty(t *testing.T) {
	if err := HTML("  ", filepath.Join(t.TempDir(), "x.html")); err == nil {
		t.Error("HTML() expected error for empty content")
	}
}

func TestCalendar(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	got, err := Calendar(sampleTable(), start, now)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}

	if n := strings.Count(got, "BEGIN:VEVENT"); n != 4 {
		t.Errorf("events = %d, want 4", n)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"SUMMARY:Day 1: Jan 1: Morning",
		"DTSTART:20250101T090000Z",
		"DTEND:20250101T120000Z",
		"DTSTART:20250101T180000Z",
		"SUMMARY:Day 2: Jan 2: Morning",
		"DTSTART:20250102T090000Z",
		"DESCRIPTION:**Hike**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("calendar missing %q", want)
		}
	}
	if strings.Contains(got, "Day 2: Jan 2: Evening") {
		t.Error("calendar has event for empty segment")
	}
}

func TestCalendarErrors(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := Calendar(nil, start, start); err == nil {
		t.Error("Calendar(nil) expected error")
	}
	if _, err := Calendar(&itinerary.Table{}, start, start); err == nil {
		t.Error("Calendar(empty) expected error")
	}
	if _, err := Calendar(sampleTable(), time.Time{}, start); err == nil {
		t.Error("Calendar(zero start) expected error")
	}
}

func TestICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.ics")
	if err := ICS(sampleTable(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), path); err != nil {
		t.Fatalf("ICS() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasPrefix(string(data), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected file start: %q", string(data[:20]))
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Format
		wantPath string
		wantErr  bool
	}{
		{"empty uses default", "", FormatHTML, DefaultName, false},
		{"html", "trip.html", FormatHTML, "trip.html", false},
		{"htm upper", "TRIP.HTM", FormatHTML, "TRIP.HTM", false},
		{"ics", "trip.ics", FormatICS, "trip.ics", false},
		{"no extension", "trip", FormatHTML, "trip.html", false},
		{"unsupported", "trip.pdf", "", "trip.pdf", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, path, err := FormatOf(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatOf(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want || path != tt.wantPath {
				t.Errorf("FormatOf(%q) = (%q, %q), want (%q, %q)", tt.input, got, path, tt.want, tt.wantPath)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	it := Itinerary{HTML: sampleTable().HTML(), Table: sampleTable()}

	path, err := Write(it, filepath.Join(dir, "trip"))
	if err != nil {
		t.Fatalf("Write(html) error = %v", err)
	}
	if filepath.Ext(path) != ".html" {
		t.Errorf("Write() path = %q, want .html", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("html export missing: %v", err)
	}

	path, err = Write(it, filepath.Join(dir, "trip.ics"))
	if err != nil {
		t.Fatalf("Write(ics) error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "BEGIN:VEVENT") {
		t.Error("ics export has no events")
	}

	if _, err := Write(Itinerary{HTML: "<p>Hi</p>"}, filepath.Join(dir, "trip.ics")); err == nil {
		t.Error("Write(ics) without table expected error")
	}
}
