package service

import (
	"triphelix-cli/internal/itinerary"
	"triphelix-cli/internal/markdown"
)

// Result is a completed assistant answer after the full pipeline.
type Result struct {
	// Normalized is the repaired markdown.
	Normalized string
	// Passthrough is the sanitized rendering of Normalized.
	Passthrough string
	// HTML is what gets displayed: the table when one was extracted,
	// otherwise Passthrough. Always sanitized.
	HTML string
	// Table is nil when the answer has no day structure.
	Table *itinerary.Table
	// Itinerary reports that the answer mentions "itinerary".
	Itinerary bool
}

// HasTable reports whether a day table was extracted.
func (r Result) HasTable() bool {
	return r.Table != nil
}

// Finalize runs the completion pipeline:
// normalize, render, sanitize, then extract the day table.
func Finalize(raw string) Result {
	normalized := markdown.Normalize(raw)
	passthrough := markdown.SafeHTML(normalized)

	res := Result{
		Normalized:  normalized,
		Passthrough: passthrough,
		HTML:        passthrough,
		Itinerary:   itinerary.MentionsItinerary(passthrough),
	}
	if table, ok := itinerary.Extract(normalized); ok {
		res.Table = table
		res.HTML = table.HTML()
	}
	return res
}
