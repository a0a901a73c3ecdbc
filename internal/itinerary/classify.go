package itinerary

import "strings"

// MentionsItinerary reports whether the text contains "itinerary" in any
// case. It is a coarse signal used to offer export and is independent of
// Extract: either can be true without the other.
func MentionsItinerary(sanitized string) bool {
	return strings.Contains(strings.ToLower(sanitized), "itinerary")
}
