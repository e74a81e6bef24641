package domain

import "strings"

// OccurrenceRecord is one species observation normalized from a biodiversity
// source. Nil fields were absent upstream and render as a placeholder.
type OccurrenceRecord struct {
	ScientificName *string  `json:"scientificName,omitempty"`
	EventDate      *string  `json:"eventDate,omitempty"`
	DepthMeters    *float64 `json:"depthMeters,omitempty"`
	Family         *string  `json:"family,omitempty"`
	Genus          *string  `json:"genus,omitempty"`
	Class          *string  `json:"class,omitempty"`
}

// Name returns the scientific name, or "" when absent.
func (r OccurrenceRecord) Name() string { return deref(r.ScientificName) }

// NamedCount pairs a taxon name with its number of occurrences.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Text returns a trimmed copy of s, or nil when s is blank. Upstream decoders
// use it so that empty strings are treated the same as missing fields.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
