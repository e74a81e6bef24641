package domain

import (
	"strconv"
	"strings"
)

// Placeholder is shown for any metric whose value is missing.
const Placeholder = "-"

// Metric is one labelled, display-ready value in a summary table.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OceanographicSummary holds the marine readings for the hour closest to now
// and, when the data is live, the full hourly series.
type OceanographicSummary struct {
	ObservedAt string              `json:"observedAt,omitempty"`
	Readings   map[string]*float64 `json:"readings"`
	Series     *MarineSeries       `json:"series,omitempty"`
}

// Metrics returns one row per marine metric. A nil summary yields placeholders.
func (s *OceanographicSummary) Metrics() []Metric {
	out := make([]Metric, 0, len(MarineMetrics)+1)
	if s == nil {
		out = append(out, Metric{Label: "Observed At", Value: Placeholder})
		for _, m := range MarineMetrics {
			out = append(out, Metric{Label: m.Label, Value: Placeholder})
		}
		return out
	}

	out = append(out, Metric{Label: "Observed At", Value: orPlaceholder(s.ObservedAt)})
	for _, m := range MarineMetrics {
		unit := m.Unit
		if s.Series != nil {
			unit = s.Series.Unit(m)
		}
		out = append(out, Metric{Label: m.Label, Value: FormatReading(s.Readings[m.Key], m.Decimals, unit)})
	}
	return out
}

// HasSeries reports whether an hourly table can be rendered.
func (s *OceanographicSummary) HasSeries() bool {
	return s != nil && s.Series != nil && s.Series.HasData()
}

// FisheriesSummary combines bony-fish occurrences from both biodiversity sources.
type FisheriesSummary struct {
	SourceAFishCount    int                `json:"sourceAFishCount"`
	SourceBFishCount    int                `json:"sourceBFishCount"`
	CombinedCount       int                `json:"combinedCount"`
	PredictedCatchIndex int                `json:"predictedCatchIndex"`
	HabitatSuitability  int                `json:"habitatSuitability"`
	Advisory            string             `json:"advisory"`
	DominantSpecies     string             `json:"dominantSpecies"`
	Species             []string           `json:"species"`
	SpeciesCounts       []NamedCount       `json:"speciesCounts"`
	Records             []OccurrenceRecord `json:"records"`
}

var fisheriesLabels = []string{
	"Dominant Species",
	"Predicted Catch Index",
	"Habitat Suitability",
	"Fish Occurrences (OBIS)",
	"Fish Occurrences (GBIF)",
	"Combined Species",
	"Advisory",
	"Species Observed",
}

// Metrics returns the fisheries table rows. A nil summary yields placeholders.
func (s *FisheriesSummary) Metrics() []Metric {
	if s == nil {
		return placeholders(fisheriesLabels)
	}
	values := []string{
		orPlaceholder(s.DominantSpecies),
		strconv.Itoa(s.PredictedCatchIndex),
		strconv.Itoa(s.HabitatSuitability) + "%",
		strconv.Itoa(s.SourceAFishCount),
		strconv.Itoa(s.SourceBFishCount),
		strconv.Itoa(s.CombinedCount),
		orPlaceholder(s.Advisory),
		JoinList(s.Species),
	}
	return zipMetrics(fisheriesLabels, values)
}

// MolecularSummary is the biodiversity view derived from source-A occurrences.
type MolecularSummary struct {
	TaxaDetected   int                `json:"taxaDetected"`
	DiversityIndex string             `json:"diversityIndex"`
	InvasiveRisk   string             `json:"invasiveRisk"`
	TopFamilies    []NamedCount       `json:"topFamilies"`
	TopGenera      []NamedCount       `json:"topGenera"`
	Records        []OccurrenceRecord `json:"records"`
}

var molecularLabels = []string{
	"Taxa Detected",
	"Diversity Index",
	"Invasive Risk",
	"Top Families",
	"Top Genera",
}

// Metrics returns the biodiversity table rows. A nil summary yields placeholders.
func (s *MolecularSummary) Metrics() []Metric {
	if s == nil {
		return placeholders(molecularLabels)
	}
	values := []string{
		strconv.Itoa(s.TaxaDetected),
		orPlaceholder(s.DiversityIndex),
		orPlaceholder(s.InvasiveRisk),
		JoinList(names(s.TopFamilies)),
		JoinList(names(s.TopGenera)),
	}
	return zipMetrics(molecularLabels, values)
}

// FormatReading renders an optional number with a fixed precision and unit.
func FormatReading(v *float64, decimals int, unit string) string {
	if v == nil {
		return Placeholder
	}
	s := strconv.FormatFloat(*v, 'f', decimals, 64)
	switch unit {
	case "":
		return s
	case "°":
		return s + unit
	default:
		return s + " " + unit
	}
}

// OrPlaceholder returns the dereferenced string, or the placeholder when nil or blank.
func OrPlaceholder(s *string) string { return orPlaceholder(deref(s)) }

// JoinList comma-joins the items; an empty list renders as the placeholder.
func JoinList(items []string) string {
	if len(items) == 0 {
		return Placeholder
	}
	return strings.Join(items, ", ")
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func names(counts []NamedCount) []string {
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Name)
	}
	return out
}

func placeholders(labels []string) []Metric {
	out := make([]Metric, len(labels))
	for i, l := range labels {
		out[i] = Metric{Label: l, Value: Placeholder}
	}
	return out
}

func zipMetrics(labels, values []string) []Metric {
	out := make([]Metric, len(labels))
	for i, l := range labels {
		out[i] = Metric{Label: l, Value: values[i]}
	}
	return out
}
