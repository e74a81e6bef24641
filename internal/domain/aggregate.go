package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// MaxTableRecords caps the raw records kept for detail tables.
	MaxTableRecords = 20

	topTaxa    = 3
	topSpecies = 8

	// moderateRiskTaxa is exclusive: 51 unique taxa is "Moderate", 50 is "Low".
	moderateRiskTaxa = 50
	maxDiversity     = 0.95

	favorableSpecies  = 10
	minCatchIndex     = 20
	maxCatchIndex     = 95
	baseSuitability   = 40
	maxSuitability    = 98
	unknownSpecies    = "Unknown"
	favorableAdvisory = "Favorable: diverse fish community detected in this area."
	surveyAdvisory    = "Limited fish records: a field survey is recommended before planning effort."
)

// bonyFishClasses holds the lower-cased class names treated as bony fish.
// GBIF uses Actinopterygii, WoRMS-backed OBIS records use Actinopteri.
var bonyFishClasses = map[string]bool{
	"actinopterygii": true,
	"actinopteri":    true,
}

// IsBonyFish reports whether the record's class is a bony-fish class,
// ignoring case.
func IsBonyFish(r OccurrenceRecord) bool {
	return bonyFishClasses[strings.ToLower(strings.TrimSpace(deref(r.Class)))]
}

// AggregateBiodiversity derives the molecular-biodiversity summary from
// source-A occurrence records. An empty input yields zero counts, a "0.00"
// index, "Low" risk and empty top lists.
func AggregateBiodiversity(records []OccurrenceRecord) MolecularSummary {
	unique := uniqueNames(records)
	taxa := len(unique)

	risk := "Low"
	if taxa > moderateRiskTaxa {
		risk = "Moderate"
	}

	var families, genera []string
	for _, r := range records {
		if f := deref(r.Family); f != "" {
			families = append(families, f)
		}
		if g := deref(r.Genus); g != "" {
			genera = append(genera, g)
		}
	}

	return MolecularSummary{
		TaxaDetected:   taxa,
		DiversityIndex: diversityIndex(taxa),
		InvasiveRisk:   risk,
		TopFamilies:    TopK(families, topTaxa),
		TopGenera:      TopK(genera, topTaxa),
		Records:        firstN(records, MaxTableRecords),
	}
}

// diversityIndex scales the unique-taxa count into [0, 0.95] with 2 decimals.
func diversityIndex(taxa int) string {
	return strconv.FormatFloat(math.Min(float64(taxa)/100, maxDiversity), 'f', 2, 64)
}

// AggregateFisheries combines bony-fish records from source A (filtered here
// by class) with the already fish-only source-B records.
func AggregateFisheries(sourceA, sourceB []OccurrenceRecord) FisheriesSummary {
	fishA := make([]OccurrenceRecord, 0, len(sourceA))
	for _, r := range sourceA {
		if IsBonyFish(r) {
			fishA = append(fishA, r)
		}
	}

	combined := uniqueNames(fishA)
	seen := make(map[string]bool, len(combined))
	for _, n := range combined {
		seen[n] = true
	}
	for _, r := range sourceB {
		if n := r.Name(); n != "" && !seen[n] {
			seen[n] = true
			combined = append(combined, n)
		}
	}
	n := len(combined)

	advisory := surveyAdvisory
	if n > favorableSpecies {
		advisory = favorableAdvisory
	}

	allFish := make([]string, 0, len(fishA)+len(sourceB))
	for _, r := range append(slices.Clip(fishA), sourceB...) {
		if name := r.Name(); name != "" {
			allFish = append(allFish, name)
		}
	}

	records := append(slices.Clip(fishA), sourceB...)

	return FisheriesSummary{
		SourceAFishCount:    len(fishA),
		SourceBFishCount:    len(sourceB),
		CombinedCount:       n,
		PredictedCatchIndex: CatchIndex(n),
		HabitatSuitability:  HabitatSuitability(n),
		Advisory:            advisory,
		DominantSpecies:     dominantSpecies(combined, sourceA, sourceB),
		Species:             firstN(combined, MaxTableRecords),
		SpeciesCounts:       TopK(allFish, topSpecies),
		Records:             firstN(records, MaxTableRecords),
	}
}

// CatchIndex is 2n+20 clamped to [20, 95].
func CatchIndex(species int) int {
	return min(max(2*species+minCatchIndex, minCatchIndex), maxCatchIndex)
}

// HabitatSuitability is 40 + round(0.8n), capped at 98.
func HabitatSuitability(species int) int {
	return min(baseSuitability+int(math.Round(0.8*float64(species))), maxSuitability)
}

func dominantSpecies(combined []string, sourceA, sourceB []OccurrenceRecord) string {
	if len(combined) > 0 {
		return combined[0]
	}
	for _, set := range [][]OccurrenceRecord{sourceA, sourceB} {
		for _, r := range set {
			if n := r.Name(); n != "" {
				return n
			}
		}
	}
	return unknownSpecies
}

// TopK counts items and returns the k most frequent. Equal counts keep the
// order in which each item was first seen.
func TopK(items []string, k int) []NamedCount {
	counts := make(map[string]int, len(items))
	out := make([]NamedCount, 0, len(items))
	for _, it := range items {
		if _, ok := counts[it]; !ok {
			out = append(out, NamedCount{Name: it})
		}
		counts[it]++
	}
	for i := range out {
		out[i].Count = counts[out[i].Name]
	}

	slices.SortStableFunc(out, func(a, b NamedCount) int { return b.Count - a.Count })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func uniqueNames(records []OccurrenceRecord) []string {
	seen := make(map[string]bool, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		n := r.Name()
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func firstN[T any](items []T, n int) []T {
	out := make([]T, 0, min(len(items), n))
	return append(out, items[:min(len(items), n)]...)
}
