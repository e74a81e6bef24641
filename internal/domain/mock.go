package domain

import (
	"math"
)

// MockData is the deterministic stand-in for all three domain views.
type MockData struct {
	Oceanographic OceanographicSummary
	Fisheries     FisheriesSummary
	Molecular     MolecularSummary
}

var (
	mockFish = []string{
		"Thunnus albacares", "Scomber japonicus", "Sardinella longiceps",
		"Rastrelliger kanagurta", "Katsuwonus pelamis", "Lutjanus argentimaculatus",
		"Epinephelus coioides", "Euthynnus affinis", "Auxis thazard",
		"Scomberomorus commerson", "Caranx ignobilis", "Decapterus russelli",
		"Selar crumenophthalmus", "Stolephorus indicus", "Encrasicholina devisi",
		"Sardinella gibbosa", "Amblygaster sirm", "Lutjanus malabaricus",
		"Lutjanus johnii", "Pristipomoides filamentosus", "Epinephelus malabaricus",
		"Plectropomus leopardus", "Cephalopholis argus", "Lethrinus nebulosus",
		"Nemipterus japonicus", "Priacanthus hamrur", "Pomadasys kaakan",
		"Sphyraena barracuda", "Coryphaena hippurus", "Istiophorus platypterus",
		"Xiphias gladius", "Thunnus obesus", "Thunnus tonggol",
		"Acanthocybium solandri", "Elagatis bipinnulata", "Rachycentron canadum",
		"Trichiurus lepturus", "Pampus argenteus", "Parastromateus niger",
		"Chanos chanos", "Mugil cephalus", "Siganus canaliculatus",
		"Scarus ghobban", "Acanthurus triostegus",
	}
	mockFamilies = []string{
		"Scombridae", "Clupeidae", "Lutjanidae", "Serranidae",
		"Carangidae", "Engraulidae", "Acroporidae", "Calanidae",
	}
	mockGenera = []string{
		"Thunnus", "Sardinella", "Lutjanus", "Epinephelus",
		"Caranx", "Stolephorus", "Acropora", "Calanus",
	}
)

// mockRange is the natural range a mock marine reading is scaled into.
type mockRange struct{ lo, hi float64 }

var mockMarineRanges = map[string]mockRange{
	"sea_surface_temperature": {18, 31},
	"wave_height":             {0.5, 4},
	"wave_direction":          {0, 360},
	"wave_period":             {4, 14},
	"swell_wave_height":       {0.3, 3},
	"swell_wave_direction":    {0, 360},
	"swell_wave_period":       {6, 16},
	"wind_wave_height":        {0.1, 2},
	"wind_wave_direction":     {0, 360},
	"wind_wave_period":        {2, 8},
}

// Mock returns fallback summaries derived only from the coordinate, so the
// same coordinate always produces the same values.
func Mock(c Coordinate) MockData {
	ocean := OceanographicSummary{Readings: make(map[string]*float64, len(MarineMetrics))}
	for i, m := range MarineMetrics {
		r := mockRanges(m.Key)
		v := roundTo(scale(seed(c, i), r.lo, r.hi), m.Decimals)
		ocean.Readings[m.Key] = &v
	}

	species := 5 + int(seed(c, 20)*40)
	offset := int(seed(c, 21) * float64(len(mockFish)))
	fish := rotate(mockFish, offset)[:species]
	fisheries := FisheriesSummary{
		SourceAFishCount:    species + int(seed(c, 22)*30),
		SourceBFishCount:    species + int(seed(c, 23)*30),
		CombinedCount:       species,
		PredictedCatchIndex: CatchIndex(species),
		HabitatSuitability:  HabitatSuitability(species),
		Advisory:            surveyAdvisory,
		DominantSpecies:     fish[0],
		Species:             fish,
		SpeciesCounts:       mockCounts(firstN(fish, topSpecies), c, 24),
	}
	if species > favorableSpecies {
		fisheries.Advisory = favorableAdvisory
	}

	taxa := 5 + int(seed(c, 30)*75)
	molecular := MolecularSummary{
		TaxaDetected:   taxa,
		DiversityIndex: diversityIndex(taxa),
		InvasiveRisk:   "Low",
		TopFamilies:    mockCounts(rotate(mockFamilies, int(seed(c, 31)*8))[:topTaxa], c, 32),
		TopGenera:      mockCounts(rotate(mockGenera, int(seed(c, 33)*8))[:topTaxa], c, 34),
	}
	if taxa > moderateRiskTaxa {
		molecular.InvasiveRisk = "Moderate"
	}

	return MockData{Oceanographic: ocean, Fisheries: fisheries, Molecular: molecular}
}

// seed is a trigonometric hash of the coordinate in [0, 1), varied by k.
func seed(c Coordinate, k int) float64 {
	x := math.Abs(math.Sin(c.Latitude*12.9898+c.Longitude*78.233+float64(k)*37.719) * 43758.5453)
	return x - math.Floor(x)
}

func mockRanges(key string) mockRange {
	if r, ok := mockMarineRanges[key]; ok {
		return r
	}
	return mockRange{0, 1}
}

// mockCounts assigns descending occurrence counts to names.
func mockCounts(names []string, c Coordinate, k int) []NamedCount {
	out := make([]NamedCount, len(names))
	top := 10 + int(seed(c, k)*40)
	for i, n := range names {
		out[i] = NamedCount{Name: n, Count: max(top-i*3, 1)}
	}
	return out
}

func rotate(items []string, by int) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[(i+by)%len(items)]
	}
	return out
}

func scale(r, lo, hi float64) float64 { return lo + r*(hi-lo) }

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
