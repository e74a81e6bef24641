package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_Deterministic(t *testing.T) {
	coords := []Coordinate{{0, 0}, {10.5, 72.25}, {-33.9, 151.2}, {90, -180}}

	for _, c := range coords {
		first := Mock(c)
		second := Mock(c)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Mock(%v) not deterministic (-first +second):\n%s", c, diff)
		}
	}
}

func TestMock_RangesAndShape(t *testing.T) {
	coords := []Coordinate{{0, 0}, {10.5, 72.25}, {-33.9, 151.2}, {45, -30}, {-60, 10}}

	for _, c := range coords {
		m := Mock(c)

		for _, metric := range MarineMetrics {
			v := m.Oceanographic.Readings[metric.Key]
			require.NotNil(t, v, metric.Key)
			r := mockMarineRanges[metric.Key]
			assert.GreaterOrEqual(t, *v, r.lo, metric.Key)
			assert.LessOrEqual(t, *v, r.hi, metric.Key)
		}
		sst := *m.Oceanographic.Readings["sea_surface_temperature"]
		assert.True(t, sst >= 18 && sst <= 31, "sst %v out of range", sst)

		f := m.Fisheries
		assert.Equal(t, CatchIndex(f.CombinedCount), f.PredictedCatchIndex)
		assert.Equal(t, HabitatSuitability(f.CombinedCount), f.HabitatSuitability)
		assert.GreaterOrEqual(t, f.PredictedCatchIndex, 20)
		assert.LessOrEqual(t, f.PredictedCatchIndex, 95)
		assert.NotEmpty(t, f.DominantSpecies)
		assert.Equal(t, f.Species[0], f.DominantSpecies)
		assert.Len(t, f.Species, f.CombinedCount)
		assert.Len(t, f.SpeciesCounts, min(f.CombinedCount, topSpecies))

		mol := m.Molecular
		assert.GreaterOrEqual(t, mol.TaxaDetected, 5)
		assert.Less(t, mol.TaxaDetected, 80)
		assert.Equal(t, diversityIndex(mol.TaxaDetected), mol.DiversityIndex)
		assert.Len(t, mol.TopFamilies, 3)
		assert.Len(t, mol.TopGenera, 3)
	}
}

func TestSeed_InUnitInterval(t *testing.T) {
	for k := range 50 {
		s := seed(Coordinate{Latitude: float64(k) - 25, Longitude: float64(k) * 3.3}, k)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.Less(t, s, 1.0)
	}
}

func TestMock_FishPoolCoversLargestCount(t *testing.T) {
	seen := make(map[string]bool, len(mockFish))
	for _, name := range mockFish {
		assert.False(t, seen[name], "duplicate mock fish %q", name)
		seen[name] = true
	}
	// species is 5 + int(seed*40) with seed < 1, so at most 44.
	assert.GreaterOrEqual(t, len(mockFish), 44)
}
