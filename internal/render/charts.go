package render

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// ErrNoChartData is returned when a view has nothing to plot.
var ErrNoChartData = errors.New("no chart data")

// ChartConfig is a Chart.js configuration object.
type ChartConfig struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

// ChartData holds the labels and datasets of a chart.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one plotted series. Nil points render as gaps.
type Dataset struct {
	Label string     `json:"label,omitempty"`
	Data  []*float64 `json:"data"`
}

// chartGroup plots several marine metrics that share a unit on one chart.
type chartGroup struct {
	id    string
	title string
	keys  []string
}

var oceanChartGroups = []chartGroup{
	{"sst", "Sea Surface Temperature", []string{"sea_surface_temperature"}},
	{"heights", "Wave Heights", []string{"wave_height", "swell_wave_height", "wind_wave_height"}},
	{"periods", "Wave Periods", []string{"wave_period", "swell_wave_period", "wind_wave_period"}},
	{"directions", "Wave Directions", []string{"wave_direction", "swell_wave_direction", "wind_wave_direction"}},
}

// Charts builds the chart configs for one view of the snapshot.
func Charts(d domain.Domain, snap domain.Snapshot) ([]ChartConfig, error) {
	switch d {
	case domain.DomainOceanographic:
		return oceanographicCharts(snap.Oceanographic)
	case domain.DomainFisheries:
		return fisheriesCharts(snap.Fisheries)
	case domain.DomainMolecular:
		return molecularCharts(snap.Molecular)
	default:
		return nil, fmt.Errorf("charts for %q: unknown view", d)
	}
}

func oceanographicCharts(s *domain.OceanographicSummary) ([]ChartConfig, error) {
	if !s.HasSeries() {
		return nil, fmt.Errorf("oceanographic charts: %w", ErrNoChartData)
	}
	series := s.Series

	labels := make([]string, series.Rows())
	for i := range labels {
		labels[i] = series.TimeAt(i)
	}

	units := make(map[string]string, len(domain.MarineMetrics))
	names := make(map[string]string, len(domain.MarineMetrics))
	for _, m := range domain.MarineMetrics {
		units[m.Key] = series.Unit(m)
		names[m.Key] = m.Label
	}

	charts := make([]ChartConfig, 0, len(oceanChartGroups))
	for _, g := range oceanChartGroups {
		datasets := make([]Dataset, 0, len(g.keys))
		for _, k := range g.keys {
			data := make([]*float64, len(labels))
			for i := range data {
				data[i] = series.Value(k, i)
			}
			datasets = append(datasets, Dataset{Label: fmt.Sprintf("%s (%s)", names[k], units[k]), Data: data})
		}
		charts = append(charts, ChartConfig{
			ID:      "chart-" + g.id,
			Title:   g.title,
			Type:    "line",
			Data:    ChartData{Labels: labels, Datasets: datasets},
			Options: map[string]any{"spanGaps": true},
		})
	}
	return charts, nil
}

func fisheriesCharts(s *domain.FisheriesSummary) ([]ChartConfig, error) {
	if s == nil {
		return nil, fmt.Errorf("fisheries charts: %w", ErrNoChartData)
	}

	charts := []ChartConfig{{
		ID:    "chart-fish-sources",
		Title: "Fish Occurrences by Source",
		Type:  "bar",
		Data: ChartData{
			Labels: []string{"OBIS", "GBIF"},
			Datasets: []Dataset{{
				Label: "Occurrences",
				Data:  counts(s.SourceAFishCount, s.SourceBFishCount),
			}},
		},
	}}

	if len(s.SpeciesCounts) > 0 {
		charts = append(charts, ChartConfig{
			ID:    "chart-fish-species",
			Title: "Species Distribution",
			Type:  "pie",
			Data:  namedCountData("Occurrences", s.SpeciesCounts),
		})
	}
	return charts, nil
}

func molecularCharts(s *domain.MolecularSummary) ([]ChartConfig, error) {
	if s == nil {
		return nil, fmt.Errorf("molecular charts: %w", ErrNoChartData)
	}
	if len(s.TopFamilies) == 0 && len(s.TopGenera) == 0 {
		return nil, fmt.Errorf("molecular charts: %w", ErrNoChartData)
	}

	taxa := make([]domain.NamedCount, 0, len(s.TopFamilies)+len(s.TopGenera))
	taxa = append(taxa, s.TopFamilies...)
	taxa = append(taxa, s.TopGenera...)

	charts := []ChartConfig{{
		ID:    "chart-top-taxa",
		Title: "Occurrences by Top Family and Genus",
		Type:  "bar",
		Data:  namedCountData("Occurrences", taxa),
	}}
	if len(s.TopFamilies) > 0 {
		charts = append(charts, ChartConfig{
			ID:    "chart-top-families",
			Title: "Top Families",
			Type:  "doughnut",
			Data:  namedCountData("Occurrences", s.TopFamilies),
		})
	}
	return charts, nil
}

func namedCountData(label string, items []domain.NamedCount) ChartData {
	labels := make([]string, len(items))
	data := make([]*float64, len(items))
	for i, it := range items {
		labels[i] = it.Name
		data[i] = domain.Float(float64(it.Count))
	}
	return ChartData{Labels: labels, Datasets: []Dataset{{Label: label, Data: data}}}
}

func counts(values ...int) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = domain.Float(float64(v))
	}
	return out
}
