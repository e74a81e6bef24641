package domain

import "time"

// Domain names one of the three dashboard views.
type Domain string

const (
	DomainOceanographic Domain = "oceanographic"
	DomainFisheries     Domain = "fisheries"
	DomainMolecular     Domain = "molecular"
)

// Domains lists the views in navigation order.
var Domains = []Domain{DomainOceanographic, DomainFisheries, DomainMolecular}

// ParseDomain maps a URL path segment to a Domain.
func ParseDomain(s string) (Domain, bool) {
	switch Domain(s) {
	case DomainOceanographic, DomainFisheries, DomainMolecular:
		return Domain(s), true
	default:
		return "", false
	}
}

// Title is the header label for the view.
func (d Domain) Title() string {
	switch d {
	case DomainOceanographic:
		return "Oceanographic Conditions"
	case DomainFisheries:
		return "Fisheries Insights"
	case DomainMolecular:
		return "Molecular Biodiversity"
	default:
		return string(d)
	}
}

// SourceStatus records where a view's data came from.
type SourceStatus string

const (
	SourceLive        SourceStatus = "live"
	SourceMock        SourceStatus = "mock"
	SourceUnavailable SourceStatus = "unavailable"
)

// Snapshot holds the three independently computed views for one coordinate.
// A nil summary means its pipeline produced nothing and renders as placeholders.
type Snapshot struct {
	Coordinate    Coordinate              `json:"coordinate"`
	Oceanographic *OceanographicSummary   `json:"oceanographic,omitempty"`
	Fisheries     *FisheriesSummary       `json:"fisheries,omitempty"`
	Molecular     *MolecularSummary       `json:"molecular,omitempty"`
	Sources       map[Domain]SourceStatus `json:"sources"`
	GeneratedAt   time.Time               `json:"generatedAt"`
}

// NewSnapshot returns an empty snapshot stamped with the current time, with
// every view marked unavailable.
func NewSnapshot(c Coordinate) Snapshot {
	return Snapshot{
		Coordinate: c,
		Sources: map[Domain]SourceStatus{
			DomainOceanographic: SourceUnavailable,
			DomainFisheries:     SourceUnavailable,
			DomainMolecular:     SourceUnavailable,
		},
		GeneratedAt: clock.Now().UTC(),
	}
}

// Metrics returns the table rows for one view.
func (s Snapshot) Metrics(d Domain) []Metric {
	switch d {
	case DomainOceanographic:
		return s.Oceanographic.Metrics()
	case DomainFisheries:
		return s.Fisheries.Metrics()
	default:
		return s.Molecular.Metrics()
	}
}
