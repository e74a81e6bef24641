package render

import (
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// MainPage builds the coordinate-entry page. stored, when non-nil, prefills
// the form.
func MainPage(stored *domain.Coordinate, notice string) Page {
	p := Page{Title: AppTitle, Form: Form{Notice: notice}}
	if stored != nil {
		p.Form.Lat = stored.LatParam()
		p.Form.Lon = stored.LonParam()
	}
	return p
}

// InvalidFormPage re-renders the form with the raw input and a notice.
func InvalidFormPage(lat, lon, notice string) Page {
	return Page{Title: AppTitle, Form: Form{Lat: lat, Lon: lon, Notice: notice}}
}

// DetailPage builds the page for one view. A nil coordinate means none was
// supplied: every table shows placeholders. A nil snapshot is treated the same
// as one with every view unavailable.
func DetailPage(d domain.Domain, coord *domain.Coordinate, snap *domain.Snapshot) Page {
	p := Page{
		Title:      d.Title(),
		Domain:     d,
		Coordinate: coord,
		Source:     domain.SourceUnavailable,
		Nav:        navLinks(d, coord),
	}

	if snap == nil {
		empty := domain.Snapshot{Sources: map[domain.Domain]domain.SourceStatus{}}
		snap = &empty
	}
	if s, ok := snap.Sources[d]; ok {
		p.Source = s
	}
	p.Metrics = snap.Metrics(d)

	switch d {
	case domain.DomainOceanographic:
		p.Hourly = hourlyTable(snap.Oceanographic)
	case domain.DomainFisheries:
		if snap.Fisheries != nil {
			p.Records = recordsTable("Fish occurrence records", snap.Fisheries.Records)
		}
	case domain.DomainMolecular:
		if snap.Molecular != nil {
			p.Records = recordsTable("Occurrence records", snap.Molecular.Records)
		}
	}
	return p
}

func navLinks(current domain.Domain, coord *domain.Coordinate) []NavLink {
	query := ""
	if coord != nil {
		query = "?" + coord.Query().Encode()
	}
	links := make([]NavLink, 0, len(domain.Domains))
	for _, d := range domain.Domains {
		if d == current {
			continue
		}
		links = append(links, NavLink{Label: d.Title(), URL: "/" + string(d) + query})
	}
	return links
}

// hourlyTable renders every hourly row when the series is present and a
// single current-conditions row otherwise. Arrays of unequal length are
// indexed per metric and padded with the placeholder.
func hourlyTable(s *domain.OceanographicSummary) *Table {
	headers := make([]string, 0, len(domain.MarineMetrics)+1)
	headers = append(headers, "Time (UTC)")
	for _, m := range domain.MarineMetrics {
		headers = append(headers, m.Label)
	}

	if !s.HasSeries() {
		row := make([]string, 0, len(headers))
		for _, m := range s.Metrics() {
			row = append(row, m.Value)
		}
		return &Table{Caption: "Current conditions", Headers: headers, Rows: [][]string{row}}
	}

	series := s.Series
	rows := make([][]string, series.Rows())
	for i := range rows {
		row := make([]string, 0, len(headers))
		ts := series.TimeAt(i)
		if ts == "" {
			ts = domain.Placeholder
		}
		row = append(row, ts)
		for _, m := range domain.MarineMetrics {
			row = append(row, domain.FormatReading(series.Value(m.Key, i), m.Decimals, series.Unit(m)))
		}
		rows[i] = row
	}
	return &Table{Caption: "Hourly conditions", Headers: headers, Rows: rows}
}

var recordHeaders = []string{"Scientific Name", "Event Date", "Depth", "Family", "Genus", "Class"}

func recordsTable(caption string, records []domain.OccurrenceRecord) *Table {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			domain.OrPlaceholder(r.ScientificName),
			domain.OrPlaceholder(r.EventDate),
			domain.FormatReading(r.DepthMeters, 1, "m"),
			domain.OrPlaceholder(r.Family),
			domain.OrPlaceholder(r.Genus),
			domain.OrPlaceholder(r.Class),
		}
	}
	return &Table{Caption: caption, Headers: recordHeaders, Rows: rows}
}
