package domain

// MarineMetric describes one hourly series requested from the marine-weather API.
type MarineMetric struct {
	Key      string // upstream series name
	Label    string
	Unit     string // default unit when the response carries none
	Decimals int
}

// MarineMetrics lists the ten hourly series in request and display order.
var MarineMetrics = []MarineMetric{
	{Key: "sea_surface_temperature", Label: "Sea Surface Temperature", Unit: "°C", Decimals: 1},
	{Key: "wave_height", Label: "Wave Height", Unit: "m", Decimals: 2},
	{Key: "wave_direction", Label: "Wave Direction", Unit: "°", Decimals: 0},
	{Key: "wave_period", Label: "Wave Period", Unit: "s", Decimals: 1},
	{Key: "swell_wave_height", Label: "Swell Height", Unit: "m", Decimals: 2},
	{Key: "swell_wave_direction", Label: "Swell Direction", Unit: "°", Decimals: 0},
	{Key: "swell_wave_period", Label: "Swell Period", Unit: "s", Decimals: 1},
	{Key: "wind_wave_height", Label: "Wind Wave Height", Unit: "m", Decimals: 2},
	{Key: "wind_wave_direction", Label: "Wind Wave Direction", Unit: "°", Decimals: 0},
	{Key: "wind_wave_period", Label: "Wind Wave Period", Unit: "s", Decimals: 1},
}

// MarineSeries is the hourly time series returned by the marine-weather API.
// Arrays are index-aligned with Time but any one of them may be shorter or
// longer; readers must go through Value, which tolerates both.
type MarineSeries struct {
	Time   []string              `json:"time"`
	Values map[string][]*float64 `json:"values"`
	Units  map[string]string     `json:"units"`
}

// Rows returns the number of hourly rows: the longest of the time axis and
// every metric array.
func (s MarineSeries) Rows() int {
	n := len(s.Time)
	for _, v := range s.Values {
		n = max(n, len(v))
	}
	return n
}

// HasData reports whether the series carries any hourly rows.
func (s MarineSeries) HasData() bool { return s.Rows() > 0 }

// TimeAt returns the timestamp label for row i, or "" past the end.
func (s MarineSeries) TimeAt(i int) string {
	if i < 0 || i >= len(s.Time) {
		return ""
	}
	return s.Time[i]
}

// Value returns metric key at row i, or nil when that array is too short or
// the upstream value was null.
func (s MarineSeries) Value(key string, i int) *float64 {
	vals := s.Values[key]
	if i < 0 || i >= len(vals) {
		return nil
	}
	return vals[i]
}

// Unit returns the upstream unit for a metric, falling back to the default.
func (s MarineSeries) Unit(m MarineMetric) string {
	if u, ok := s.Units[m.Key]; ok && u != "" {
		return u
	}
	return m.Unit
}
