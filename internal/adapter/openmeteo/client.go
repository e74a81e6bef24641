// Package openmeteo queries the Open-Meteo Marine API for the hourly sea
// conditions behind the oceanographic view.
package openmeteo

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/upstream"
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

const source = "marine"

// Client implements domain.MarineSource using the Open-Meteo Marine API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a marine-weather client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchMarine requests one past day and one forecast day of hourly marine
// series in UTC. Any failure is logged and reported as unavailable.
func (c *Client) FetchMarine(ctx context.Context, coord domain.Coordinate) (domain.MarineSeries, bool) {
	params := url.Values{
		"latitude":      {coord.LatParam()},
		"longitude":     {coord.LonParam()},
		"hourly":        {hourlyParam()},
		"past_days":     {"1"},
		"forecast_days": {"1"},
		"timezone":      {"UTC"},
	}

	start := time.Now()
	var resp response
	if err := upstream.GetJSON(ctx, c.httpClient, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		c.metrics.ObserveUpstream(source, "error", time.Since(start).Seconds())
		c.logger.Warn("marine weather unavailable",
			"lat", coord.Latitude,
			"lon", coord.Longitude,
			"error", err,
		)
		return domain.MarineSeries{}, false
	}

	series := resp.series()
	outcome := "success"
	if !series.HasData() {
		outcome = "empty"
	}
	c.metrics.ObserveUpstream(source, outcome, time.Since(start).Seconds())
	return series, true
}

func hourlyParam() string {
	keys := make([]string, len(domain.MarineMetrics))
	for i, m := range domain.MarineMetrics {
		keys[i] = m.Key
	}
	return strings.Join(keys, ",")
}

// Open-Meteo Marine API response types.

type response struct {
	Hourly      hourly            `json:"hourly"`
	HourlyUnits map[string]string `json:"hourly_units"`
}

// hourly holds parallel arrays; null entries decode to nil.
type hourly struct {
	Time                  []string   `json:"time"`
	SeaSurfaceTemperature []*float64 `json:"sea_surface_temperature"`
	WaveHeight            []*float64 `json:"wave_height"`
	WaveDirection         []*float64 `json:"wave_direction"`
	WavePeriod            []*float64 `json:"wave_period"`
	SwellWaveHeight       []*float64 `json:"swell_wave_height"`
	SwellWaveDirection    []*float64 `json:"swell_wave_direction"`
	SwellWavePeriod       []*float64 `json:"swell_wave_period"`
	WindWaveHeight        []*float64 `json:"wind_wave_height"`
	WindWaveDirection     []*float64 `json:"wind_wave_direction"`
	WindWavePeriod        []*float64 `json:"wind_wave_period"`
}

func (r response) series() domain.MarineSeries {
	h := r.Hourly
	values := map[string][]*float64{
		"sea_surface_temperature": orEmpty(h.SeaSurfaceTemperature),
		"wave_height":             orEmpty(h.WaveHeight),
		"wave_direction":          orEmpty(h.WaveDirection),
		"wave_period":             orEmpty(h.WavePeriod),
		"swell_wave_height":       orEmpty(h.SwellWaveHeight),
		"swell_wave_direction":    orEmpty(h.SwellWaveDirection),
		"swell_wave_period":       orEmpty(h.SwellWavePeriod),
		"wind_wave_height":        orEmpty(h.WindWaveHeight),
		"wind_wave_direction":     orEmpty(h.WindWaveDirection),
		"wind_wave_period":        orEmpty(h.WindWavePeriod),
	}

	units := make(map[string]string, len(values))
	for k, u := range r.HourlyUnits {
		if _, ok := values[k]; ok {
			units[k] = u
		}
	}

	times := h.Time
	if times == nil {
		times = []string{}
	}
	return domain.MarineSeries{Time: times, Values: values, Units: units}
}

func orEmpty(v []*float64) []*float64 {
	if v == nil {
		return []*float64{}
	}
	return v
}
