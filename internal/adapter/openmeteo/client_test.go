package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

const (
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

const marineBody = `{
  "latitude": 10.0,
  "longitude": 72.0,
  "hourly_units": {"time": "iso8601", "sea_surface_temperature": "°C", "wave_height": "m"},
  "hourly": {
    "time": ["2024-06-01T00:00", "2024-06-01T01:00"],
    "sea_surface_temperature": [28.4, 28.5],
    "wave_height": [1.1, null],
    "wave_direction": [210, 215]
  }
}`

func TestClient_FetchMarine_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10.000000", q.Get("latitude"))
		assert.Equal(t, "72.500000", q.Get("longitude"))
		assert.Equal(t, "sea_surface_temperature,wave_height,wave_direction,wave_period,"+
			"swell_wave_height,swell_wave_direction,swell_wave_period,"+
			"wind_wave_height,wind_wave_direction,wind_wave_period", q.Get("hourly"))
		assert.Equal(t, "1", q.Get("past_days"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		assert.Equal(t, "UTC", q.Get("timezone"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(marineBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	series, ok := c.FetchMarine(context.Background(), domain.Coordinate{Latitude: 10, Longitude: 72.5})
	require.True(t, ok)

	assert.Equal(t, []string{"2024-06-01T00:00", "2024-06-01T01:00"}, series.Time)
	assert.Equal(t, 28.5, *series.Value("sea_surface_temperature", 1))
	assert.Nil(t, series.Value("wave_height", 1))
	assert.NotNil(t, series.Values["wind_wave_period"], "missing arrays default to empty")
	assert.Empty(t, series.Values["wind_wave_period"])
	assert.Equal(t, "°C", series.Units["sea_surface_temperature"])
	assert.NotContains(t, series.Units, "time")
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "success")), 0)
}

func TestClient_FetchMarine_EmptyHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": {}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	series, ok := c.FetchMarine(context.Background(), domain.Coordinate{})
	require.True(t, ok)
	assert.False(t, series.HasData())
	assert.NotNil(t, series.Time)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "empty")), 0)
}

func TestClient_FetchMarine_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, ok := c.FetchMarine(context.Background(), domain.Coordinate{})
	assert.False(t, ok)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "error")), 0)
}

func TestClient_FetchMarine_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, ok := c.FetchMarine(context.Background(), domain.Coordinate{})
	assert.False(t, ok)
}
