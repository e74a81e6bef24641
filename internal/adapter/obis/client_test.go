package obis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/upstream"
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

const occurrenceBody = `{
  "total": 3,
  "results": [
    {"scientificName": "Thunnus albacares", "family": "Scombridae", "genus": "Thunnus",
     "class": "Actinopteri", "eventDate": "2019-03-02", "depth": 12.5},
    {"scientificName": "Chelonia mydas", "family": "Cheloniidae", "genus": "Chelonia",
     "class": "Testudines", "minimumDepthInMeters": 3, "maximumDepthInMeters": 8},
    {"scientificName": "  ", "family": "", "maximumDepthInMeters": 40}
  ]
}`

func TestClient_FetchOccurrences_Success(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		assert.Equal(t,
			"POLYGON((71.750000 9.750000, 72.250000 9.750000, 72.250000 10.250000, 71.750000 10.250000, 71.750000 9.750000))",
			r.URL.Query().Get("geometry"))
		_, _ = w.Write([]byte(occurrenceBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	records, err := c.FetchOccurrences(context.Background(), domain.Coordinate{Latitude: 10, Longitude: 72}, 100)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.NotContains(t, rawQuery, "+", "spaces must be encoded as %20")
	assert.Contains(t, rawQuery, "%20")

	assert.Equal(t, "Thunnus albacares", records[0].Name())
	assert.Equal(t, "Actinopteri", *records[0].Class)
	assert.Equal(t, "2019-03-02", *records[0].EventDate)
	assert.Equal(t, 12.5, *records[0].DepthMeters)

	assert.Equal(t, 3.0, *records[1].DepthMeters, "minimum depth used when depth is absent")
	assert.Nil(t, records[1].EventDate)

	assert.Nil(t, records[2].ScientificName, "blank names are missing")
	assert.Nil(t, records[2].Family)
	assert.Equal(t, 40.0, *records[2].DepthMeters)

	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "success")), 0)
}

func TestClient_FetchOccurrences_CapsToSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(occurrenceBody))
	}))
	defer srv.Close()

	records, err := testClient(srv.URL).FetchOccurrences(context.Background(), domain.Coordinate{}, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClient_FetchOccurrences_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"total": 0, "results": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	records, err := c.FetchOccurrences(context.Background(), domain.Coordinate{}, 100)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "empty")), 0)
}

func TestClient_FetchOccurrences_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchOccurrences(context.Background(), domain.Coordinate{}, 100)
	require.Error(t, err)

	var statusErr *upstream.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.True(t, strings.HasPrefix(err.Error(), "obis occurrences:"))
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "error")), 0)
}

func TestClient_FetchOccurrences_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchOccurrences(context.Background(), domain.Coordinate{}, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
