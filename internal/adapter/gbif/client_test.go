package gbif

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

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

const searchBody = `{
  "count": 4,
  "results": [
    {"scientificName": "Katsuwonus pelamis (Linnaeus, 1758)", "eventDate": "2021-07-14T00:00:00",
     "depth": 5, "family": "Scombridae", "genus": "Katsuwonus", "class": "Actinopterygii"},
    {"species": "Coryphaena hippurus", "year": 2020, "month": 5, "day": 3},
    {"scientificName": "Sardinella longiceps", "year": 2018, "month": 11},
    {"scientificName": "Rastrelliger kanagurta", "year": 2017}
  ]
}`

func TestClient_FetchFish_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "204", q.Get("classKey"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Contains(t, q.Get("geometry"), "POLYGON((")
		assert.NotContains(t, r.URL.RawQuery, "+")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	records := c.FetchFish(context.Background(), domain.Coordinate{Latitude: 10, Longitude: 72}, 50)
	require.Len(t, records, 4)

	assert.Equal(t, "Katsuwonus pelamis (Linnaeus, 1758)", records[0].Name())
	assert.Equal(t, "2021-07-14T00:00:00", *records[0].EventDate)
	assert.Equal(t, 5.0, *records[0].DepthMeters)

	assert.Equal(t, "Coryphaena hippurus", records[1].Name(), "species used when scientificName is absent")
	assert.Equal(t, "2020-05-03", *records[1].EventDate)
	assert.Nil(t, records[1].DepthMeters)

	assert.Equal(t, "2018-11", *records[2].EventDate)
	assert.Equal(t, "2017", *records[3].EventDate)

	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "success")), 0)
}

func TestClient_FetchFish_FailureDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := testClient(srv.URL)
			records := c.FetchFish(context.Background(), domain.Coordinate{}, 50)
			assert.NotNil(t, records)
			assert.Empty(t, records)
			assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.UpstreamRequests.WithLabelValues(source, "error")), 0)
		})
	}
}

func TestComposeDate(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             string
	}{
		{0, 0, 0, ""},
		{0, 4, 2, ""},
		{1999, 0, 0, "1999"},
		{1999, 4, 0, "1999-04"},
		{1999, 4, 2, "1999-04-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, composeDate(tt.year, tt.month, tt.day))
	}
}
