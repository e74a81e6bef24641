// Package obis queries the OBIS occurrence API, the primary biodiversity
// source feeding both the fisheries and molecular views.
package obis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/upstream"
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

const (
	source = "obis"

	// HalfWidth is the bounding-box half-width in degrees around the coordinate.
	HalfWidth = 0.25
)

// Client implements domain.OccurrenceSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an OBIS occurrence client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchOccurrences returns at most size occurrence records inside a box
// around coord. Failures are returned to the caller.
func (c *Client) FetchOccurrences(ctx context.Context, coord domain.Coordinate, size int) ([]domain.OccurrenceRecord, error) {
	params := url.Values{
		"size":     {strconv.Itoa(size)},
		"geometry": {coord.BoundingPolygon(HalfWidth)},
	}

	start := time.Now()
	var resp response
	if err := upstream.GetJSON(ctx, c.httpClient, c.baseURL+"?"+upstream.EncodeQuery(params), &resp); err != nil {
		c.metrics.ObserveUpstream(source, "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("obis occurrences: %w", err)
	}

	results := resp.Results
	if size >= 0 && len(results) > size {
		results = results[:size]
	}

	records := make([]domain.OccurrenceRecord, 0, len(results))
	for _, r := range results {
		records = append(records, r.record())
	}

	outcome := "success"
	if len(records) == 0 {
		outcome = "empty"
	}
	c.metrics.ObserveUpstream(source, outcome, time.Since(start).Seconds())
	c.logger.Debug("obis occurrences fetched",
		"lat", coord.Latitude,
		"lon", coord.Longitude,
		"total", resp.Total,
		"records", len(records),
	)
	return records, nil
}

// OBIS occurrence API response types.

type response struct {
	Total   int      `json:"total"`
	Results []result `json:"results"`
}

type result struct {
	ScientificName       string   `json:"scientificName"`
	Family               string   `json:"family"`
	Genus                string   `json:"genus"`
	Class                string   `json:"class"`
	EventDate            string   `json:"eventDate"`
	Depth                *float64 `json:"depth"`
	MinimumDepthInMeters *float64 `json:"minimumDepthInMeters"`
	MaximumDepthInMeters *float64 `json:"maximumDepthInMeters"`
}

func (r result) record() domain.OccurrenceRecord {
	return domain.OccurrenceRecord{
		ScientificName: domain.Text(r.ScientificName),
		EventDate:      domain.Text(r.EventDate),
		DepthMeters:    firstDepth(r.Depth, r.MinimumDepthInMeters, r.MaximumDepthInMeters),
		Family:         domain.Text(r.Family),
		Genus:          domain.Text(r.Genus),
		Class:          domain.Text(r.Class),
	}
}

func firstDepth(depths ...*float64) *float64 {
	for _, d := range depths {
		if d != nil {
			return d
		}
	}
	return nil
}
