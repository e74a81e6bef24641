// Package gbif queries the GBIF occurrence search API for bony-fish records,
// the secondary source of the fisheries view.
package gbif

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
	source = "gbif"

	// ActinopterygiiClassKey is the GBIF backbone key for ray-finned fishes.
	ActinopterygiiClassKey = 204

	// HalfWidth is the bounding-box half-width in degrees around the coordinate.
	HalfWidth = 0.25
)

// Client implements domain.FishSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a GBIF occurrence-search client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: upstream.NewHTTPClient(timeout),
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchFish returns up to limit fish occurrences near coord. Any failure is
// logged and yields an empty list.
func (c *Client) FetchFish(ctx context.Context, coord domain.Coordinate, limit int) []domain.OccurrenceRecord {
	params := url.Values{
		"classKey": {strconv.Itoa(ActinopterygiiClassKey)},
		"geometry": {coord.BoundingPolygon(HalfWidth)},
		"limit":    {strconv.Itoa(limit)},
	}

	start := time.Now()
	var resp response
	if err := upstream.GetJSON(ctx, c.httpClient, c.baseURL+"?"+upstream.EncodeQuery(params), &resp); err != nil {
		c.metrics.ObserveUpstream(source, "error", time.Since(start).Seconds())
		c.logger.Warn("gbif fish occurrences unavailable",
			"lat", coord.Latitude,
			"lon", coord.Longitude,
			"error", err,
		)
		return []domain.OccurrenceRecord{}
	}

	results := resp.Results
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
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
	return records
}

// GBIF occurrence search response types.

type response struct {
	Count   int      `json:"count"`
	Results []result `json:"results"`
}

type result struct {
	ScientificName string   `json:"scientificName"`
	Species        string   `json:"species"`
	EventDate      string   `json:"eventDate"`
	Year           int      `json:"year"`
	Month          int      `json:"month"`
	Day            int      `json:"day"`
	Depth          *float64 `json:"depth"`
	Family         string   `json:"family"`
	Genus          string   `json:"genus"`
	Class          string   `json:"class"`
}

func (r result) record() domain.OccurrenceRecord {
	name := domain.Text(r.ScientificName)
	if name == nil {
		name = domain.Text(r.Species)
	}

	date := domain.Text(r.EventDate)
	if date == nil {
		date = domain.Text(composeDate(r.Year, r.Month, r.Day))
	}

	return domain.OccurrenceRecord{
		ScientificName: name,
		EventDate:      date,
		DepthMeters:    r.Depth,
		Family:         domain.Text(r.Family),
		Genus:          domain.Text(r.Genus),
		Class:          domain.Text(r.Class),
	}
}

// composeDate builds YYYY, YYYY-MM or YYYY-MM-DD from the parts that are set.
func composeDate(year, month, day int) string {
	switch {
	case year <= 0:
		return ""
	case month <= 0:
		return fmt.Sprintf("%04d", year)
	case day <= 0:
		return fmt.Sprintf("%04d-%02d", year, month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
}
