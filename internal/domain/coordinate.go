package domain

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned when a latitude or longitude cannot be
// parsed as a finite decimal number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS-84 position, always held inside the valid ranges.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NormalizeCoordinate clamps a latitude/longitude pair into range. When the
// latitude is out of range but the longitude is not, the pair is assumed to
// have been entered as (lon, lat) and is swapped before clamping.
func NormalizeCoordinate(lat, lon float64) Coordinate {
	if math.IsNaN(lat) {
		lat = 0
	}
	if math.IsNaN(lon) {
		lon = 0
	}
	if !within(lat, 90) && within(lon, 180) {
		lat, lon = lon, lat
	}
	return Coordinate{
		Latitude:  clamp(lat, -90, 90),
		Longitude: clamp(lon, -180, 180),
	}
}

// ParseCoordinate parses two decimal strings and normalizes the result.
func ParseCoordinate(latStr, lonStr string) (Coordinate, error) {
	lat, err := parseFinite(latStr)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinate, latStr)
	}
	lon, err := parseFinite(lonStr)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinate, lonStr)
	}
	return NormalizeCoordinate(lat, lon), nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// LatParam formats the latitude with 6 decimals for URLs.
func (c Coordinate) LatParam() string { return strconv.FormatFloat(c.Latitude, 'f', 6, 64) }

// LonParam formats the longitude with 6 decimals for URLs.
func (c Coordinate) LonParam() string { return strconv.FormatFloat(c.Longitude, 'f', 6, 64) }

// Query returns the lat/lon query parameters used by the detail pages.
func (c Coordinate) Query() url.Values {
	return url.Values{"lat": {c.LatParam()}, "lon": {c.LonParam()}}
}

// Key identifies the coordinate at URL precision, e.g. for cache lookups.
func (c Coordinate) Key() string {
	return c.LatParam() + "," + c.LonParam()
}

func (c Coordinate) String() string { return c.Key() }

// BoundingPolygon returns a closed five-point WKT polygon of the given
// half-width in degrees around the coordinate. WKT uses lon/lat order.
// Corners are clamped so boxes near the poles or antimeridian stay valid.
func (c Coordinate) BoundingPolygon(halfWidth float64) string {
	west := fmtDeg(clamp(c.Longitude-halfWidth, -180, 180))
	east := fmtDeg(clamp(c.Longitude+halfWidth, -180, 180))
	south := fmtDeg(clamp(c.Latitude-halfWidth, -90, 90))
	north := fmtDeg(clamp(c.Latitude+halfWidth, -90, 90))

	return fmt.Sprintf("POLYGON((%s %s, %s %s, %s %s, %s %s, %s %s))",
		west, south,
		east, south,
		east, north,
		west, north,
		west, south,
	)
}

func fmtDeg(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func within(v, limit float64) bool { return v >= -limit && v <= limit }

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
