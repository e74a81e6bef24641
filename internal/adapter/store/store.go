// Package store persists the last coordinate each visitor used. It replaces
// browser local storage with a server-side key/value entry per visitor.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// EntryName is the name of the single entry stored per visitor.
const EntryName = "lastCoordinate"

func encode(c domain.Coordinate) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode coordinate: %w", err)
	}
	return string(b), nil
}

// decode reads a stored entry. Stored values are normalized again so a
// hand-edited or stale entry can never escape the valid range.
func decode(s string) (domain.Coordinate, error) {
	var c domain.Coordinate
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode coordinate: %w", err)
	}
	return domain.NormalizeCoordinate(c.Latitude, c.Longitude), nil
}
