package domain

import "context"

// MarineSource fetches the hourly marine-weather series for a coordinate.
// The boolean is false when the source is unavailable; failures are not
// returned as errors so callers can fall back.
type MarineSource interface {
	FetchMarine(ctx context.Context, c Coordinate) (MarineSeries, bool)
}

// OccurrenceSource is the primary biodiversity source. Its records feed both
// the fisheries and molecular views, so failures are returned to the caller.
type OccurrenceSource interface {
	FetchOccurrences(ctx context.Context, c Coordinate, size int) ([]OccurrenceRecord, error)
}

// FishSource is the secondary, fish-only source. Failures degrade to an
// empty list inside the implementation.
type FishSource interface {
	FetchFish(ctx context.Context, c Coordinate, limit int) []OccurrenceRecord
}

// CoordinateStore persists the last coordinate a visitor used.
type CoordinateStore interface {
	Get(ctx context.Context, visitor string) (Coordinate, bool, error)
	Set(ctx context.Context, visitor string, c Coordinate) error
	Clear(ctx context.Context, visitor string) error
}
