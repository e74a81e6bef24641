// Package dashboard runs the fetch and aggregate steps that turn one
// coordinate into the three dashboard views.
package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

// Publisher receives every computed snapshot. Failures are logged only.
type Publisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Options tunes upstream request sizes and fallback behaviour.
type Options struct {
	OccurrenceSize int
	FishLimit      int
	// MockFallback substitutes deterministic mock data for any view whose
	// source is unavailable.
	MockFallback bool
}

// Service builds snapshots from the three upstream sources.
type Service struct {
	marine      domain.MarineSource
	occurrences domain.OccurrenceSource
	fish        domain.FishSource
	publisher   Publisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	opts        Options
}

// New creates a Service. publisher may be nil.
func New(
	marine domain.MarineSource,
	occurrences domain.OccurrenceSource,
	fish domain.FishSource,
	publisher Publisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
	opts Options,
) *Service {
	return &Service{
		marine:      marine,
		occurrences: occurrences,
		fish:        fish,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		opts:        opts,
	}
}

// Snapshot fetches all three sources concurrently and aggregates them. Each
// view is computed independently; a failed source leaves its views nil (or
// mocked when fallback is enabled) without affecting the others.
func (s *Service) Snapshot(ctx context.Context, c domain.Coordinate) domain.Snapshot {
	var (
		series      domain.MarineSeries
		marineOK    bool
		occurrences []domain.OccurrenceRecord
		occErr      error
		fish        []domain.OccurrenceRecord
	)

	// Each goroutine returns nil so one failure never cancels its siblings.
	var g errgroup.Group
	g.Go(func() error {
		series, marineOK = s.marine.FetchMarine(ctx, c)
		return nil
	})
	g.Go(func() error {
		occurrences, occErr = s.occurrences.FetchOccurrences(ctx, c, s.opts.OccurrenceSize)
		return nil
	})
	g.Go(func() error {
		fish = s.fish.FetchFish(ctx, c, s.opts.FishLimit)
		return nil
	})
	_ = g.Wait()

	snap := domain.NewSnapshot(c)

	if marineOK {
		ocean := domain.SummarizeOceanographic(series)
		snap.Oceanographic = &ocean
		snap.Sources[domain.DomainOceanographic] = domain.SourceLive
	}

	if occErr != nil {
		s.logger.Warn("biodiversity source unavailable",
			"lat", c.Latitude,
			"lon", c.Longitude,
			"error", occErr,
		)
	} else {
		fisheries := domain.AggregateFisheries(occurrences, fish)
		molecular := domain.AggregateBiodiversity(occurrences)
		snap.Fisheries = &fisheries
		snap.Molecular = &molecular
		snap.Sources[domain.DomainFisheries] = domain.SourceLive
		snap.Sources[domain.DomainMolecular] = domain.SourceLive
	}

	if s.opts.MockFallback {
		s.fillFromMock(&snap)
	}

	s.publish(ctx, snap)
	return snap
}

// fillFromMock replaces every unavailable view with mock data.
func (s *Service) fillFromMock(snap *domain.Snapshot) {
	var mock *domain.MockData
	for _, d := range domain.Domains {
		if snap.Sources[d] != domain.SourceUnavailable {
			continue
		}
		if mock == nil {
			m := domain.Mock(snap.Coordinate)
			mock = &m
		}
		switch d {
		case domain.DomainOceanographic:
			snap.Oceanographic = &mock.Oceanographic
		case domain.DomainFisheries:
			snap.Fisheries = &mock.Fisheries
		case domain.DomainMolecular:
			snap.Molecular = &mock.Molecular
		}
		snap.Sources[d] = domain.SourceMock
		s.metrics.MockFallbacks.WithLabelValues(string(d)).Inc()
	}
}

func (s *Service) publish(ctx context.Context, snap domain.Snapshot) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, snap); err != nil {
		s.metrics.PublishFailures.Inc()
		s.logger.Warn("snapshot publish failed", "coordinate", snap.Coordinate.Key(), "error", err)
		return
	}
	s.metrics.SnapshotsPublished.Inc()
}
