// Package cache decorates the upstream API clients with an in-memory LRU
// cache keyed by source and coordinate.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
)

// Options configures every decorator.
type Options struct {
	MaxEntries int
	TTL        time.Duration
	Clock      clockwork.Clock // defaults to the real clock
	Metrics    *observability.Metrics
}

func (o Options) clock() clockwork.Clock {
	if o.Clock == nil {
		return clockwork.NewRealClock()
	}
	return o.Clock
}

func (o Options) lookup(source string, hit bool) {
	if o.Metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	o.Metrics.CacheLookups.WithLabelValues(source, result).Inc()
}

// Marine wraps a MarineSource.
type Marine struct {
	inner domain.MarineSource
	cache *lruCache[domain.MarineSeries]
	opts  Options
}

// NewMarine creates a cache decorator around a marine-weather source.
func NewMarine(inner domain.MarineSource, opts Options) *Marine {
	return &Marine{
		inner: inner,
		cache: newLRUCache[domain.MarineSeries](opts.MaxEntries, opts.TTL, opts.clock()),
		opts:  opts,
	}
}

func (m *Marine) FetchMarine(ctx context.Context, c domain.Coordinate) (domain.MarineSeries, bool) {
	key := "marine:" + c.Key()
	if series, ok := m.cache.get(key); ok {
		m.opts.lookup("marine", true)
		return series, true
	}
	m.opts.lookup("marine", false)

	series, ok := m.inner.FetchMarine(ctx, c)
	// Unavailable and empty responses are not cached so they can be retried.
	if ok && series.HasData() {
		m.cache.put(key, series)
	}
	return series, ok
}

// Occurrences wraps the primary OccurrenceSource.
type Occurrences struct {
	inner domain.OccurrenceSource
	cache *lruCache[[]domain.OccurrenceRecord]
	opts  Options
}

// NewOccurrences creates a cache decorator around an occurrence source.
func NewOccurrences(inner domain.OccurrenceSource, opts Options) *Occurrences {
	return &Occurrences{
		inner: inner,
		cache: newLRUCache[[]domain.OccurrenceRecord](opts.MaxEntries, opts.TTL, opts.clock()),
		opts:  opts,
	}
}

func (o *Occurrences) FetchOccurrences(ctx context.Context, c domain.Coordinate, size int) ([]domain.OccurrenceRecord, error) {
	key := fmt.Sprintf("obis:%s|%d", c.Key(), size)
	if records, ok := o.cache.get(key); ok {
		o.opts.lookup("obis", true)
		return records, nil
	}
	o.opts.lookup("obis", false)

	records, err := o.inner.FetchOccurrences(ctx, c, size)
	if err != nil {
		return records, err
	}
	if len(records) > 0 {
		o.cache.put(key, records)
	}
	return records, nil
}

// Fish wraps the secondary FishSource.
type Fish struct {
	inner domain.FishSource
	cache *lruCache[[]domain.OccurrenceRecord]
	opts  Options
}

// NewFish creates a cache decorator around a fish source.
func NewFish(inner domain.FishSource, opts Options) *Fish {
	return &Fish{
		inner: inner,
		cache: newLRUCache[[]domain.OccurrenceRecord](opts.MaxEntries, opts.TTL, opts.clock()),
		opts:  opts,
	}
}

func (f *Fish) FetchFish(ctx context.Context, c domain.Coordinate, limit int) []domain.OccurrenceRecord {
	key := fmt.Sprintf("gbif:%s|%d", c.Key(), limit)
	if records, ok := f.cache.get(key); ok {
		f.opts.lookup("gbif", true)
		return records
	}
	f.opts.lookup("gbif", false)

	records := f.inner.FetchFish(ctx, c, limit)
	if len(records) > 0 {
		f.cache.put(key, records)
	}
	return records
}
