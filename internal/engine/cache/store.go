// Package cache implements the size-bounded, least-recently-used component cache.
package cache

import (
	"cmp"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
)

// evictPercent is the share of resident entries removed by one eviction round.
const evictPercent = 20

// Store holds loaded components keyed by name.
// Store is safe for concurrent use.
type Store struct {
	clock     clockwork.Clock
	estimator ports.SizeEstimator
	metrics   ports.Metrics

	mu        sync.Mutex
	maxSize   int
	entries   map[string]*entry
	totalSize int
	seq       uint64
	hits      uint64
	misses    uint64
	evictions uint64
}

type entry struct {
	domain.CacheEntry
	seq uint64
}

// Option configures a Store.
type Option func(*Store)

// WithMaxSize sets the cache budget in size units.
func WithMaxSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.maxSize = size
		}
	}
}

// WithClock sets the clock used for LoadedAt and LastUsed timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithMetrics sets the sink for hit, miss and eviction observations.
func WithMetrics(m ports.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates an empty Store that measures components with estimator.
func NewStore(estimator ports.SizeEstimator, opts ...Option) *Store {
	s := &Store{
		clock:     clockwork.NewRealClock(),
		estimator: estimator,
		maxSize:   domain.DefaultMaxCacheSize,
		entries:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entry for name and refreshes its LastUsed timestamp.
func (s *Store) Get(name string) (domain.CacheEntry, bool) {
	s.mu.Lock()
	e, ok := s.entries[name]
	if ok {
		e.LastUsed = s.clock.Now()
		s.hits++
	} else {
		s.misses++
	}
	var out domain.CacheEntry
	if ok {
		out = e.CacheEntry
	}
	s.mu.Unlock()

	if s.metrics != nil {
		if ok {
			s.metrics.CacheHit()
		} else {
			s.metrics.CacheMiss()
		}
	}
	return out, ok
}

// Contains reports whether name is resident without touching its recency.
func (s *Store) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[name]
	return ok
}

// Peek returns the entry for name without refreshing its recency or counting a lookup.
func (s *Store) Peek(name string) (domain.CacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[name]; ok {
		return e.CacheEntry, true
	}
	return domain.CacheEntry{}, false
}

// Put stores component under name, evicting least recently used entries until it fits.
// A component larger than the whole budget is still admitted once the cache is empty.
func (s *Store) Put(name string, component domain.Component) domain.CacheEntry {
	m := s.measure(component)

	s.mu.Lock()
	if old, ok := s.entries[name]; ok {
		s.totalSize -= old.Size
		delete(s.entries, name)
	}

	evicted := 0
	for s.totalSize+m.Size > s.maxSize && len(s.entries) > 0 {
		evicted += len(s.evictLocked())
	}

	now := s.clock.Now()
	s.seq++
	e := &entry{
		CacheEntry: domain.CacheEntry{
			Name:      name,
			Component: component,
			Status:    domain.StatusLoaded,
			LoadedAt:  now,
			LastUsed:  now,
			Size:      m.Size,
			Digest:    m.Digest,
		},
		seq: s.seq,
	}
	s.entries[name] = e
	s.totalSize += m.Size
	total, count := s.totalSize, len(s.entries)
	s.mu.Unlock()

	if s.metrics != nil {
		if evicted > 0 {
			s.metrics.CacheEvicted(evicted)
		}
		s.metrics.CacheSize(total, count)
	}
	return e.CacheEntry
}

// SetMaxSize changes the cache budget and evicts until the resident entries fit.
// Non-positive sizes are ignored.
func (s *Store) SetMaxSize(size int) {
	if size <= 0 {
		return
	}

	s.mu.Lock()
	s.maxSize = size
	evicted := 0
	for s.totalSize > s.maxSize && len(s.entries) > 0 {
		evicted += len(s.evictLocked())
	}
	total, count := s.totalSize, len(s.entries)
	s.mu.Unlock()

	if s.metrics != nil && evicted > 0 {
		s.metrics.CacheEvicted(evicted)
		s.metrics.CacheSize(total, count)
	}
}

// Evict runs one eviction round and returns the names removed, oldest first.
func (s *Store) Evict() []string {
	s.mu.Lock()
	removed := s.evictLocked()
	total, count := s.totalSize, len(s.entries)
	s.mu.Unlock()

	if s.metrics != nil && len(removed) > 0 {
		s.metrics.CacheEvicted(len(removed))
		s.metrics.CacheSize(total, count)
	}
	return removed
}

// evictLocked removes max(1, floor(0.2 * count)) entries in LastUsed order,
// breaking ties by insertion order. The caller must hold s.mu.
func (s *Store) evictLocked() []string {
	if len(s.entries) == 0 {
		return nil
	}

	ordered := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		ordered = append(ordered, e)
	}
	slices.SortFunc(ordered, byRecency)

	n := max(1, len(ordered)*evictPercent/100)
	removed := make([]string, 0, n)
	for _, e := range ordered[:n] {
		delete(s.entries, e.Name)
		s.totalSize -= e.Size
		removed = append(removed, e.Name)
	}
	s.evictions += uint64(n)
	return removed
}

// Remove drops name from the cache and reports whether it was resident.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	e, ok := s.entries[name]
	if ok {
		delete(s.entries, name)
		s.totalSize -= e.Size
	}
	total, count := s.totalSize, len(s.entries)
	s.mu.Unlock()

	if ok && s.metrics != nil {
		s.metrics.CacheSize(total, count)
	}
	return ok
}

// Clear removes every entry and resets the size total.
// Hit, miss and eviction counters are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	clear(s.entries)
	s.totalSize = 0
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.CacheSize(0, 0)
	}
}

// Entries returns a snapshot of the resident entries, least recently used first.
func (s *Store) Entries() []domain.CacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		ordered = append(ordered, e)
	}
	slices.SortFunc(ordered, byRecency)

	out := make([]domain.CacheEntry, len(ordered))
	for i, e := range ordered {
		out[i] = e.CacheEntry
	}
	return out
}

// Stats returns a snapshot of the cache counters.
func (s *Store) Stats() domain.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.CacheStats{
		TotalSize:  s.totalSize,
		EntryCount: len(s.entries),
		MaxSize:    s.maxSize,
		Hits:       s.hits,
		Misses:     s.misses,
		Evictions:  s.evictions,
	}
	if lookups := s.hits + s.misses; lookups > 0 {
		stats.HitRate = float64(s.hits) / float64(lookups)
	}
	return stats
}

func byRecency(a, b *entry) int {
	if c := a.LastUsed.Compare(b.LastUsed); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func (s *Store) measure(component domain.Component) domain.Measurement {
	if s.estimator == nil {
		return domain.Measurement{Size: 1}
	}
	m := s.estimator.Estimate(component)
	if m.Size < 0 {
		m.Size = 0
	}
	return m
}
