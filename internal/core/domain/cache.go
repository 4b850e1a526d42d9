package domain

import "time"

// LoadStatus is the lifecycle state of a component load.
type LoadStatus string

const (
	// StatusNone indicates the component has never been requested.
	StatusNone LoadStatus = ""
	// StatusLoading indicates an import is in flight.
	StatusLoading LoadStatus = "Loading"
	// StatusLoaded indicates the component is resident in the cache.
	StatusLoaded LoadStatus = "Loaded"
	// StatusError indicates the last load exhausted its retries.
	StatusError LoadStatus = "Error"
)

// DefaultMaxCacheSize is the default cache budget in size units.
const DefaultMaxCacheSize = 50

// Measurement is the cost estimate of a loaded component.
type Measurement struct {
	// Size is the non-negative size estimate used against the cache budget.
	Size int
	// Digest fingerprints the serialized artifact; zero when it could not be serialized.
	Digest uint64
}

// CacheEntry is a stored component plus its usage metadata.
type CacheEntry struct {
	Name      string
	Component Component
	Status    LoadStatus
	LoadedAt  time.Time
	// LastUsed is refreshed on every cache hit and drives LRU eviction.
	LastUsed time.Time
	Size     int
	Digest   uint64
}

// CacheStats is a point-in-time snapshot of cache usage.
type CacheStats struct {
	TotalSize  int
	EntryCount int
	MaxSize    int
	// Hits and Misses count Store.Get lookups. Every caller of a load looks up the
	// cache once, so callers joining an in-flight import each record a miss.
	// Preloads of cached components do not look up and are not counted.
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	// HitRate is Hits / (Hits + Misses), or zero before the first lookup.
	HitRate float64
}
