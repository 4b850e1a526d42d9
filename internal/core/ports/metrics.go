package ports

import "time"

// Metrics receives cache and load observations.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheHit records a lookup that found a resident component.
	CacheHit()
	// CacheMiss records a lookup that found nothing.
	CacheMiss()
	// CacheEvicted records the number of entries removed by one eviction round.
	CacheEvicted(count int)
	// CacheSize records the current total size and entry count.
	CacheSize(total, entries int)
	// LoadCompleted records the outcome of one import sequence.
	LoadCompleted(name string, attempts int, duration time.Duration, err error)
	// PreloadTriggered records that a trigger asked for a speculative load.
	PreloadTriggered(trigger string)
}
