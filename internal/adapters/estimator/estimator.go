// Package estimator measures loaded components for the cache budget.
package estimator

import (
	"encoding/json"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lazy/internal/core/domain"
)

// fallbackSize is charged for components that cannot be serialized.
const fallbackSize = 1

// JSON sizes a component by the length of its JSON serialization and fingerprints
// the serialized bytes with xxhash.
type JSON struct{}

// New creates a new JSON estimator.
func New() *JSON {
	return &JSON{}
}

// Estimate implements ports.SizeEstimator.
func (JSON) Estimate(c domain.Component) domain.Measurement {
	if c == nil {
		return domain.Measurement{Size: fallbackSize}
	}
	data, err := json.Marshal(c)
	if err != nil || len(data) == 0 {
		return domain.Measurement{Size: fallbackSize}
	}
	return domain.Measurement{Size: len(data), Digest: xxhash.Sum64(data)}
}
