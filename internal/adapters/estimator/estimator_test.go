package estimator_test

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/lazy/internal/adapters/estimator"
)

func TestEstimate_SerializedLength(t *testing.T) {
	m := estimator.New().Estimate(map[string]any{"a": 1})

	assert.Equal(t, len(`{"a":1}`), m.Size)
	assert.Equal(t, xxhash.Sum64String(`{"a":1}`), m.Digest)
}

func TestEstimate_EqualComponentsShareDigest(t *testing.T) {
	e := estimator.New()

	a := e.Estimate([]any{"x", 2})
	b := e.Estimate([]any{"x", 2})
	c := e.Estimate([]any{"x", 3})

	assert.Equal(t, a.Digest, b.Digest)
	assert.NotEqual(t, a.Digest, c.Digest)
}

func TestEstimate_UnserializableFallsBack(t *testing.T) {
	e := estimator.New()

	assert.Equal(t, 1, e.Estimate(func() {}).Size)
	assert.Equal(t, uint64(0), e.Estimate(make(chan int)).Digest)
	assert.Equal(t, 1, e.Estimate(nil).Size)
}
