package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/internal/adapters/metrics"
	"go.trai.ch/lazy/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Metrics = (*metrics.Prometheus)(nil)
}

func TestPrometheus_CacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.CacheEvicted(2)
	m.CacheEvicted(0)
	m.CacheSize(9, 3)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			key := mf.GetName()
			for _, label := range metric.GetLabel() {
				key += "/" + label.GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				values[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[key] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.InDelta(t, 2, values["lazy_cache_lookups_total/hit"], 0)
	assert.InDelta(t, 1, values["lazy_cache_lookups_total/miss"], 0)
	assert.InDelta(t, 2, values["lazy_cache_evictions_total"], 0)
	assert.InDelta(t, 9, values["lazy_cache_size"], 0)
	assert.InDelta(t, 3, values["lazy_cache_entries"], 0)
}

func TestPrometheus_LoadCompleted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.LoadCompleted("Card", 2, 650*time.Millisecond, nil)
	m.LoadCompleted("Card", 3, 2*time.Second, errors.New("boom"))
	m.LoadCompleted("Header", 1, 5*time.Millisecond, nil)

	assert.Equal(t, 3, testutil.CollectAndCount(reg, "lazy_loads_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "lazy_load_attempts"))
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "lazy_load_duration_milliseconds"))
}

func TestPrometheus_PreloadTriggered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.PreloadTriggered("hover")
	m.PreloadTriggered("hover")
	m.PreloadTriggered("route")

	assert.Equal(t, 2, testutil.CollectAndCount(reg, "lazy_preloads_total"))
}

func TestPrometheus_NilIsSafe(_ *testing.T) {
	var m *metrics.Prometheus

	m.CacheHit()
	m.CacheMiss()
	m.CacheEvicted(1)
	m.CacheSize(1, 1)
	m.LoadCompleted("Card", 1, time.Millisecond, nil)
	m.PreloadTriggered("idle")
}
