package viewport_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/internal/adapters/viewport"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.ViewportObserver = (*viewport.Tracker)(nil)
}

type recorder struct {
	mu      sync.Mutex
	batches [][]domain.IntersectionEntry
}

func (r *recorder) record(batch []domain.IntersectionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
}

func (r *recorder) all() []domain.IntersectionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.IntersectionEntry
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func newTracker(t *testing.T) (*viewport.Tracker, *recorder) {
	t.Helper()
	tr := viewport.New(domain.DefaultObserverOptions())
	tr.SetViewport(domain.Rect{Width: 800, Height: 600})
	rec := &recorder{}
	tr.Subscribe(rec.record)
	return tr, rec
}

func TestTracker_ObserveReportsInitialState(t *testing.T) {
	tr, rec := newTracker(t)
	tr.SetBounds("visible", domain.Rect{Y: 100, Width: 100, Height: 100})
	tr.SetBounds("hidden", domain.Rect{Y: 2000, Width: 100, Height: 100})

	tr.Observe("visible")
	tr.Observe("hidden")

	entries := rec.all()
	require.Len(t, entries, 2)
	assert.Equal(t, domain.IntersectionEntry{Element: "visible", IsIntersecting: true, Ratio: 1}, entries[0])
	assert.Equal(t, domain.IntersectionEntry{Element: "hidden"}, entries[1])
}

func TestTracker_RootMarginStartsEarly(t *testing.T) {
	tr, rec := newTracker(t)
	tr.SetBounds("below", domain.Rect{Y: 650, Width: 100, Height: 100})

	tr.Observe("below")

	entries := rec.all()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsIntersecting)
	assert.InDelta(t, 0.5, entries[0].Ratio, 1e-9)
}

func TestTracker_ThresholdRequiresTenPercent(t *testing.T) {
	tr, rec := newTracker(t)
	// 5px of a 100px-tall element falls inside the margin-extended viewport.
	tr.SetBounds("edge", domain.Rect{Y: 695, Width: 100, Height: 100})

	tr.Observe("edge")

	entries := rec.all()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsIntersecting)
	assert.InDelta(t, 0.05, entries[0].Ratio, 1e-9)
}

func TestTracker_ScrollEmitsOnlyChanges(t *testing.T) {
	tr, rec := newTracker(t)
	tr.SetBounds("card", domain.Rect{Y: 1500, Width: 100, Height: 100})
	tr.Observe("card")

	tr.SetViewport(domain.Rect{Y: 200, Width: 800, Height: 600})
	tr.SetViewport(domain.Rect{Y: 900, Width: 800, Height: 600})
	tr.SetViewport(domain.Rect{Y: 950, Width: 800, Height: 600})

	entries := rec.all()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsIntersecting)
	assert.True(t, entries[1].IsIntersecting)
}

func TestTracker_UnobserveStopsReports(t *testing.T) {
	tr, rec := newTracker(t)
	tr.Observe("card")
	assert.Empty(t, rec.all())

	tr.Unobserve("card")
	tr.SetBounds("card", domain.Rect{Width: 100, Height: 100})

	assert.Empty(t, rec.all())
}

func TestTracker_Unsubscribe(t *testing.T) {
	tr := viewport.New(domain.DefaultObserverOptions())
	tr.SetViewport(domain.Rect{Width: 800, Height: 600})

	calls := 0
	unsubscribe := tr.Subscribe(func([]domain.IntersectionEntry) { calls++ })
	unsubscribe()

	tr.SetBounds("card", domain.Rect{Width: 100, Height: 100})
	tr.Observe("card")

	assert.Zero(t, calls)
}
