// Package viewport computes element visibility from host-reported layout geometry.
package viewport

import (
	"sync"

	"go.trai.ch/lazy/internal/core/domain"
)

// Tracker implements ports.ViewportObserver over rectangles reported by the host.
// The host pushes the viewport and element bounds; the tracker emits an entry whenever
// an observed element crosses the intersection threshold, and once when observation
// starts for an element with known bounds.
type Tracker struct {
	opts domain.ObserverOptions

	mu       sync.Mutex
	viewport domain.Rect
	bounds   map[domain.ElementID]domain.Rect
	observed map[domain.ElementID]bool
	state    map[domain.ElementID]bool
	subs     map[uint64]func([]domain.IntersectionEntry)
	nextSub  uint64
}

// New creates a Tracker with the given options and an empty viewport.
func New(opts domain.ObserverOptions) *Tracker {
	return &Tracker{
		opts:     opts,
		bounds:   make(map[domain.ElementID]domain.Rect),
		observed: make(map[domain.ElementID]bool),
		state:    make(map[domain.ElementID]bool),
		subs:     make(map[uint64]func([]domain.IntersectionEntry)),
	}
}

// Observe starts reporting intersection changes for el.
func (t *Tracker) Observe(el domain.ElementID) {
	t.mu.Lock()
	if t.observed[el] {
		t.mu.Unlock()
		return
	}
	t.observed[el] = true
	var batch []domain.IntersectionEntry
	if b, ok := t.bounds[el]; ok {
		entry := t.entry(el, b)
		t.state[el] = entry.IsIntersecting
		batch = append(batch, entry)
	}
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, batch)
}

// Unobserve stops reporting for el.
func (t *Tracker) Unobserve(el domain.ElementID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.observed, el)
	delete(t.state, el)
}

// Subscribe registers fn for batches of intersection entries.
func (t *Tracker) Subscribe(fn func([]domain.IntersectionEntry)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// SetViewport updates the visible area and re-evaluates every observed element.
func (t *Tracker) SetViewport(r domain.Rect) {
	t.mu.Lock()
	t.viewport = r
	var batch []domain.IntersectionEntry
	for el := range t.observed {
		if entry, changed := t.updateLocked(el); changed {
			batch = append(batch, entry)
		}
	}
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, batch)
}

// SetBounds records the layout rectangle of el and re-evaluates it when observed.
func (t *Tracker) SetBounds(el domain.ElementID, r domain.Rect) {
	t.mu.Lock()
	t.bounds[el] = r
	var batch []domain.IntersectionEntry
	if t.observed[el] {
		if entry, changed := t.updateLocked(el); changed {
			batch = append(batch, entry)
		}
	}
	subs := t.subscribersLocked()
	t.mu.Unlock()

	notify(subs, batch)
}

// Remove forgets an element's bounds, for example when the host destroys it.
func (t *Tracker) Remove(el domain.ElementID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.bounds, el)
	delete(t.observed, el)
	delete(t.state, el)
}

func (t *Tracker) updateLocked(el domain.ElementID) (domain.IntersectionEntry, bool) {
	b, ok := t.bounds[el]
	if !ok {
		return domain.IntersectionEntry{}, false
	}
	entry := t.entry(el, b)
	prev, seen := t.state[el]
	t.state[el] = entry.IsIntersecting
	return entry, !seen || prev != entry.IsIntersecting
}

func (t *Tracker) entry(el domain.ElementID, b domain.Rect) domain.IntersectionEntry {
	root := t.viewport.Expand(t.opts.MarginVertical, t.opts.MarginHorizontal)
	overlap, ok := b.Intersect(root)
	if !ok {
		return domain.IntersectionEntry{Element: el}
	}

	ratio := 1.0
	if area := b.Area(); area > 0 {
		ratio = overlap.Area() / area
	}
	return domain.IntersectionEntry{
		Element:        el,
		IsIntersecting: ratio >= t.opts.Threshold,
		Ratio:          ratio,
	}
}

func (t *Tracker) subscribersLocked() []func([]domain.IntersectionEntry) {
	subs := make([]func([]domain.IntersectionEntry), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func([]domain.IntersectionEntry), batch []domain.IntersectionEntry) {
	if len(batch) == 0 {
		return
	}
	for _, fn := range subs {
		fn(batch)
	}
}
