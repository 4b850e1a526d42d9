// Package events relays host interaction events (pointer hover, navigation) to subscribers.
package events

import (
	"sync"

	"go.trai.ch/lazy/internal/core/domain"
)

// observers is a set of callbacks keyed by subscription ID.
type observers[T any] struct {
	mu     sync.RWMutex
	fns    map[uint64]func(T)
	nextID uint64
}

func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[uint64]func(T))
	}
	id := o.nextID
	o.nextID++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
	}
}

// notify calls every observer synchronously, outside the lock.
func (o *observers[T]) notify(v T) {
	o.mu.RLock()
	fns := make([]func(T), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Bus implements ports.HoverSource and ports.RouteSource. The host publishes
// hover targets and completed navigations; subscribers run on the publishing goroutine.
type Bus struct {
	hover  observers[domain.HoverTarget]
	routes observers[domain.Route]
}

// New creates a new Bus.
func New() *Bus {
	return &Bus{}
}

// SubscribeHover registers fn for every hover target.
func (b *Bus) SubscribeHover(fn func(domain.HoverTarget)) (unsubscribe func()) {
	return b.hover.add(fn)
}

// AfterEach registers fn to run after every navigation.
func (b *Bus) AfterEach(fn func(domain.Route)) (unsubscribe func()) {
	return b.routes.add(fn)
}

// PublishHover reports that the pointer entered target.
func (b *Bus) PublishHover(target domain.HoverTarget) {
	if target == nil {
		return
	}
	b.hover.notify(target)
}

// Navigate reports a completed transition to route.
func (b *Bus) Navigate(route domain.Route) {
	b.routes.notify(route)
}
