package ports

import "go.trai.ch/lazy/internal/core/domain"

// IdleScheduler runs work when the host has nothing more important to do.
type IdleScheduler interface {
	// Schedule queues task and returns a function that cancels it if it has not run yet.
	Schedule(task func()) (cancel func())
}

// ViewportObserver reports visibility changes of observed elements.
type ViewportObserver interface {
	// Observe starts reporting intersection changes for el.
	Observe(el domain.ElementID)
	// Unobserve stops reporting for el.
	Unobserve(el domain.ElementID)
	// Subscribe registers fn for batches of intersection entries.
	Subscribe(fn func([]domain.IntersectionEntry)) (unsubscribe func())
}

// HoverSource is the document-level pointer-hover event source.
type HoverSource interface {
	// SubscribeHover registers fn for every hover target.
	SubscribeHover(fn func(domain.HoverTarget)) (unsubscribe func())
}

// RouteSource reports completed route transitions.
type RouteSource interface {
	// AfterEach registers fn to run after every navigation.
	AfterEach(fn func(domain.Route)) (unsubscribe func())
}
