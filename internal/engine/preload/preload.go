// Package preload implements the speculative loading triggers: idle time, viewport
// visibility, pointer hover, declared dependencies and route transitions.
package preload

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/loader"
	"go.trai.ch/lazy/internal/engine/registry"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultIdleFallback is the delay used when no idle scheduler is available.
	DefaultIdleFallback = time.Second
	// DefaultRouteTailDelay staggers the non-critical components of a route.
	DefaultRouteTailDelay = time.Second
	// criticalRouteComponents is the number of route components preloaded immediately.
	criticalRouteComponents = 2
)

// Trigger names reported to metrics and logs.
const (
	TriggerIdle       = "idle"
	TriggerViewport   = "viewport"
	TriggerHover      = "hover"
	TriggerDependency = "dependency"
	TriggerRoute      = "route"
)

// Scheduler turns host signals into best-effort loads. Preload failures are logged at
// debug level and never returned.
type Scheduler struct {
	loader   *loader.Loader
	registry *registry.Registry
	logger   ports.Logger
	metrics  ports.Metrics

	idle     ports.IdleScheduler
	viewport ports.ViewportObserver
	hover    ports.HoverSource
	routes   ports.RouteSource

	idleFallback   time.Duration
	routeTailDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	elements     map[domain.ElementID]domain.ComponentConfig
	intent       map[string]int
	pending      map[uint64]*pendingTask
	nextID       uint64
	unsubscribes []func()
}

type pendingTask struct {
	claimed atomic.Bool
	stop    func()
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithIdleScheduler defers idle preloads to the host's idle facility.
func WithIdleScheduler(idle ports.IdleScheduler) Option {
	return func(s *Scheduler) { s.idle = idle }
}

// WithViewportObserver enables the viewport trigger.
func WithViewportObserver(v ports.ViewportObserver) Option {
	return func(s *Scheduler) { s.viewport = v }
}

// WithHoverSource enables the hover trigger.
func WithHoverSource(h ports.HoverSource) Option {
	return func(s *Scheduler) { s.hover = h }
}

// WithRouteSource enables the route trigger.
func WithRouteSource(r ports.RouteSource) Option {
	return func(s *Scheduler) { s.routes = r }
}

// WithMetrics counts triggered preloads.
func WithMetrics(m ports.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithIdleFallback overrides the fallback delay used without an idle scheduler.
func WithIdleFallback(d time.Duration) Option {
	return func(s *Scheduler) { s.idleFallback = d }
}

// WithRouteTailDelay overrides the delay before a route's tail components preload.
func WithRouteTailDelay(d time.Duration) Option {
	return func(s *Scheduler) { s.routeTailDelay = d }
}

// New creates a Scheduler and subscribes to the configured host sources.
func New(l *loader.Loader, r *registry.Registry, logger ports.Logger, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		loader:         l,
		registry:       r,
		logger:         logger,
		idleFallback:   DefaultIdleFallback,
		routeTailDelay: DefaultRouteTailDelay,
		ctx:            ctx,
		cancel:         cancel,
		elements:       make(map[domain.ElementID]domain.ComponentConfig),
		intent:         make(map[string]int),
		pending:        make(map[uint64]*pendingTask),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.viewport != nil {
		s.unsubscribes = append(s.unsubscribes, s.viewport.Subscribe(s.onIntersections))
	}
	if s.hover != nil {
		s.unsubscribes = append(s.unsubscribes, s.hover.SubscribeHover(s.onHover))
	}
	if s.routes != nil {
		s.unsubscribes = append(s.unsubscribes, s.routes.AfterEach(s.onRoute))
	}
	return s
}

// PreloadComponent loads cfg once the host is idle. It is a no-op when the component is
// already cached or loading.
func (s *Scheduler) PreloadComponent(cfg domain.ComponentConfig) {
	s.preloadWhenIdle(cfg, TriggerIdle)
}

func (s *Scheduler) preloadWhenIdle(cfg domain.ComponentConfig, trigger string) {
	if s.settled(cfg.Name) {
		return
	}
	task := func() { s.preload(cfg, trigger) }
	if s.idle != nil {
		s.track(s.idle.Schedule, task)
		return
	}
	s.after(s.idleFallback, task)
}

// ObserveElement preloads cfg the first time el intersects the viewport.
// Without a viewport observer it falls back to an idle preload.
func (s *Scheduler) ObserveElement(el domain.ElementID, cfg domain.ComponentConfig) {
	if s.viewport == nil {
		s.PreloadComponent(cfg)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if prev, ok := s.elements[el]; ok {
		s.dropIntentLocked(prev.Name)
	}
	s.elements[el] = cfg
	s.intent[cfg.Name]++
	s.mu.Unlock()

	s.viewport.Observe(el)
}

// WantsPreload reports whether name is waiting on a viewport intersection.
func (s *Scheduler) WantsPreload(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intent[name] > 0
}

func (s *Scheduler) onIntersections(entries []domain.IntersectionEntry) {
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}

		s.mu.Lock()
		cfg, ok := s.elements[entry.Element]
		if ok {
			delete(s.elements, entry.Element)
			s.dropIntentLocked(cfg.Name)
		}
		s.mu.Unlock()
		if !ok {
			continue
		}

		s.viewport.Unobserve(entry.Element)
		s.preloadNow(cfg, TriggerViewport)
	}
}

func (s *Scheduler) dropIntentLocked(name string) {
	if s.intent[name]--; s.intent[name] <= 0 {
		delete(s.intent, name)
	}
}

func (s *Scheduler) onHover(target domain.HoverTarget) {
	name, ok := domain.NearestComponent(target)
	if !ok {
		return
	}
	if cfg, ok := s.registry.Get(name); ok {
		s.preloadWhenIdle(cfg, TriggerHover)
	}
}

func (s *Scheduler) onRoute(route domain.Route) {
	names := s.registry.RouteComponents(route.Path)
	if len(names) == 0 {
		return
	}

	split := min(criticalRouteComponents, len(names))
	for _, name := range names[:split] {
		s.preloadRegistered(name, TriggerRoute)
	}

	tail := slices.Clone(names[split:])
	if len(tail) == 0 {
		return
	}
	s.after(s.routeTailDelay, func() {
		for _, name := range tail {
			s.preloadRegistered(name, TriggerRoute)
		}
	})
}

func (s *Scheduler) preloadRegistered(name, trigger string) {
	if cfg, ok := s.registry.Get(name); ok {
		s.preloadNow(cfg, trigger)
	}
}

// PreloadWithDependencies loads the transitive dependencies of name concurrently, waits
// for all of them to settle and then loads name. An unregistered name is a no-op, and
// unregistered dependencies are skipped. A dependency that leads back to one of its
// dependents is skipped with a warning.
func (s *Scheduler) PreloadWithDependencies(ctx context.Context, name string) {
	cfg, ok := s.registry.Get(name)
	if !ok {
		return
	}
	s.loadTree(ctx, cfg, []string{name})
}

func (s *Scheduler) loadTree(ctx context.Context, cfg domain.ComponentConfig, chain []string) {
	var g errgroup.Group
	for _, dep := range s.registry.Dependencies(cfg.Name) {
		if slices.Contains(chain, dep) {
			s.logger.Warn(fmt.Sprintf("skipping dependency %s of %s: %s",
				dep, cfg.Name, domain.ErrCycleDetected.Error()))
			continue
		}
		depCfg, ok := s.registry.Get(dep)
		if !ok {
			continue
		}

		depChain := append(slices.Clone(chain), dep)
		g.Go(func() error {
			s.loadTree(ctx, depCfg, depChain)
			return nil
		})
	}
	_ = g.Wait()

	s.load(ctx, cfg, TriggerDependency)
}

// Wait blocks until every scheduled preload has run or been cancelled.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Close cancels pending timers and idle tasks and drops all host subscriptions.
// Loads already started keep running inside the loader.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stops := make([]func(), 0, len(s.pending))
	for _, t := range s.pending {
		if t.stop != nil {
			stops = append(stops, t.stop)
		}
	}
	unsubscribes := s.unsubscribes
	s.unsubscribes = nil
	clear(s.elements)
	clear(s.intent)
	s.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	for _, stop := range stops {
		stop()
	}
	s.cancel()
}

// settled reports whether name needs no further loading right now.
func (s *Scheduler) settled(name string) bool {
	return s.loader.IsCached(name) || s.loader.IsInFlight(name)
}

func (s *Scheduler) preloadNow(cfg domain.ComponentConfig, trigger string) {
	if s.settled(cfg.Name) {
		return
	}
	s.track(func(run func()) func() {
		go run()
		return nil
	}, func() { s.preload(cfg, trigger) })
}

func (s *Scheduler) after(d time.Duration, task func()) {
	s.track(func(run func()) func() {
		t := time.AfterFunc(d, run)
		return func() { t.Stop() }
	}, task)
}

// track hands task to schedule and accounts for it until it either runs or is cancelled
// by Close, whichever comes first.
func (s *Scheduler) track(schedule func(run func()) (cancel func()), task func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	id := s.nextID
	s.nextID++
	t := &pendingTask{}
	s.pending[id] = t
	s.wg.Add(1)
	s.mu.Unlock()

	finish := func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		s.wg.Done()
	}

	stop := schedule(func() {
		if !t.claimed.CompareAndSwap(false, true) {
			return
		}
		defer finish()
		task()
	})

	s.mu.Lock()
	_, stillPending := s.pending[id]
	if stillPending {
		t.stop = func() {
			if stop != nil {
				stop()
			}
			if t.claimed.CompareAndSwap(false, true) {
				finish()
			}
		}
	}
	closed := s.closed
	s.mu.Unlock()

	if stillPending && closed {
		t.stop()
	}
}

func (s *Scheduler) preload(cfg domain.ComponentConfig, trigger string) {
	s.load(s.ctx, cfg, trigger)
}

// load skips components that are already cached. Going through Loader.Load for them
// would count a hit and refresh their recency.
func (s *Scheduler) load(ctx context.Context, cfg domain.ComponentConfig, trigger string) {
	if s.loader.IsCached(cfg.Name) {
		return
	}
	if s.metrics != nil {
		s.metrics.PreloadTriggered(trigger)
	}
	if _, err := s.loader.Load(ctx, cfg); err != nil {
		s.logger.Debug(fmt.Sprintf("%s preload of %s failed: %v", trigger, cfg.Name, err))
	}
}
