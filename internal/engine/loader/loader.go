// Package loader implements the load coordinator: cache lookup, in-flight
// deduplication and the import retry protocol.
package loader

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseDelay is the unit of the retry schedule: the wait after failed attempt n is
// DefaultBaseDelay * 2^n.
const DefaultBaseDelay = 300 * time.Millisecond

// Loader resolves components through the cache, joining concurrent requests for the
// same name onto a single import sequence.
type Loader struct {
	store    *cache.Store
	importer ports.Importer
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics

	baseDelay time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	inFlight map[string]int
	failures map[string]error
}

// Option configures a Loader.
type Option func(*Loader)

// WithTracer traces every import attempt.
func WithTracer(t ports.Tracer) Option {
	return func(l *Loader) {
		l.tracer = t
	}
}

// WithMetrics records the outcome of every import sequence.
func WithMetrics(m ports.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithBaseDelay overrides the retry schedule unit.
func WithBaseDelay(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.baseDelay = d
		}
	}
}

// New creates a Loader storing successful imports in store.
func New(store *cache.Store, importer ports.Importer, logger ports.Logger, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		importer:  importer,
		logger:    logger,
		baseDelay: DefaultBaseDelay,
		inFlight:  make(map[string]int),
		failures:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the component described by cfg.
//
// A cached component is returned without importing. A name with a load already in flight
// joins that load and receives the same component or the same error. Otherwise the import
// is attempted up to cfg.RetryCount times, each attempt bounded by cfg.Timeout.
//
// The import sequence is detached from ctx: when ctx ends, Load returns ctx.Err() but the
// sequence keeps running for the remaining waiters and still populates the cache.
func (l *Loader) Load(ctx context.Context, cfg domain.ComponentConfig) (domain.Component, error) {
	if entry, ok := l.store.Get(cfg.Name); ok {
		return entry.Component, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	l.acquire(cfg.Name)
	defer l.release(cfg.Name)

	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan(cfg.Name, func() (any, error) {
		return l.load(detached, cfg)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Loader) load(ctx context.Context, cfg domain.ComponentConfig) (domain.Component, error) {
	l.acquire(cfg.Name)
	defer l.release(cfg.Name)

	// A load that settled between the caller's cache miss and this call already stored it.
	if entry, ok := l.store.Peek(cfg.Name); ok {
		return entry.Component, nil
	}

	start := time.Now()
	component, attempts, err := l.importWithRetry(ctx, cfg)
	if l.metrics != nil {
		l.metrics.LoadCompleted(cfg.Name, attempts, time.Since(start), err)
	}

	if err != nil {
		loadErr := &domain.LoadError{Name: cfg.Name, Attempts: attempts, Err: err}
		l.setFailure(cfg.Name, loadErr)
		l.logger.Debug(loadErr.Error())
		return nil, loadErr
	}

	l.store.Put(cfg.Name, component)
	l.setFailure(cfg.Name, nil)
	return component, nil
}

func (l *Loader) importWithRetry(
	ctx context.Context,
	cfg domain.ComponentConfig,
) (domain.Component, int, error) {
	var (
		component domain.Component
		attempts  int
	)

	operation := func() error {
		attempts++
		c, err := l.attempt(ctx, cfg, attempts)
		if err != nil {
			return err
		}
		component = c
		return nil
	}

	notify := func(err error, wait time.Duration) {
		l.logger.Debug(fmt.Sprintf("retrying %s in %s after attempt %d/%d: %v",
			cfg.Name, wait, attempts, cfg.RetryCount, err))
	}

	policy := backoff.WithMaxRetries(l.newBackOff(), uint64(cfg.RetryCount-1)) //nolint:gosec // RetryCount >= 1 after defaults
	err := backoff.RetryNotify(operation, policy, notify)
	return component, attempts, err
}

// newBackOff yields baseDelay*2, baseDelay*4, ... with no jitter and no overall deadline.
func (l *Loader) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * l.baseDelay
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = time.Duration(math.MaxInt64)
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

type importResult struct {
	module domain.Module
	err    error
}

// attempt runs one import bounded by cfg.Timeout. It returns as soon as the deadline
// passes, even if the importer does not observe its context.
func (l *Loader) attempt(ctx context.Context, cfg domain.ComponentConfig, n int) (domain.Component, error) {
	var span ports.Span
	if l.tracer != nil {
		ctx, span = l.tracer.Start(ctx, "import",
			ports.WithAttribute("component.name", cfg.Name),
			ports.WithAttribute("component.path", cfg.Path),
			ports.WithAttribute("attempt", n),
		)
		defer span.End()
	}

	attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	done := make(chan importResult, 1)
	go func() {
		module, err := l.importer.Import(attemptCtx, cfg.Path)
		done <- importResult{module: module, err: err}
	}()

	var err error
	select {
	case res := <-done:
		switch {
		case res.err != nil && attemptCtx.Err() != nil:
			err = timeoutError(attemptCtx.Err(), cfg)
		case res.err != nil:
			err = zerr.With(zerr.Wrap(res.err, domain.ErrImportFailed.Error()), "component", cfg.Name)
		default:
			if c := res.module.Component(); c != nil {
				return c, nil
			}
			err = zerr.With(zerr.Wrap(errEmptyModule, domain.ErrImportFailed.Error()), "component", cfg.Name)
		}
	case <-attemptCtx.Done():
		err = timeoutError(attemptCtx.Err(), cfg)
	}

	if span != nil {
		span.RecordError(err)
	}
	return nil, err
}

var errEmptyModule = zerr.New("module has no exports")

func timeoutError(cause error, cfg domain.ComponentConfig) error {
	err := zerr.Wrap(cause, domain.ErrImportTimeout.Error())
	err = zerr.With(err, "component", cfg.Name)
	return zerr.With(err, "timeout", cfg.Timeout.String())
}

// IsInFlight reports whether a load for name is pending.
func (l *Loader) IsInFlight(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inFlight[name] > 0
}

// InFlightCount returns the number of names with a pending load.
func (l *Loader) InFlightCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.inFlight)
}

// IsCached reports whether name is resident in the cache without touching its recency.
func (l *Loader) IsCached(name string) bool {
	return l.store.Contains(name)
}

// Status reports the lifecycle state of name and, for StatusError, the terminal error
// of its last load.
func (l *Loader) Status(name string) (domain.LoadStatus, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	switch {
	case l.inFlight[name] > 0:
		return domain.StatusLoading, nil
	case l.store.Contains(name):
		return domain.StatusLoaded, nil
	case l.failures[name] != nil:
		return domain.StatusError, l.failures[name]
	default:
		return domain.StatusNone, nil
	}
}

// Invalidate drops name from the cache and forgets its last failure, so the next Load
// imports it again. A load already in flight is not interrupted.
func (l *Loader) Invalidate(name string) bool {
	l.setFailure(name, nil)
	return l.store.Remove(name)
}

func (l *Loader) acquire(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight[name]++
}

func (l *Loader) release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[name]--; l.inFlight[name] <= 0 {
		delete(l.inFlight, name)
	}
}

func (l *Loader) setFailure(name string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.failures, name)
		return
	}
	l.failures[name] = err
}
