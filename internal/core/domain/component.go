// Package domain contains the core domain models for lazily loaded UI components.
package domain

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultLoadingComponent is the placeholder rendered while a component loads.
	DefaultLoadingComponent = "LoadingSpinner"
	// DefaultErrorComponent is the placeholder rendered when a component fails to load.
	DefaultErrorComponent = "ErrorDisplay"
	// DefaultRetryCount is the number of import attempts made before a load fails.
	DefaultRetryCount = 3
	// DefaultTimeout bounds a single import attempt.
	DefaultTimeout = 30 * time.Second
)

// Component is an opaque loaded artifact. The core never inspects it beyond measuring it.
type Component any

// ComponentConfig is the identity and load policy of one loadable unit.
// It is treated as immutable once registered.
type ComponentConfig struct {
	Name             string
	Path             string
	LoadingComponent string
	ErrorComponent   string
	RetryCount       int
	Timeout          time.Duration
	Props            map[string]any
}

// WithDefaults returns a copy of the config with zero-valued policy fields filled in.
func (c ComponentConfig) WithDefaults() ComponentConfig {
	if c.LoadingComponent == "" {
		c.LoadingComponent = DefaultLoadingComponent
	}
	if c.ErrorComponent == "" {
		c.ErrorComponent = DefaultErrorComponent
	}
	if c.RetryCount <= 0 {
		c.RetryCount = DefaultRetryCount
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate checks that the config carries the identity fields required to load it.
func (c ComponentConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return zerr.With(ErrInvalidConfig, "field", "name")
	}
	if strings.TrimSpace(c.Path) == "" {
		return zerr.With(zerr.With(ErrInvalidConfig, "field", "path"), "component", c.Name)
	}
	return nil
}

// Module is the result of the host import primitive.
// Default holds the module's default export; Namespace holds the whole module.
type Module struct {
	Default   Component
	Namespace map[string]any
}

// Component returns the default export, or the module namespace itself when there is none.
func (m Module) Component() Component {
	if m.Default != nil {
		return m.Default
	}
	if m.Namespace != nil {
		return m.Namespace
	}
	return nil
}
