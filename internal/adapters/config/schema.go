package config

import (
	"strconv"
	"time"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Manifest represents the structure of the components.yaml file.
type Manifest struct {
	Version      string              `yaml:"version"`
	Root         string              `yaml:"root"`
	Cache        CacheDTO            `yaml:"cache"`
	Components   []ComponentDTO      `yaml:"components" validate:"required,min=1,dive"`
	Dependencies map[string][]string `yaml:"dependencies" validate:"dive,dive,required"`
	Routes       map[string][]string `yaml:"routes" validate:"dive,dive,required"`
}

// CacheDTO configures the component cache.
type CacheDTO struct {
	MaxSize int `yaml:"maxSize" validate:"gte=0"`
}

// ComponentDTO represents a component definition in the manifest.
type ComponentDTO struct {
	Name             string         `yaml:"name" validate:"required"`
	Path             string         `yaml:"path" validate:"required"`
	LoadingComponent string         `yaml:"loadingComponent"`
	ErrorComponent   string         `yaml:"errorComponent"`
	RetryCount       int            `yaml:"retryCount" validate:"gte=0,lte=10"`
	Timeout          Duration       `yaml:"timeout" validate:"gte=0"`
	Props            map[string]any `yaml:"props"`
}

// Duration accepts either integer milliseconds or a Go duration string.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		ms, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return zerr.With(domain.ErrInvalidDuration, "value", node.Value)
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return zerr.With(domain.ErrInvalidDuration, "value", node.Value)
	}
	*d = Duration(parsed)
	return nil
}
