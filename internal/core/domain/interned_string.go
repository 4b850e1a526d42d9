package domain

import "unique"

// InternedString wraps a unique.Handle so that component names repeated across
// the dependency graph share one backing string.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying component name.
func (is InternedString) String() string {
	return is.h.Value()
}
