package ports

import "go.trai.ch/lazy/internal/core/domain"

// SizeEstimator measures the memory cost of a loaded component.
//
//go:generate go run go.uber.org/mock/mockgen -source=estimator.go -destination=mocks/mock_estimator.go -package=mocks
type SizeEstimator interface {
	// Estimate returns the size and fingerprint of a component. It never fails;
	// unmeasurable components report a size of 1.
	Estimate(c domain.Component) domain.Measurement
}
