package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when a component configuration is missing a name or path.
	ErrInvalidConfig = zerr.New("invalid component config")

	// ErrComponentNotFound is returned when a requested component is not registered.
	ErrComponentNotFound = zerr.New("component not found")

	// ErrCycleDetected is returned when a cycle is detected in the component dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrImportFailed is returned when the host import primitive fails for a single attempt.
	ErrImportFailed = zerr.New("failed to import component module")

	// ErrImportTimeout is returned when a single import attempt exceeds its timeout.
	ErrImportTimeout = zerr.New("component import timed out")

	// ErrLoadFailed is returned when a component could not be loaded after all retries.
	ErrLoadFailed = zerr.New("failed to load component")

	// ErrUnsupportedModule is returned when a module path has no importer able to handle it.
	ErrUnsupportedModule = zerr.New("unsupported module type")

	// ErrModuleReadFailed is returned when a module source cannot be read.
	ErrModuleReadFailed = zerr.New("failed to read module source")

	// ErrModuleParseFailed is returned when a module source cannot be evaluated or decoded.
	ErrModuleParseFailed = zerr.New("failed to parse module source")

	// ErrModuleFetchFailed is returned when a remote module responds with an error status.
	ErrModuleFetchFailed = zerr.New("failed to fetch remote module")

	// ErrManifestNotFound is returned when the component manifest file does not exist.
	ErrManifestNotFound = zerr.New("component manifest not found")

	// ErrManifestReadFailed is returned when the component manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read component manifest")

	// ErrManifestParseFailed is returned when the component manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse component manifest")

	// ErrManifestInvalid is returned when the component manifest fails validation.
	ErrManifestInvalid = zerr.New("invalid component manifest")

	// ErrDuplicateComponent is returned when a manifest declares the same component twice.
	ErrDuplicateComponent = zerr.New("duplicate component name")

	// ErrInvalidDuration is returned when a manifest duration cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration, expected milliseconds or a Go duration string")

	// ErrNoComponentsSpecified is returned when a command is run without component names.
	ErrNoComponentsSpecified = zerr.New("no components specified")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
