package domain

// DefaultManifestName is the manifest file name looked up when none is given.
const DefaultManifestName = "components.yaml"

// Manifest is the declarative description of a component set.
type Manifest struct {
	// Root is the directory relative component paths resolve against.
	Root string
	// MaxCacheSize is the cache budget in size units.
	MaxCacheSize int
	// Components lists configs in declaration order.
	Components []ComponentConfig
	// Dependencies maps a component name to its ordered dependency names.
	Dependencies map[string][]string
	// Routes maps a route path to the components it renders, most critical first.
	Routes map[string][]string
}
