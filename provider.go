package tradegains

import (
	"fmt"
	"sort"
	"strings"

	"tradegains/date"
)

// PriceSource supplies historical daily closing prices. One call covers a
// whole symbol and range so implementations can batch and cache; per-date
// lookups happen on the returned history, never against the source.
//
// An empty history (no error) means the source has no data for the symbol.
type PriceSource interface {
	Prices(symbol string, r date.Range) (*date.History[float64], error)
}

// SourceFactory builds a ready-to-use PriceSource.
type SourceFactory func() (PriceSource, error)

var sources = make(map[string]SourceFactory)

// RegisterSource makes a price source available under a name. Sources are
// registered explicitly by the application at startup; registering the
// same name twice panics.
func RegisterSource(name string, factory SourceFactory) {
	if _, dup := sources[name]; dup {
		panic(fmt.Sprintf("price source %q registered twice", name))
	}
	sources[name] = factory
}

// NewSource instantiates the price source registered under name. An
// unknown name is an error that lists the registered ones.
func NewSource(name string) (PriceSource, error) {
	factory, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown price source %q, registered sources: %s",
			name, strings.Join(SourceNames(), ", "))
	}
	return factory()
}

// SourceNames returns the registered source names, sorted.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
