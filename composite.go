package envcfg

import "github.com/orph3usLyre/env-config/internal/reflectx"

// namedSource wraps a Source with its type name for source reporting.
type namedSource struct {
	source Source
	name   string
}

// CompositeSource chains multiple sources and returns the first value found.
// Useful for fallback scenarios, e.g., the process environment with an
// in-memory override map in front of it.
type CompositeSource struct {
	sources []namedSource
}

// NewCompositeSource creates a source that tries each source in order until
// one reports the variable as set.
func NewCompositeSource(sources ...Source) CompositeSource {
	namedSources := make([]namedSource, len(sources))
	for i, s := range sources {
		namedSources[i] = namedSource{
			source: s,
			name:   reflectx.TypeNameOf(s),
		}
	}
	return CompositeSource{
		sources: namedSources,
	}
}

// Lookup returns the value from the first source that has the variable set.
func (c CompositeSource) Lookup(name string) (string, bool) {
	value, _, ok := c.LookupWithSource(name)
	return value, ok
}

// LookupWithSource returns the value and reports which source supplied it.
func (c CompositeSource) LookupWithSource(name string) (value, source string, ok bool) {
	for _, s := range c.sources {
		if v, found := s.source.Lookup(name); found {
			return v, s.name, true
		}
	}
	return "", "", false
}
