package envcfg

import "os"

// Source supplies raw configuration values by environment variable name.
// Implementations must distinguish an unset variable from one set to the
// empty string: only a truly unset variable reports ok == false.
type Source interface {
	// Lookup returns the value for name and whether it is set.
	Lookup(name string) (value string, ok bool)
}

// EnvSource reads the process environment. This is the source used by Load;
// the zero value is ready to use.
type EnvSource struct{}

// NewEnvSource creates a new process environment source.
func NewEnvSource() EnvSource {
	return EnvSource{}
}

// Lookup returns the environment variable value for the given name.
func (EnvSource) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapSource is an in-memory Source backed by a plain map. It removes the
// need to mutate the process environment in tests.
type MapSource map[string]string

// Lookup returns the mapped value for the given name.
func (m MapSource) Lookup(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}
