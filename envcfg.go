// Package envcfg loads configuration structs from environment variables.
//
// Each exported field of a record type is bound to a variable whose name is
// derived from the type and field names in UPPER_SNAKE_CASE, so a field
// `URL` on a type `AppConfig` reads APP_CONFIG_URL. Struct tags refine the
// binding per field:
//
//	type AppConfig struct {
//		URL      string                        // APP_CONFIG_URL (required)
//		Port     uint16 `default:"8080"`       // APP_CONFIG_PORT (default on absence)
//		Timeout  *uint64                       // APP_CONFIG_TIMEOUT (optional, nil when unset)
//		Debug    bool   `env:"DEBUG_MODE"`     // DEBUG_MODE (explicit name)
//		Internal string `env:"-"`              // skipped, keeps its zero value
//		Position Point  `parser:"point"`       // APP_CONFIG_POSITION via a registered parser
//		Database DBConfig `env:",nested"`      // loaded through DBConfig's own bindings
//	}
//
//	cfg, err := envcfg.Load[AppConfig]()
//
// The record-level prefix is controlled by implementing Prefixer; loading
// against something other than the process environment is done with
// LoadFrom and a custom Source. Binding plans are compiled once per type,
// validated before any environment access, and cached.
package envcfg

import (
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	// planCache holds compiled plans keyed by record type.
	planCache sync.Map // reflect.Type -> *structPlan
	// planGroup dedupes concurrent first-time compilation per type.
	planGroup singleflight.Group
)

// planFor returns the cached binding plan for t, compiling it on first use.
// Definition errors are not cached; compilation is pure and deterministic,
// so a failing type reports the same error on every call.
func planFor(t reflect.Type) (*structPlan, error) {
	if cached, ok := planCache.Load(t); ok {
		return cached.(*structPlan), nil
	}
	planGroup.Do(t.String(), func() (any, error) { //nolint:errcheck
		plan, err := compilePlan(t)
		if err != nil {
			return nil, err
		}
		planCache.Store(t, plan)
		return plan, nil
	})
	// Reload by exact type: the singleflight key is the printed type name,
	// which distinct types can share.
	if cached, ok := planCache.Load(t); ok {
		return cached.(*structPlan), nil
	}
	plan, err := compilePlan(t)
	if err != nil {
		return nil, err
	}
	planCache.Store(t, plan)
	return plan, nil
}

// Load resolves T's binding plan and populates a new T from the process
// environment. T must be a struct type. On error the zero T is returned;
// fields are evaluated in declaration order and the first failure aborts
// the load.
func Load[T any]() (T, error) {
	return LoadFrom[T](EnvSource{})
}

// LoadFrom is like Load but reads variables from the provided source
// instead of the process environment.
func LoadFrom[T any](src Source) (T, error) {
	var zero T
	plan, err := planFor(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	v, err := plan.load(src)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// MustLoad is like Load but panics on error. Intended for program
// initialization where a bad environment should abort startup.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(err)
	}
	return cfg
}
