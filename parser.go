package envcfg

import (
	"reflect"
	"strconv"
	"sync"
	"time"
)

// ParseFunc is a function that parses a string value into type T.
// Used to convert environment variable strings into typed values.
type ParseFunc[T any] func(value string) (T, error)

var (
	parserMu sync.RWMutex
	// parserRegistry maps field types to their parsing functions.
	parserRegistry map[reflect.Type]func(value string) (any, error)
)

// RegisterParser registers a parser for type T, replacing any previous one.
// Built-in parsers exist for string, bool, every int/uint width, float32,
// float64, and time.Duration. Fields of any other type must either register
// a parser here or use a named parser via the `parser` tag.
func RegisterParser[T any](parser ParseFunc[T]) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[reflect.TypeFor[T]()] = func(value string) (any, error) {
		return parser(value)
	}
}

// lookupParser returns the registered parser for t.
func lookupParser(t reflect.Type) (func(value string) (any, error), bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	parser, ok := parserRegistry[t]
	return parser, ok
}

// namedParser is a custom parser registered under a name for `parser` tags.
// The function reports failure by panicking; panics are not caught during a
// load and propagate to the caller.
type namedParser struct {
	fn     func(value string) any
	result reflect.Type
}

var (
	namedMu      sync.RWMutex
	namedParsers = make(map[string]namedParser)
)

// RegisterParserFunc registers fn under name for use in `parser:"name"`
// tags. The result type of fn must match the tagged field's type (or its
// pointee for optional fields); this is checked when the binding plan is
// compiled. Unlike ParseFunc, fn returns no error: it either produces a
// value or panics, and such panics propagate uncaught through a load.
func RegisterParserFunc[T any](name string, fn func(value string) T) {
	namedMu.Lock()
	defer namedMu.Unlock()
	namedParsers[name] = namedParser{
		fn:     func(value string) any { return fn(value) },
		result: reflect.TypeFor[T](),
	}
}

// lookupParserFunc returns the custom parser registered under name.
func lookupParserFunc(name string) (namedParser, bool) {
	namedMu.RLock()
	defer namedMu.RUnlock()
	np, ok := namedParsers[name]
	return np, ok
}

func init() {
	parserRegistry = map[reflect.Type]func(value string) (any, error){
		reflect.TypeFor[string](): func(value string) (any, error) { return value, nil },
		reflect.TypeFor[bool]():   func(value string) (any, error) { return strconv.ParseBool(value) },
		reflect.TypeFor[int]():    func(value string) (any, error) { return strconv.Atoi(value) },
		reflect.TypeFor[int8]():   func(value string) (any, error) { i, err := strconv.ParseInt(value, 10, 8); return int8(i), err },
		reflect.TypeFor[int16]():  func(value string) (any, error) { i, err := strconv.ParseInt(value, 10, 16); return int16(i), err },
		reflect.TypeFor[int32]():  func(value string) (any, error) { i, err := strconv.ParseInt(value, 10, 32); return int32(i), err },
		reflect.TypeFor[int64]():  func(value string) (any, error) { return strconv.ParseInt(value, 10, 64) },
		reflect.TypeFor[uint]():   func(value string) (any, error) { u, err := strconv.ParseUint(value, 10, 0); return uint(u), err },
		reflect.TypeFor[uint8]():  func(value string) (any, error) { u, err := strconv.ParseUint(value, 10, 8); return uint8(u), err },
		reflect.TypeFor[uint16](): func(value string) (any, error) { u, err := strconv.ParseUint(value, 10, 16); return uint16(u), err },
		reflect.TypeFor[uint32](): func(value string) (any, error) { u, err := strconv.ParseUint(value, 10, 32); return uint32(u), err },
		reflect.TypeFor[uint64](): func(value string) (any, error) { return strconv.ParseUint(value, 10, 64) },
		reflect.TypeFor[float32](): func(value string) (any, error) {
			f, err := strconv.ParseFloat(value, 32)
			return float32(f), err
		},
		reflect.TypeFor[float64]():       func(value string) (any, error) { return strconv.ParseFloat(value, 64) },
		reflect.TypeFor[time.Duration](): func(value string) (any, error) { return time.ParseDuration(value) },
	}
}
