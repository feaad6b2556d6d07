package envcfg

import (
	"reflect"
	"unicode/utf8"
)

// load executes the compiled plan against src, producing a fully populated
// record value. Fields are loaded strictly in declaration order and the
// first failure aborts the whole load; no partial record is returned.
func (p *structPlan) load(src Source) (reflect.Value, error) {
	v := reflect.New(p.typ).Elem()
	for i := range p.fields {
		fp := &p.fields[i]
		if err := fp.load(v.Field(fp.index), src); err != nil {
			return reflect.Value{}, err
		}
	}
	return v, nil
}

// load reads and converts one field's value according to its strategy.
func (fp *fieldPlan) load(field reflect.Value, src Source) error {
	switch fp.strategy {
	case strategySkipped:
		// No environment access; the field keeps its zero value.
		return nil

	case strategyNested:
		nested, err := fp.nested.load(src)
		if err != nil {
			// A nested failure always surfaces as a parse error at the
			// nesting boundary, even when the inner cause was a missing
			// variable. The inner kind is discarded and only its rendered
			// message is kept.
			return &ParseError{Name: "nested " + fp.nestedName, Reason: err.Error()}
		}
		field.Set(nested)
		return nil

	case strategyParser:
		raw, ok := src.Lookup(fp.envName)
		if !ok {
			if fp.optional {
				return nil
			}
			return &MissingError{Name: fp.envName}
		}
		// The custom parser's result is accepted unconditionally; if it
		// panics, the panic propagates to the caller uncaught.
		fp.set(field, fp.parserFn(raw))
		return nil

	case strategyDefault:
		raw, ok := src.Lookup(fp.envName)
		if !ok {
			value, err := fp.convert(fp.defaultLiteral)
			if err != nil {
				return &ParseError{Name: "default for " + fp.envName, Reason: err.Error()}
			}
			fp.set(field, value)
			return nil
		}
		return fp.convertAndSet(field, raw)

	case strategyRequired, strategyOptional:
		raw, ok := src.Lookup(fp.envName)
		if !ok {
			if fp.strategy == strategyOptional {
				return nil
			}
			return &MissingError{Name: fp.envName}
		}
		return fp.convertAndSet(field, raw)
	}
	return nil
}

// convertAndSet parses a raw environment value through the type registry and
// stores it, folding invalid unicode into a parse error.
func (fp *fieldPlan) convertAndSet(field reflect.Value, raw string) error {
	if !utf8.ValidString(raw) {
		return &ParseError{Name: fp.envName, Reason: "invalid unicode"}
	}
	value, err := fp.convert(raw)
	if err != nil {
		return &ParseError{Name: fp.envName, Reason: err.Error()}
	}
	fp.set(field, value)
	return nil
}

// set stores value into field, boxing it into a fresh pointer for optional
// fields. Settability and type agreement are guaranteed at plan compilation.
func (fp *fieldPlan) set(field reflect.Value, value any) {
	rv := reflect.ValueOf(value)
	if fp.optional {
		ptr := reflect.New(fp.elem)
		ptr.Elem().Set(rv)
		field.Set(ptr)
		return
	}
	field.Set(rv)
}
