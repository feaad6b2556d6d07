package envcfg

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/orph3usLyre/env-config/internal/reflectx"
)

const (
	// envTag holds the explicit variable name and the skip/nested options.
	envTag = "env"
	// defaultTag holds the default literal, parsed only when the variable is absent.
	defaultTag = "default"
	// parserTag names a custom parser registered with RegisterParserFunc.
	parserTag = "parser"
)

// strategy is the per-field resolution mode selected at plan compilation.
type strategy int

const (
	strategyRequired strategy = iota
	strategyOptional
	strategyDefault
	strategyParser
	strategyNested
	strategySkipped
)

// String returns the strategy's name as used in binding reports.
func (s strategy) String() string {
	switch s {
	case strategyRequired:
		return "required"
	case strategyOptional:
		return "optional"
	case strategyDefault:
		return "default"
	case strategyParser:
		return "parser"
	case strategyNested:
		return "nested"
	case strategySkipped:
		return "skipped"
	}
	return "unknown"
}

// fieldPlan is the compiled binding for one struct field: the variable to
// read and how to turn its value into the field's type.
type fieldPlan struct {
	index    int
	name     string
	envName  string
	strategy strategy

	// defaultLiteral is the source text of the `default` tag, parsed lazily
	// at load time so a bad default only surfaces when it is actually used.
	defaultLiteral string

	// optional marks a pointer field: absence is success-with-nil.
	optional bool
	// elem is the parse target: the field type, or its pointee when optional.
	elem reflect.Type

	// convert is the type-registry parser for elem (unset for skip/nested/parser).
	convert func(value string) (any, error)
	// parserFn is the named custom parser (strategyParser only).
	parserFn func(value string) any

	// nested is the sub-plan for strategyNested fields.
	nested     *structPlan
	nestedName string
}

// structPlan is the ordered, compiled binding plan for one record type.
type structPlan struct {
	typ    reflect.Type
	fields []fieldPlan
}

// Prefixer lets a record type override how variable names are derived for
// its fields. Without it the type name is used: a field `URL` on a type
// `AppConfig` resolves to APP_CONFIG_URL. Returning "APP" resolves the same
// field to APP_URL; returning "" disables prefixing, resolving it to URL.
// Field-level `env` tags bypass the prefix entirely.
type Prefixer interface {
	EnvPrefix() string
}

var prefixerType = reflect.TypeFor[Prefixer]()

// compilePlan translates a record type into an ordered list of field binding
// plans, rejecting inconsistent declarations. It is pure and deterministic:
// no environment access happens here.
func compilePlan(t reflect.Type) (*structPlan, error) {
	if t.Kind() != reflect.Struct {
		return nil, &DefinitionError{
			Type:   reflectx.GetTypeName(t),
			Reason: "target must be a struct type",
		}
	}
	prefix := prefixFor(t)
	plan := &structPlan{
		typ:    t,
		fields: make([]fieldPlan, 0, t.NumField()),
	}
	for i := range t.NumField() {
		fp, err := compileField(t, t.Field(i), i, prefix)
		if err != nil {
			return nil, err
		}
		if fp != nil {
			plan.fields = append(plan.fields, *fp)
		}
	}
	return plan, nil
}

// prefixFor resolves the record-level prefix policy to a name prefix,
// including the joining underscore. Returns "" when prefixing is disabled.
func prefixFor(t reflect.Type) string {
	var p Prefixer
	switch {
	case t.Implements(prefixerType):
		p = reflect.New(t).Elem().Interface().(Prefixer)
	case reflect.PointerTo(t).Implements(prefixerType):
		p = reflect.New(t).Interface().(Prefixer)
	default:
		// Anonymous struct types have no name to derive a prefix from.
		if t.Name() == "" {
			return ""
		}
		return reflectx.UpperSnake(t.Name()) + "_"
	}
	prefix := p.EnvPrefix()
	if prefix == "" {
		return ""
	}
	return strings.ToUpper(prefix) + "_"
}

// envTagOptions are the flags recognized after the comma in an `env` tag.
type envTagOptions struct {
	skip   bool
	nested bool
}

// parseEnvTag splits an `env` tag into its explicit name and options.
// `env:"-"` is shorthand for the skip option.
func parseEnvTag(owner reflect.Type, f reflect.StructField, tag string) (string, envTagOptions, error) {
	var opts envTagOptions
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "-" {
		opts.skip = true
		name = ""
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "skip":
			opts.skip = true
		case "nested":
			opts.nested = true
		default:
			return "", opts, &DefinitionError{
				Type:   reflectx.GetTypeName(owner),
				Field:  f.Name,
				Reason: fmt.Sprintf("unsupported option '%s' in env tag; supported options are 'skip' and 'nested'", opt),
			}
		}
	}
	return name, opts, nil
}

// compileField resolves one field's declaration into a binding plan.
// Returns (nil, nil) for fields that do not participate in loading.
func compileField(owner reflect.Type, f reflect.StructField, index int, prefix string) (*fieldPlan, error) {
	defErr := func(reason string) error {
		return &DefinitionError{Type: reflectx.GetTypeName(owner), Field: f.Name, Reason: reason}
	}

	tag, hasEnvTag := f.Tag.Lookup(envTag)
	var explicitName string
	var opts envTagOptions
	if hasEnvTag {
		var err error
		explicitName, opts, err = parseEnvTag(owner, f, tag)
		if err != nil {
			return nil, err
		}
	}
	defaultLiteral, hasDefault := f.Tag.Lookup(defaultTag)
	parserName, hasParser := f.Tag.Lookup(parserTag)

	if !f.IsExported() {
		if hasEnvTag || hasDefault || hasParser {
			return nil, defErr("field is not settable; binding tags require an exported field")
		}
		return nil, nil
	}

	// Combination checks run in a fixed order so conflicting declarations
	// always report the same error: skip first, then nested, then parser.
	if opts.skip && (hasDefault || hasParser || opts.nested) {
		return nil, defErr("cannot combine 'skip' with other attributes")
	}
	if opts.nested && (hasDefault || hasParser) {
		return nil, defErr("cannot combine 'nested' with 'default' or 'parser'")
	}
	if hasParser && hasDefault {
		return nil, defErr("cannot combine 'parser' with 'default'")
	}

	fp := &fieldPlan{
		index: index,
		name:  f.Name,
	}
	fp.optional = f.Type.Kind() == reflect.Pointer
	fp.elem = f.Type
	if fp.optional {
		fp.elem = f.Type.Elem()
	}
	if explicitName != "" {
		fp.envName = explicitName
	} else {
		fp.envName = prefix + reflectx.UpperSnake(f.Name)
	}

	switch {
	case opts.skip:
		fp.strategy = strategySkipped
		fp.envName = ""

	case opts.nested:
		if f.Type.Kind() != reflect.Struct {
			return nil, defErr("'nested' requires a struct field type")
		}
		nested, err := compilePlan(f.Type)
		if err != nil {
			return nil, err
		}
		fp.strategy = strategyNested
		fp.nested = nested
		fp.nestedName = f.Type.Name()
		fp.envName = ""

	case hasParser:
		np, ok := lookupParserFunc(parserName)
		if !ok {
			return nil, defErr(fmt.Sprintf("unknown parser '%s'; register it with RegisterParserFunc before loading", parserName))
		}
		if np.result != fp.elem {
			return nil, defErr(fmt.Sprintf("parser '%s' produces %s, field requires %s",
				parserName, reflectx.GetTypeName(np.result), reflectx.GetTypeName(fp.elem)))
		}
		fp.strategy = strategyParser
		fp.parserFn = np.fn

	case hasDefault:
		if fp.optional {
			return nil, defErr("cannot use 'default' with a pointer field")
		}
		convert, ok := lookupParser(fp.elem)
		if !ok {
			return nil, defErr(fmt.Sprintf("no parser registered for type '%s'", reflectx.GetTypeName(fp.elem)))
		}
		fp.strategy = strategyDefault
		fp.defaultLiteral = defaultLiteral
		fp.convert = convert

	default:
		convert, ok := lookupParser(fp.elem)
		if !ok {
			return nil, defErr(fmt.Sprintf("no parser registered for type '%s'", reflectx.GetTypeName(fp.elem)))
		}
		fp.strategy = strategyRequired
		if fp.optional {
			fp.strategy = strategyOptional
		}
		fp.convert = convert
	}

	return fp, nil
}
