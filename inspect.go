package envcfg

import "reflect"

// Binding describes how one struct field is bound to the environment: the
// resolved variable name, the resolution mode, and the default literal if
// any. Useful for generating deployment documentation or verifying which
// variables an application reads.
type Binding struct {
	// Field is the struct field name.
	Field string
	// Var is the resolved environment variable; empty for skipped and
	// nested fields.
	Var string
	// Mode is one of required, optional, default, parser, nested, skipped.
	Mode string
	// Default is the default literal, set only for Mode == "default".
	Default string
	// Nested holds the sub-bindings of a nested field.
	Nested []Binding
}

// Bindings compiles T's binding plan and returns it in reportable form, one
// entry per participating field in declaration order. Definition errors are
// reported the same way Load reports them, without touching the environment.
func Bindings[T any]() ([]Binding, error) {
	plan, err := planFor(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return plan.bindings(), nil
}

// bindings converts a compiled plan into its report form.
func (p *structPlan) bindings() []Binding {
	out := make([]Binding, 0, len(p.fields))
	for i := range p.fields {
		fp := &p.fields[i]
		b := Binding{
			Field:   fp.name,
			Var:     fp.envName,
			Mode:    fp.strategy.String(),
			Default: fp.defaultLiteral,
		}
		if fp.strategy == strategyParser && fp.optional {
			b.Mode = "optional parser"
		}
		if fp.nested != nil {
			b.Nested = fp.nested.bindings()
		}
		out = append(out, b)
	}
	return out
}
