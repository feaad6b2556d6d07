package envcfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type skipDefaultConflict struct {
	F string `env:"-" default:"x"`
}

type skipParserConflict struct {
	F string `env:",skip" parser:"doubled"`
}

type skipNestedConflict struct {
	F dbConfig `env:",skip,nested"`
}

// orderConflict violates several rules at once; the skip conflict is
// reported because it is checked first.
type orderConflict struct {
	F dbConfig `env:"-,nested" default:"x"`
}

type nestedDefaultConflict struct {
	D dbConfig `env:",nested" default:"x"`
}

type nestedParserConflict struct {
	D dbConfig `env:",nested" parser:"doubled"`
}

type parserDefaultConflict struct {
	F int `parser:"doubled" default:"1"`
}

type unknownOptionConfig struct {
	F string `env:"NAME,verbose"`
}

type nestedNonStructConfig struct {
	F int `env:",nested"`
}

type unknownParserConfig struct {
	F int `parser:"nope"`
}

type wrongParserTypeConfig struct {
	F string `parser:"doubled"`
}

type unparsableTypeConfig struct {
	M map[string]string
}

type unexportedTaggedConfig struct {
	f string `env:"F"` //nolint:unused
}

type pointerDefaultConfig struct {
	P *int `default:"1"`
}

// brokenInnerConfig is invalid on its own; nesting it surfaces the inner
// definition error.
type brokenInnerConfig struct {
	F string `env:"-" default:"x"`
}

type nestedBrokenConfig struct {
	Inner brokenInnerConfig `env:",nested"`
}

func TestLoadFrom_definitionErrors(t *testing.T) {
	tests := map[string]struct {
		load    func() error
		wantErr string
	}{
		"skip_with_default": {
			load:    func() error { _, err := LoadFrom[skipDefaultConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.skipDefaultConflict.F: cannot combine 'skip' with other attributes",
		},
		"skip_with_parser": {
			load:    func() error { _, err := LoadFrom[skipParserConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.skipParserConflict.F: cannot combine 'skip' with other attributes",
		},
		"skip_with_nested": {
			load:    func() error { _, err := LoadFrom[skipNestedConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.skipNestedConflict.F: cannot combine 'skip' with other attributes",
		},
		"skip_conflict_reported_first": {
			load:    func() error { _, err := LoadFrom[orderConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.orderConflict.F: cannot combine 'skip' with other attributes",
		},
		"nested_with_default": {
			load:    func() error { _, err := LoadFrom[nestedDefaultConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.nestedDefaultConflict.D: cannot combine 'nested' with 'default' or 'parser'",
		},
		"nested_with_parser": {
			load:    func() error { _, err := LoadFrom[nestedParserConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.nestedParserConflict.D: cannot combine 'nested' with 'default' or 'parser'",
		},
		"parser_with_default": {
			load:    func() error { _, err := LoadFrom[parserDefaultConflict](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.parserDefaultConflict.F: cannot combine 'parser' with 'default'",
		},
		"unsupported_env_tag_option": {
			load:    func() error { _, err := LoadFrom[unknownOptionConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.unknownOptionConfig.F: unsupported option 'verbose' in env tag; supported options are 'skip' and 'nested'",
		},
		"nested_requires_struct": {
			load:    func() error { _, err := LoadFrom[nestedNonStructConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.nestedNonStructConfig.F: 'nested' requires a struct field type",
		},
		"unknown_parser": {
			load:    func() error { _, err := LoadFrom[unknownParserConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.unknownParserConfig.F: unknown parser 'nope'; register it with RegisterParserFunc before loading",
		},
		"parser_result_type_mismatch": {
			load:    func() error { _, err := LoadFrom[wrongParserTypeConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.wrongParserTypeConfig.F: parser 'doubled' produces int, field requires string",
		},
		"no_parser_for_type": {
			load:    func() error { _, err := LoadFrom[unparsableTypeConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.unparsableTypeConfig.M: no parser registered for type 'map[string]string'",
		},
		"unexported_field_with_tag": {
			load:    func() error { _, err := LoadFrom[unexportedTaggedConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.unexportedTaggedConfig.f: field is not settable; binding tags require an exported field",
		},
		"default_on_pointer_field": {
			load:    func() error { _, err := LoadFrom[pointerDefaultConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.pointerDefaultConfig.P: cannot use 'default' with a pointer field",
		},
		"broken_nested_type": {
			load:    func() error { _, err := LoadFrom[nestedBrokenConfig](MapSource{}); return err },
			wantErr: "invalid definition of envcfg.brokenInnerConfig.F: cannot combine 'skip' with other attributes",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.load()
			require.EqualError(t, err, tt.wantErr)
			var def *DefinitionError
			require.ErrorAs(t, err, &def)
		})
	}
}

func TestLoadFrom_definitionErrorPrecedesEnvironmentAccess(t *testing.T) {
	src := &probeSource{
		values: map[string]string{"F": "set"},
		looked: make(map[string]bool),
	}
	_, err := LoadFrom[skipDefaultConflict](src)
	var def *DefinitionError
	require.ErrorAs(t, err, &def)
	require.Empty(t, src.looked, "definition validation must not read the environment")
}

// untaggedUnexportedConfig mixes loadable and ignored fields.
type untaggedUnexportedConfig struct {
	Name string
	note string //nolint:unused
}

func (untaggedUnexportedConfig) EnvPrefix() string { return "" }

func TestLoadFrom_untaggedUnexportedFieldIsIgnored(t *testing.T) {
	cfg, err := LoadFrom[untaggedUnexportedConfig](MapSource{"NAME": "n", "NOTE": "ignored"})
	require.NoError(t, err)
	require.Equal(t, "n", cfg.Name)
	require.Empty(t, cfg.note)
}
