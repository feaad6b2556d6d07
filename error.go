package envcfg

import "fmt"

// MissingError reports a required environment variable that is not set.
type MissingError struct {
	// Name is the environment variable that was looked up.
	Name string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("missing environment variable '%s'", e.Name)
}

// ParseError reports an environment value that could not be converted to the
// field's type. Name is the variable that was read, or a synthesized name:
// "default for <VAR>" when the default literal itself failed to parse, and
// "nested <TypeName>" when a nested load failed for any reason.
type ParseError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse environment variable '%s': %s", e.Name, e.Reason)
}

// DefinitionError reports an invalid binding declaration: conflicting or
// unknown tag options, an unregistered parser, or a field that cannot be
// bound. It is detected from the struct type alone, before any environment
// access, and never occurs during a load of a valid definition.
type DefinitionError struct {
	// Type is the record type whose definition is invalid.
	Type string
	// Field is the offending field name, empty for type-level problems.
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid definition of %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid definition of %s.%s: %s", e.Type, e.Field, e.Reason)
}
