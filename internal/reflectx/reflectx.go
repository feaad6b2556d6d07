// Package reflectx provides reflection and naming utilities for struct field
// binding: readable type names and Go-identifier to UPPER_SNAKE conversion.
package reflectx

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// GetTypeName returns a human-readable type name for a reflect.Type.
// Format: "package.TypeName" or just "TypeName" for built-in types.
func GetTypeName(t reflect.Type) string {
	if t.PkgPath() == "" {
		if t.Name() == "" {
			return t.String()
		}
		return t.Name()
	}
	return t.String()
}

// TypeNameOf returns the type name of a value using fmt formatting.
func TypeNameOf(t any) string {
	return fmt.Sprintf("%T", t)
}

// UpperSnake converts a Go identifier to UPPER_SNAKE_CASE, keeping acronym
// runs intact: "DatabaseURL" -> "DATABASE_URL", "AppConfig" -> "APP_CONFIG",
// "Numbers123" -> "NUMBERS123". Existing underscores are preserved without
// doubling, so "database_url" -> "DATABASE_URL".
func UpperSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/3)
	for i, r := range runes {
		if i > 0 && isWordBoundary(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// isWordBoundary reports whether a new word starts at runes[i].
func isWordBoundary(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	if r == '_' || prev == '_' {
		return false
	}
	if !unicode.IsUpper(r) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// An acronym run ends where the next rune is lower: "URLValue" -> URL_VALUE.
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}
