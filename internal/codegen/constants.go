// Package codegen emits Go source that declares optimized patterns as
// compiled regexp variables.
package codegen

import "strconv"

// Defaults for generated files.
const (
	DefaultName    = "Pattern"
	DefaultPackage = "patterns"
)

// Import paths referenced by generated code.
const (
	regexpPath  = "regexp"
	testingPath = "testing"
)

// EntryName returns the variable name for the i-th pattern of a file:
// Base, Base2, Base3 and so on.
func EntryName(base string, i int) string {
	base = UpperFirst(base)
	if i == 0 {
		return base
	}
	return base + strconv.Itoa(i+1)
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
