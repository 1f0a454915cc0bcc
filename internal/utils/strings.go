package utils

import "strings"

// NormalizeSpace trims and collapses repeated whitespace into a single
// space, for user-typed names and titles that end up in unique lookups.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
