package util

import "strings"

// Truthy reports whether s spells an enabled switch, as commonly
// written in environment variables.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on":
		return true
	default:
		return false
	}
}
