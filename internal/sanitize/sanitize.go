// Package sanitize provides shared identifier sanitization for whiteboard
// path components.
//
// Project identifiers become directory names, so they must contain no path
// separators, no null bytes, and stay within a bounded length.
package sanitize

import "strings"

const (
	// MaxComponentLength bounds sanitized path components. Long or
	// symbol-heavy project names truncate rather than fail.
	MaxComponentLength = 64

	// DefaultComponent is used when sanitization produces an empty result.
	DefaultComponent = "default"
)

// Component sanitizes a string for use as a single path component.
//
// Rules applied:
//   - Keeps alphanumerics, '-', and '_'
//   - Replaces every other character with '_'
//   - Truncates to MaxComponentLength bytes
//   - Returns DefaultComponent if the input is empty
//
// Examples:
//
//	"github.com/user" -> "github_com_user"
//	"My Project!"     -> "My_Project_"
func Component(s string) string {
	if s == "" {
		return DefaultComponent
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	out := b.String()
	if len(out) > MaxComponentLength {
		out = out[:MaxComponentLength]
	}
	return out
}
