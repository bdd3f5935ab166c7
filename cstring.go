package glkit

import "strings"

// cString returns s terminated by a NUL byte, copying only when the
// terminator is missing.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
