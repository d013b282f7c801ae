package commits

import "strings"

// ShortHashLen is the abbreviation length used when searching messages.
const ShortHashLen = 7

// Match reports whether a and b name the same commit, allowing either to
// be an abbreviation of the other. Empty hashes match nothing.
func Match(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// Short abbreviates hash to ShortHashLen characters.
func Short(hash string) string {
	if len(hash) <= ShortHashLen {
		return hash
	}
	return hash[:ShortHashLen]
}
