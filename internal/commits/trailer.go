package commits

import "strings"

// Trailer keys and message markers understood by git-bp.
const (
	ChangeIDKey    = "Change-Id: "
	WasChangeIDKey = "Was-Change-Id: "
	FixesKey       = "Fixes: "
	CherryPickKey  = "cherry picked from commit "
)

// ChangeIDPattern is the message text that identifies the commit with id.
func ChangeIDPattern(id string) string {
	return ChangeIDKey + id
}

// FixesPattern is the message text a fix for hash carries.
func FixesPattern(hash string) string {
	return FixesKey + Short(hash)
}

// CherryPickPattern is the provenance line "git cherry-pick -x" leaves.
func CherryPickPattern(hash string) string {
	return CherryPickKey + hash
}

// ChangeID returns the first Change-Id trailer in body, or "".
func ChangeID(body string) string {
	ids := trailerValues(body, ChangeIDKey, 1)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// WasChangeIDs returns every Was-Change-Id trailer in body.
func WasChangeIDs(body string) []string {
	return trailerValues(body, WasChangeIDKey, -1)
}

// IsExplicitFix reports whether body carries a Fixes trailer naming
// original, at whatever abbreviation it was written.
func IsExplicitFix(body, original string) bool {
	for _, line := range strings.Split(body, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), FixesKey)
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) > 0 && Match(original, fields[0]) {
			return true
		}
	}
	return false
}

// trailerValues collects values of lines starting with key followed by a
// Gerrit-style "I" id. n < 0 means all.
func trailerValues(body, key string, n int) []string {
	var values []string
	for _, line := range strings.Split(body, "\n") {
		rest, ok := strings.CutPrefix(line, key)
		if !ok || !strings.HasPrefix(rest, "I") {
			continue
		}
		values = append(values, strings.TrimSpace(rest))
		if n > 0 && len(values) == n {
			break
		}
	}
	return values
}
