package slugutil

import "strings"

// Slugify converts free-form label text into a tracker-safe slug: lowercase,
// "&" becomes "and", every other run of non-alphanumerics collapses to a
// single hyphen, and leading/trailing hyphens are trimmed. The function is
// idempotent: slugifying a slug returns it unchanged.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
