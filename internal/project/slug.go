package project

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFold strips combining marks after NFKD decomposition, so accented
// project names produce plain-ASCII directory slugs.
var slugFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug folds a project name or version label into a safe directory name:
// lowercase, diacritics removed, runs of non-alphanumerics collapsed to '-'.
// Dots are preserved so version labels stay readable (e.g. "1.2.3").
func Slug(s string) string {
	folded, _, err := transform.String(slugFold, s)
	if err != nil {
		folded = s
	}
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
