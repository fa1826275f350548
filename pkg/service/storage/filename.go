package storage

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes accented characters and drops the
// combining marks, so "relatório.pdf" becomes "relatorio.pdf".
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFileName normalizes a user-supplied file name for storage:
// diacritics are stripped, any character outside [a-zA-Z0-9_.-] becomes
// a hyphen, and repeated hyphens collapse to one.
func SanitizeFileName(name string) string {
	stripped, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	b.Grow(len(stripped))
	lastHyphen := false

	for _, r := range stripped {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '.':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	sanitized := strings.Trim(b.String(), "-")
	if sanitized == "" || strings.Trim(sanitized, ".") == "" {
		return "file"
	}
	return sanitized
}
