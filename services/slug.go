package services

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns title into a lowercase ASCII slug for URLs and asset names.
// Letters are transliterated ("Straße" becomes "strasse"), "@" reads as "at",
// other punctuation is dropped without splitting words, and runs of
// whitespace, "-" and "_" collapse into one hyphen.
func Slugify(title string) string {
	ascii := unidecode.Unidecode(norm.NFC.String(title))
	ascii = strings.ReplaceAll(ascii, "_", "-")
	ascii = strings.ReplaceAll(ascii, "@", "-at-")

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}
