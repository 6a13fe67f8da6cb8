package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugAttempts bounds how many suffixed candidates a create will try
// before giving up with ErrSlugUnavailable.
const MaxSlugAttempts = 10

// Slugify lowercases name, folds accented letters to ASCII, transliterates
// other scripts and joins the remaining alphanumeric runs with single
// hyphens. "Café Crème!" becomes "cafe-creme", "Красные туфли" becomes
// "krasnye-tufli".
func Slugify(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = unidecode.Unidecode(folded)

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SlugCandidate returns the n-th candidate for base: base itself for n == 0,
// then base-1, base-2, ...
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// ValidateSlug rejects explicit slugs containing whitespace.
func ValidateSlug(op, slug string) error {
	if strings.ContainsFunc(slug, unicode.IsSpace) {
		return WithOp(ErrSlugSpace, op)
	}
	return nil
}
