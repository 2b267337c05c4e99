package schema

import (
	"strings"
	"unicode"
)

// bulletGlyphs are the non-ASCII list markers that survive normalization.
// Stripping them would blind the option collector to bulleted lists.
const bulletGlyphs = "•○●□■"

// NormalizeLine collapses whitespace runs to single spaces, trims leading and
// trailing whitespace, and strips characters outside the printable ASCII
// range, except for the bullet glyphs used as list markers. Normalization is
// idempotent.
func NormalizeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))

	pendingSpace := false
	for _, r := range line {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if (r < 0x20 || r > 0x7e) && !strings.ContainsRune(bulletGlyphs, r) {
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}
