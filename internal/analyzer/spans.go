package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// Span is one non-equal region of the token alignment.
type Span struct {
	Original  string
	Corrected string
}

// ErrorSpans splits both texts on whitespace, aligns the token sequences and
// returns every replaced, deleted or inserted region in order.
func ErrorSpans(original, corrected string) []Span {
	a := splitWords(original)
	b := splitWords(corrected)
	m := difflib.NewMatcher(a, b)
	var out []Span
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		o := strings.Join(a[op.I1:op.I2], " ")
		c := strings.Join(b[op.J1:op.J2], " ")
		if strings.TrimSpace(o) == "" && strings.TrimSpace(c) == "" {
			continue
		}
		out = append(out, Span{Original: o, Corrected: c})
	}
	return out
}

// isSeparator matches the whitespace set used for word splitting: Unicode
// white space plus the ASCII file, group, record and unit separators.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func splitWords(s string) []string { return strings.FieldsFunc(s, isSeparator) }

// ClassificationInput formats a span pair the way the classifier expects it.
func ClassificationInput(originalSpan, correctedSpan string) string {
	return fmt.Sprintf("Original: %s | Corrected: %s", originalSpan, correctedSpan)
}
