package sufex

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText applies the same pre-processing spec.md §5 asks of text
// before it becomes a suffix-array input: optional case folding and
// Unicode NFC normalization, the latter grounded on the teacher's own word
// normalization step.
func NormalizeText(s string, caseSensitive bool) []byte {
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return norm.NFC.Bytes([]byte(s))
}
