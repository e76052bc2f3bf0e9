package tokenizer

import "strings"

// Mask returns src with every non-code segment blanked out character by
// character with spaces. Newlines inside comments and strings are kept, so
// len(Mask(src)) == len(src) and line numbering is unchanged. The result is
// safe for structural regex matching: no keyword or punctuation inside a
// literal survives into the mask.
func Mask(src string) string {
	return MaskSegments(Tokenize(src))
}

// MaskSegments is Mask for an already-tokenized segment sequence.
func MaskSegments(segs []Segment) string {
	var b strings.Builder
	n := 0
	for _, s := range segs {
		n += len(s.Text)
	}
	b.Grow(n)

	for _, s := range segs {
		if s.Kind == Code {
			b.WriteString(s.Text)
			continue
		}
		for j := 0; j < len(s.Text); j++ {
			if s.Text[j] == '\n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}

	return b.String()
}
