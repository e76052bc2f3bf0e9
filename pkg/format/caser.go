package format

import (
	"regexp"
	"strings"

	"github.com/apexkit/plsqlfmt/pkg/tokenizer"
)

var reWord = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_$#]*`)

// CaseKeywords rewrites every whole-word match of the keyword table to its
// canonical upper-case spelling, restricted to code segments. String and
// comment content passes through byte for byte, even when it happens to
// spell a keyword.
func (f *Formatter) CaseKeywords(text string) string {
	if !f.opts.UppercaseKeywords {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range tokenizer.Tokenize(text) {
		if seg.Kind != tokenizer.Code {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(reWord.ReplaceAllStringFunc(seg.Text, func(w string) string {
			if f.keywords.Contains(w) {
				return strings.ToUpper(w)
			}
			return w
		}))
	}
	return b.String()
}
