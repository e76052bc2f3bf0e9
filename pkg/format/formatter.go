package format

import (
	"io"
	"strings"

	"github.com/apexkit/plsqlfmt/pkg/tokenizer"
)

// Options controls formatting behavior.
//
// The zero value is not the standard configuration: a false
// UppercaseKeywords leaves keyword casing untouched. Callers wanting the
// standard behavior with overrides should start from Defaults and change
// individual fields.
type Options struct {
	// IndentWidth is the number of spaces per indent level.
	IndentWidth int `yaml:"indent_width"`
	// UppercaseKeywords rewrites reserved words to upper case in code
	// segments (literals and comments are never touched).
	UppercaseKeywords bool `yaml:"uppercase_keywords"`
}

// Defaults are the standard formatting options.
var Defaults = Options{
	IndentWidth:       2,
	UppercaseKeywords: true,
}

// Formatter reformats PL/SQL source: it splits compressed statements onto
// separate lines, re-indents them with a stack-based block tracker, aligns
// query clauses and call-argument continuations, and normalizes keyword
// case. One Format call carries no state over to the next, so a single
// Formatter is safe to share across concurrent calls.
type Formatter struct {
	opts     Options
	keywords KeywordTable
	split    *splitter
}

// New creates a Formatter with the given options and the default keyword
// table.
func New(opts Options) *Formatter {
	return NewWithKeywords(opts, DefaultKeywords)
}

// NewWithKeywords creates a Formatter with a caller-supplied keyword table,
// letting dialect variants coexist.
func NewWithKeywords(opts Options, keywords KeywordTable) *Formatter {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = Defaults.IndentWidth
	}
	return &Formatter{
		opts:     opts,
		keywords: keywords,
		split:    newSplitter(),
	}
}

// FormatString reformats src and returns the result, ending in exactly one
// trailing newline. Empty or whitespace-only input is returned unchanged.
// Malformed input never fails; the formatter degrades to best-effort
// structurally plausible output.
func (f *Formatter) FormatString(src string) string {
	if strings.TrimSpace(src) == "" {
		return src
	}

	split := f.split.split(src)
	lines, masked, cont := maskLines(split)

	lines = f.applyIndent(lines, masked, cont)
	lines = f.alignQueryClauses(lines, cont)
	lines = f.alignContinuations(lines, cont)

	text := strings.Join(trimTrailingBlank(lines), "\n")
	text = f.CaseKeywords(text)
	return strings.TrimRight(text, "\n") + "\n"
}

// Format reformats src and writes the result to w.
func (f *Formatter) Format(w io.Writer, src string) error {
	_, err := io.WriteString(w, f.FormatString(src))
	return err
}

// Format reformats src with the given options (convenience function).
func Format(w io.Writer, opts Options, src string) error {
	return New(opts).Format(w, src)
}

// maskLines splits src into lines paired with their masked counterparts.
// cont[i] marks a line whose start sits inside a string or comment that
// opened on an earlier line; such lines pass through the pipeline
// untouched.
func maskLines(src string) (lines, masked []string, cont []bool) {
	segs := tokenizer.Tokenize(src)
	m := tokenizer.MaskSegments(segs)

	lines = strings.Split(src, "\n")
	masked = strings.Split(m, "\n")
	cont = make([]bool, len(lines))

	// Mark line starts covered by a segment that began on a previous line.
	off := 0
	lineNo := 0
	for _, seg := range segs {
		interior := seg.Kind != tokenizer.Code
		for i := 0; i < len(seg.Text); i++ {
			if seg.Text[i] == '\n' {
				lineNo++
				if interior && off+i+1 < off+len(seg.Text) {
					cont[lineNo] = true
				}
			}
		}
		off += len(seg.Text)
	}

	return lines, masked, cont
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
