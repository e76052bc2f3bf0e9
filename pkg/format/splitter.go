package format

import (
	"regexp"
	"strings"

	"github.com/apexkit/plsqlfmt/pkg/tokenizer"
)

// Placeholder bytes used to protect string/comment segments while the
// rewrite rules run. They carry no word characters, so no structural regex
// can fire inside protected content.
const (
	phOpen  = '\x02'
	phFill  = '\x03'
	phClose = '\x04'
)

var (
	reRejoinEnd = regexp.MustCompile(`(?i)\b(END)[ \t]*\n[ \t]*(LOOP|IF|CASE)\b`)

	reAfterBlockOpen = regexp.MustCompile(`(?i)\b(BEGIN|DECLARE)\b[ \t]+[^ \t\n]`)
	reAfterIsAs      = regexp.MustCompile(`(?i)\b(IS|AS)\b[ \t]+[A-Za-z_][\w$#]*[ \t]+(?:` +
		strings.Join(dataTypes, "|") + `)\b`)

	reCloserAfterSemi = regexp.MustCompile(`(?i)(;)[ \t]+((?:END|EXCEPTION)\b)`)

	reAfterThen = regexp.MustCompile(`(?i)\b(THEN)\b[ \t]+[^ \t\n]`)

	reAfterLoop    = regexp.MustCompile(`(?i)\b(LOOP)\b[ \t]+[^ \t\n]`)
	reEndLoopAhead = regexp.MustCompile(`(?i)^END[ \t]+LOOP\b`)
	reEndBehind    = regexp.MustCompile(`(?i)\bEND[ \t]*$`)

	reBeforeBranch = regexp.MustCompile(
		`(?i)(;|\x04|\b(?:END|BEGIN|THEN|ELSE|EXCEPTION)\b)[ \t]+((?:ELSE|ELSIF|EXCEPTION|WHEN)\b)`)

	reBeforeCaseLabel = regexp.MustCompile(`(?i)\b(CASE\b(?:[ \t]+[^ \t\n]+)?)[ \t]+(WHEN)\b`)

	reBeforeClause = regexp.MustCompile(`(?i)([^ \t\n])[ \t]+` +
		`((?:SELECT|FROM|WHERE|INTO|SET|VALUES|GROUP[ \t]+BY|ORDER[ \t]+BY|HAVING)\b)`)
	reBeforeConj = regexp.MustCompile(`(?i)([^ \t\n])[ \t]+((?:AND|OR)\b)[ \t]+[\w$#.]+[ \t]*` +
		`(?:[=<>!]|(?:LIKE|IN|IS|BETWEEN|NOT)\b)`)

	reWordBehind = regexp.MustCompile(`(?i)([A-Za-z_][\w$#]*)$`)
	reFirstWord  = regexp.MustCompile(`(?i)^[A-Za-z_][\w$#]*`)
)

// rewriteRule is one idempotent text rewrite. Rules run in a fixed order;
// re-running the whole sequence on already-split input is a no-op.
type rewriteRule struct {
	name  string
	apply func(string) string
}

// splitter restructures compressed statements into one statement per line.
// String and comment segments are swapped for inert placeholders before any
// rule runs and restored verbatim afterwards, so no rule can corrupt literal
// content or trip over keywords inside a comment.
type splitter struct {
	rules []rewriteRule
}

func newSplitter() *splitter {
	return &splitter{rules: []rewriteRule{
		{"rejoin split end qualifier", rejoinEndQualifier},
		{"break after statement terminator", splitAfterTerminators},
		{"break after block opener", splitAfterBlockOpen},
		{"own line for inline closers", splitInlineClosers},
		{"break after branch body opener", splitAfterThen},
		{"break after loop opener", splitAfterLoop},
		{"break before branch keywords", splitBeforeBranch},
		{"break before case labels", splitBeforeCaseLabel},
		{"break before query clauses", splitBeforeClauses},
	}}
}

func (sp *splitter) split(src string) string {
	s, lits := protect(src)
	for _, r := range sp.rules {
		s = r.apply(s)
	}
	return restore(s, lits)
}

// protect replaces every non-code segment with a unique placeholder token
// and returns the protected text plus the original segment texts in order.
func protect(src string) (string, []string) {
	var b strings.Builder
	var lits []string
	for _, seg := range tokenizer.Tokenize(src) {
		if seg.Kind == tokenizer.Code {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(placeholder(len(lits)))
		lits = append(lits, seg.Text)
	}
	return b.String(), lits
}

func placeholder(i int) string {
	return string(phOpen) + strings.Repeat(string(phFill), i+1) + string(phClose)
}

// restore swaps placeholders back for the original segment texts. Plain
// string replacement, not regexp substitution: literal content must come
// back byte for byte even when it contains characters a pattern engine
// would reinterpret.
func restore(s string, lits []string) string {
	for i, lit := range lits {
		s = strings.Replace(s, placeholder(i), lit, 1)
	}
	return s
}

func rejoinEndQualifier(s string) string {
	return reRejoinEnd.ReplaceAllString(s, "$1 $2")
}

// splitAfterTerminators inserts a break after each top-level ";" that is
// still followed by code on the same line. Parenthesis depth is tracked on
// the protected text (literal parens are already masked out), and the
// "followed by code" test looks for a word character, skipping horizontal
// whitespace and placeholder bytes, per the code-mask view.
func splitAfterTerminators(s string) string {
	for {
		var b strings.Builder
		b.Grow(len(s) + 16)
		changed := false
		depth := 0
		n := len(s)

		for i := 0; i < n; i++ {
			c := s[i]
			b.WriteByte(c)
			switch c {
			case '(':
				depth++
			case ')':
				if depth > 0 {
					depth--
				}
			case ';':
				if depth != 0 {
					break
				}
				j := i + 1
				for j < n && isSkippable(s[j]) {
					j++
				}
				if j < n && isWordByte(s[j]) {
					b.WriteByte('\n')
					changed = true
				}
			}
		}

		s = b.String()
		if !changed {
			return s
		}
	}
}

func splitAfterBlockOpen(s string) string {
	s = breakAfter(s, reAfterBlockOpen, 1)
	return breakAfter(s, reAfterIsAs, 1)
}

func splitInlineClosers(s string) string {
	return breakBefore(s, reCloserAfterSemi, 2, nil)
}

func splitAfterThen(s string) string {
	return breakAfter(s, reAfterThen, 1)
}

// splitAfterLoop breaks after a loop-opening LOOP keyword, unless the LOOP
// is itself part of END LOOP or what follows is the loop's own closer.
func splitAfterLoop(s string) string {
	return breakAfterFunc(s, reAfterLoop, 1, func(s string, m []int) bool {
		if reEndBehind.MatchString(s[:m[2]]) {
			return true
		}
		// Last byte of the full match is the first char of what follows.
		return reEndLoopAhead.MatchString(s[m[1]-1:])
	})
}

func splitBeforeBranch(s string) string {
	return breakBefore(s, reBeforeBranch, 2, nil)
}

func splitBeforeCaseLabel(s string) string {
	return breakBefore(s, reBeforeCaseLabel, 2, nil)
}

func splitBeforeClauses(s string) string {
	s = breakBefore(s, reBeforeClause, 2, func(s string, m []int) bool {
		kw := strings.ToUpper(reFirstWord.FindString(s[m[4]:]))
		switch kw {
		case "SELECT":
			// Keep "(SELECT" together; the alignment pass keys off it.
			return s[m[2]] == '('
		case "INTO":
			return strings.EqualFold(wordBehind(s, m[3]), "INSERT")
		case "FROM":
			return strings.EqualFold(wordBehind(s, m[3]), "DELETE")
		}
		return false
	})
	return breakBefore(s, reBeforeConj, 2, nil)
}

// wordBehind returns the word ending at offset end, or "".
func wordBehind(s string, end int) string {
	return reWordBehind.FindString(s[:end])
}

// breakAfter inserts a newline after capture group g of every match,
// consuming the horizontal whitespace that followed it.
func breakAfter(s string, re *regexp.Regexp, g int) string {
	return breakAfterFunc(s, re, g, nil)
}

func breakAfterFunc(s string, re *regexp.Regexp, g int, skip func(string, []int) bool) string {
	ms := re.FindAllStringSubmatchIndex(s, -1)
	if len(ms) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(ms))
	last := 0
	for _, m := range ms {
		if skip != nil && skip(s, m) {
			continue
		}
		ge := m[2*g+1]
		b.WriteString(s[last:ge])
		b.WriteByte('\n')
		j := ge
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		last = j
	}
	b.WriteString(s[last:])
	return b.String()
}

// breakBefore replaces the horizontal whitespace preceding capture group g
// with a newline for every match.
func breakBefore(s string, re *regexp.Regexp, g int, skip func(string, []int) bool) string {
	ms := re.FindAllStringSubmatchIndex(s, -1)
	if len(ms) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(ms))
	last := 0
	for _, m := range ms {
		if skip != nil && skip(s, m) {
			continue
		}
		gs := m[2*g]
		ws := gs
		for ws > last && (s[ws-1] == ' ' || s[ws-1] == '\t') {
			ws--
		}
		if ws == gs {
			continue
		}
		b.WriteString(s[last:ws])
		b.WriteByte('\n')
		last = gs
	}
	b.WriteString(s[last:])
	return b.String()
}

func isSkippable(c byte) bool {
	return c == ' ' || c == '\t' || c == phOpen || c == phFill || c == phClose
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
