package format

import (
	"regexp"
	"strings"

	"github.com/apexkit/plsqlfmt/pkg/tokenizer"
)

// clauseWidth is the column budget for a padded clause keyword, sized so
// everything after "SELECT " lines up ("FROM   dual", "WHERE  x = 1").
const clauseWidth = 7

// conjWidth is the narrower budget for AND/OR in an aligned condition list.
const conjWidth = 4

var (
	reClauseLine = regexp.MustCompile(`(?i)^([ \t]*)(SELECT|FROM|WHERE|INTO|SET|VALUES|GROUP[ \t]+BY|ORDER[ \t]+BY|HAVING)\b[ \t]*(.*)$`)
	reConjLine   = regexp.MustCompile(`(?i)^([ \t]*)(AND|OR)\b[ \t]*(.*)$`)
	reQueryStart = regexp.MustCompile(`(?i)^[ \t]*(SELECT|INSERT|UPDATE|DELETE|MERGE)\b`)
	reNestedOpen = regexp.MustCompile(`(?i)\([ \t]*SELECT\b`)
	reLoopClose  = regexp.MustCompile(`(?i)\)[ \t]*LOOP[ \t]*$`)

	reStructural = regexp.MustCompile(`(?i)^(?:BEGIN|DECLARE|END|IF|ELSIF|ELSE|THEN|CASE|WHEN|EXCEPTION|FOR|WHILE|LOOP|EXIT|RETURN|SELECT|FROM|WHERE|GROUP|ORDER|HAVING|INTO|SET|VALUES|AND|OR|UNION|INSERT|UPDATE|DELETE|MERGE)\b`)
	reCloserLine = regexp.MustCompile(`^[ \t]*[);][ \t;)]*$`)
)

// alignBlock tracks column positions for one open query while its clause
// keywords are being aligned.
type alignBlock struct {
	selectCol int
	condCol   int
	nested    bool
}

// alignQueryClauses column-aligns the clause keywords of queries in the
// already-indented line list. Nested queries (a SELECT directly inside an
// unmatched paren) are re-anchored to the column of their SELECT keyword;
// top-level queries keep their structural indent and only get keyword
// padding. A block closes on a statement terminator or on the ") LOOP" of
// an enclosing cursor loop.
func (f *Formatter) alignQueryClauses(lines []string, cont []bool) []string {
	var stack []*alignBlock
	out := make([]string, len(lines))

	for i, line := range lines {
		if cont[i] || strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}

		masked := tokenizer.Mask(line)

		if len(stack) > 0 {
			blk := stack[len(stack)-1]
			if m := reClauseLine.FindStringSubmatch(masked); m != nil {
				line = f.alignClause(blk, line, m)
				masked = tokenizer.Mask(line)
			} else if m := reConjLine.FindStringSubmatch(masked); m != nil {
				line = f.alignConjunction(blk, line, m)
				masked = tokenizer.Mask(line)
			}
		}

		if col := nestedQueryCol(masked); col >= 0 {
			stack = append(stack, &alignBlock{selectCol: col, nested: true})
			line = padKeywordAt(line, col)
		} else if len(stack) == 0 {
			if m := reQueryStart.FindStringSubmatch(masked); m != nil {
				blk := &alignBlock{selectCol: len(indentOf(line))}
				stack = append(stack, blk)
				line = padKeywordAt(line, blk.selectCol)
			}
		}

		out[i] = line

		if closesBlock(tokenizer.Mask(line)) && len(stack) > 0 {
			stack = stack[:len(stack)-1]
		}
	}

	return out
}

// alignClause rewrites one clause-keyword line within an open block.
// m holds the masked submatches: indent, keyword, rest.
func (f *Formatter) alignClause(blk *alignBlock, line string, m []string) string {
	kw := line[len(m[1]) : len(m[1])+len(m[2])]
	rest := strings.TrimLeft(line[len(m[1])+len(m[2]):], " \t")

	indent := m[1]
	if blk.nested {
		indent = strings.Repeat(" ", blk.selectCol)
	}
	if strings.EqualFold(m[2], "WHERE") {
		blk.condCol = len(indent) + clauseWidth
	}
	return indent + padKeyword(kw, clauseWidth, rest) + rest
}

// alignConjunction re-anchors an AND/OR line to the recorded condition
// column; with no condition column yet, the line is treated like a clause.
func (f *Formatter) alignConjunction(blk *alignBlock, line string, m []string) string {
	if blk.condCol == 0 {
		return f.alignClause(blk, line, m)
	}

	kw := line[len(m[1]) : len(m[1])+len(m[2])]
	rest := strings.TrimLeft(line[len(m[1])+len(m[2]):], " \t")

	col := blk.condCol - conjWidth
	if col < 0 {
		col = 0
	}
	return strings.Repeat(" ", col) + padKeyword(kw, conjWidth, rest) + rest
}

// nestedQueryCol returns the column of a SELECT keyword sitting directly
// inside a paren left unmatched on this line, or -1.
func nestedQueryCol(masked string) int {
	for _, m := range reNestedOpen.FindAllStringIndex(masked, -1) {
		if !parenClosedAfter(masked, m[0]) {
			// Column of the SELECT keyword itself.
			return m[1] - len("SELECT")
		}
	}
	return -1
}

// parenClosedAfter reports whether the paren opening at off finds its
// matching closer later on the same line.
func parenClosedAfter(masked string, off int) bool {
	depth := 0
	for i := off; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// closesBlock reports whether this line terminates the open query: it ends
// in a statement terminator, or in the LOOP of a cursor-loop header after
// the query's closing parens.
func closesBlock(masked string) bool {
	t := strings.TrimRight(masked, " \t")
	if strings.HasSuffix(t, ";") {
		return true
	}
	return reLoopClose.MatchString(t)
}

// padKeyword pads kw with spaces to width (at least one trailing space)
// when content follows it on the line.
func padKeyword(kw string, width int, rest string) string {
	if rest == "" {
		return kw
	}
	if len(kw)+1 > width {
		return kw + " "
	}
	return kw + strings.Repeat(" ", width-len(kw))
}

// padKeywordAt pads the keyword starting at column col to the clause width.
func padKeywordAt(line string, col int) string {
	rest := line[col:]
	word := rest
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		word, rest = rest[:idx], strings.TrimLeft(rest[idx:], " \t")
	} else {
		rest = ""
	}
	return line[:col] + padKeyword(word, clauseWidth, rest) + rest
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// alignContinuations aligns the continuation lines of multi-line
// parenthesized argument lists to the column of the first argument, and
// splices dangling closer-only lines back onto the line they belong to.
// Opens that end their line push a -1 sentinel: their continuations keep
// the engine's indent and their closers stay on their own lines.
func (f *Formatter) alignContinuations(lines []string, cont []bool) []string {
	var stack []int
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		if cont[i] {
			out = append(out, line)
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, line)
			continue
		}

		masked := tokenizer.Mask(line)
		mtrim := strings.TrimSpace(masked)

		if reCloserLine.MatchString(masked) && strings.HasPrefix(mtrim, ")") {
			if len(stack) > 0 && stack[len(stack)-1] >= 0 {
				if j := lastContentLine(out); j >= 0 {
					out[j] += trimmed
					stack = scanParens(masked, stack)
					continue
				}
			}
			out = append(out, line)
			stack = scanParens(masked, stack)
			continue
		}

		if len(stack) > 0 && !strings.HasPrefix(mtrim, ")") && !reStructural.MatchString(mtrim) {
			if col := stack[len(stack)-1]; col >= 0 {
				line = strings.Repeat(" ", col) + trimmed
				masked = tokenizer.Mask(line)
			}
		}

		out = append(out, line)
		stack = scanParens(masked, stack)
	}

	return out
}

// scanParens updates the column stack with the parens of one masked line.
// Each open records the column of the first non-space character after it
// (-1 when the open ends the line); each close pops, cancelling same-line
// opens first since they sit on top.
func scanParens(masked string, stack []int) []int {
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			col := -1
			for j := i + 1; j < len(masked); j++ {
				if masked[j] != ' ' && masked[j] != '\t' {
					col = j
					break
				}
			}
			stack = append(stack, col)
		case ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

func lastContentLine(out []string) int {
	for j := len(out) - 1; j >= 0; j-- {
		if strings.TrimSpace(out[j]) != "" {
			return j
		}
	}
	return -1
}
