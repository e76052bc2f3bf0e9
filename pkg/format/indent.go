package format

import (
	"regexp"
	"strings"
)

var (
	reTerminator = regexp.MustCompile(`(?i)^END(?:[ \t]+[A-Za-z_][\w$#]*)*[ \t]*;?[ \t]*$`)
	reEndCase    = regexp.MustCompile(`(?i)^END[ \t]+CASE\b`)
	reBeginLine  = regexp.MustCompile(`(?i)^BEGIN\b`)
	reDeclare    = regexp.MustCompile(`(?i)^DECLARE\b`)
	reSlashLine  = regexp.MustCompile(`^/[ \t]*$`)
	reElsifLine  = regexp.MustCompile(`(?i)^ELSIF\b`)
	reElseLine   = regexp.MustCompile(`(?i)^ELSE\b`)
	reExcLine    = regexp.MustCompile(`(?i)^EXCEPTION\b`)
	reWhenLine   = regexp.MustCompile(`(?i)^WHEN\b`)
	reEndsThen   = regexp.MustCompile(`(?i)\bTHEN[ \t]*$`)
	reEndsLoop   = regexp.MustCompile(`(?i)\bLOOP[ \t]*$`)
	reEndsIsAs   = regexp.MustCompile(`(?i)\b(?:IS|AS)[ \t]*$`)
	reCaseLine   = regexp.MustCompile(`(?i)^CASE\b`)
	reCaseTail   = regexp.MustCompile(`(?i)(?:^|[^\w$#])CASE(?:[ \t]+[\w$#."]+)?[ \t]*$`)
	rePureClose  = regexp.MustCompile(`^[ \t;)]*\)[ \t;)]*$`)
)

// indentState is the engine's per-call state, threaded through one
// transition per line. Nothing here survives a format call.
type indentState struct {
	level        int
	inBranchBody bool
	branchStack  []int
	parenDepth   int
}

func (st *indentState) pushBranch(level int) {
	st.branchStack = append(st.branchStack, level)
}

func (st *indentState) popBranch() int {
	top := st.branchStack[len(st.branchStack)-1]
	st.branchStack = st.branchStack[:len(st.branchStack)-1]
	return top
}

// applyIndent emits one output line per input line, prefixed with the
// computed indent. Classification runs against the masked view; the printed
// content is the original text. Lines that continue a multi-line literal
// (cont[i]) pass through verbatim so literal content is never reshaped.
func (f *Formatter) applyIndent(lines, masked []string, cont []bool) []string {
	st := &indentState{}
	unit := strings.Repeat(" ", f.opts.IndentWidth)
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		if cont[i] {
			out = append(out, line)
			continue
		}

		content := strings.TrimSpace(line)
		if content == "" {
			out = append(out, "")
			continue
		}

		t := strings.TrimSpace(masked[i])
		f.dedentBefore(st, t)

		indent := st.level
		pure := rePureClose.MatchString(t)
		if pure {
			if st.parenDepth > 0 {
				indent += st.parenDepth - 1
			}
		} else {
			indent += st.parenDepth
		}
		if indent < 0 {
			indent = 0
		}
		out = append(out, strings.Repeat(unit, indent)+content)

		f.indentAfter(st, t)

		switch {
		case pure:
			if st.parenDepth > 0 {
				st.parenDepth--
			}
		case endsWithOpenParen(t):
			st.parenDepth++
		}
	}

	return out
}

// dedentBefore applies the dedent rules that position the current line.
// The order is load-bearing: the branch-stack END CASE rule is evaluated
// before the inside-branch-body rule, and a line handled by it skips both
// the branch-body dedent and the terminator's own dedent.
func (f *Formatter) dedentBefore(st *indentState, t string) {
	if t == "" {
		return
	}

	isTerm := reTerminator.MatchString(t)

	if reEndCase.MatchString(t) && len(st.branchStack) > 0 {
		if top := st.popBranch(); top < st.level {
			st.level = top
		}
		st.inBranchBody = false
		return
	}

	if st.inBranchBody &&
		(reWhenLine.MatchString(t) || reElseLine.MatchString(t) || isTerm) {
		st.dedent()
		st.inBranchBody = false
	}

	switch {
	case isTerm:
		st.dedent()
	case reBeginLine.MatchString(t):
		// BEGIN aligns with its declare section, not the declarations.
		st.dedent()
	case reSlashLine.MatchString(t):
		st.level = 0
	case reElsifLine.MatchString(t):
		st.dedent()
	case reElseLine.MatchString(t):
		// An ELSE that is a sibling inside a CASE was already leveled by
		// the branch-body rule above.
		if len(st.branchStack) == 0 {
			st.dedent()
		}
	case reExcLine.MatchString(t):
		st.dedent()
	}
}

// indentAfter applies the indent rules that position subsequent lines.
func (f *Formatter) indentAfter(st *indentState, t string) {
	if t == "" || reTerminator.MatchString(t) || reSlashLine.MatchString(t) {
		return
	}

	switch {
	case reBeginLine.MatchString(t), reDeclare.MatchString(t):
		st.level++
	case isCaseOpener(t):
		// A nested CASE starts fresh branch tracking; its labels must not
		// take the enclosing branch-body dedent.
		st.pushBranch(st.level)
		st.level++
		st.inBranchBody = false
	case reWhenLine.MatchString(t) && reEndsThen.MatchString(t):
		st.level++
		st.inBranchBody = true
	case reEndsThen.MatchString(t):
		st.level++
	case reEndsLoop.MatchString(t):
		st.level++
	case reElseLine.MatchString(t):
		st.level++
	case reExcLine.MatchString(t):
		st.level++
	case reEndsIsAs.MatchString(t):
		st.level++
	}
}

// isCaseOpener matches a standalone case subject line ("CASE expr") or a
// case expression opening at the end of an assignment ("x := CASE").
func isCaseOpener(t string) bool {
	if reCaseLine.MatchString(t) {
		return true
	}
	return reCaseTail.MatchString(t)
}

func (st *indentState) dedent() {
	if st.level > 0 {
		st.level--
	}
}

// endsWithOpenParen reports whether the masked line ends with an opening
// parenthesis that is unmatched on that line.
func endsWithOpenParen(t string) bool {
	s := strings.TrimRight(t, " \t")
	if s == "" || s[len(s)-1] != '(' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth > 0
}
