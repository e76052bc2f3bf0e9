// Package scanner extracts variable declarations from the declaration
// sections of procedural SQL source. It is a lightweight structural scanner,
// not a full parser: declaration sections are located by line shape, split
// into items on top-level semicolons, and each item is run through a small
// grammar. Items that do not parse as declarations (cursors, pragmas,
// nested routine specs) are skipped.
package scanner

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/apexkit/plsqlfmt/pkg/tokenizer"
)

type (
	// Variable is one declared item of a declaration section.
	Variable struct {
		// Name is the declared identifier
		Name string

		// DataType is the declared type, including length arguments and
		// %TYPE/%ROWTYPE anchors
		DataType string

		// Constant reports a CONSTANT declaration
		Constant bool

		// NotNull reports a NOT NULL constraint
		NotNull bool

		// Default is the raw default expression, without the := or DEFAULT
		// introducer, or ""
		Default string
	}

	declItem struct {
		Name     string   `parser:"@Ident"`
		Constant bool     `parser:"@'CONSTANT'?"`
		Type     *typeRef `parser:"@@"`
		NotNull  bool     `parser:"( @'NOT' 'NULL' )?"`
	}

	typeRef struct {
		Parts []string  `parser:"@Ident ( '.' @Ident )*"`
		Args  []typeArg `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
		Attr  string    `parser:"( '%' @( 'TYPE' | 'ROWTYPE' ) )?"`
	}

	typeArg struct {
		Tokens []string `parser:"@( Number | Ident )+"`
	}
)

var (
	declLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `'([^']|'')*'`},
		{Name: "Number", Pattern: `\d+(\.\d*)?`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_$#]*`},
		{Name: "Punct", Pattern: `[(),.;%]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	declParser = participle.MustBuild[declItem](
		participle.Lexer(declLexer),
		participle.Elide("Comment", "MultilineComment", "Whitespace"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(2),
	)

	reSectionOpen  = regexp.MustCompile(`(?i)^DECLARE\b|\b(?:IS|AS)[ \t]*$`)
	reSectionClose = regexp.MustCompile(`(?i)^BEGIN\b`)
	reDeclareLead  = regexp.MustCompile(`(?i)^DECLARE\b[ \t]*`)
	reDefaultWord  = regexp.MustCompile(`(?i)\bDEFAULT\b`)

	// Items led by these words are declaration-section content but not
	// variable declarations, and the grammar would misread some of them.
	skipLead = map[string]struct{}{
		"PRAGMA": {}, "CURSOR": {}, "TYPE": {}, "SUBTYPE": {},
		"PROCEDURE": {}, "FUNCTION": {},
	}
)

// ScanDeclarations returns the variables declared in src, in order of
// appearance. It assumes roughly line-structured source (one statement per
// line, as the formatter produces); compressed input should be formatted
// first.
func ScanDeclarations(src string) []Variable {
	lines := strings.Split(src, "\n")
	masked := strings.Split(tokenizer.Mask(src), "\n")

	var vars []Variable
	var section, sectionMask strings.Builder
	open := false

	flush := func() {
		vars = append(vars, scanSection(section.String(), sectionMask.String())...)
		section.Reset()
		sectionMask.Reset()
	}

	for i, line := range lines {
		t := strings.TrimSpace(masked[i])

		if open && reSectionClose.MatchString(t) {
			flush()
			open = false
			continue
		}

		if !open && reSectionOpen.MatchString(t) {
			open = true
			// A DECLARE may carry declarations on the same line.
			if loc := reDeclareLead.FindStringIndex(t); loc != nil {
				off := strings.Index(masked[i], t)
				section.WriteString(line[off+loc[1]:] + "\n")
				sectionMask.WriteString(masked[i][off+loc[1]:] + "\n")
			}
			continue
		}

		if open {
			section.WriteString(line + "\n")
			sectionMask.WriteString(masked[i] + "\n")
		}
	}
	if open {
		flush()
	}

	return vars
}

// scanSection splits one declaration section into items on top-level
// semicolons and parses each item.
func scanSection(text, masked string) []Variable {
	var vars []Variable

	start := 0
	depth := 0
	for i := 0; i <= len(masked); i++ {
		if i < len(masked) {
			switch masked[i] {
			case '(':
				depth++
				continue
			case ')':
				if depth > 0 {
					depth--
				}
				continue
			case ';':
				if depth != 0 {
					continue
				}
			default:
				continue
			}
		}

		if v, ok := parseItem(text[start:min(i, len(text))], masked[start:min(i, len(masked))]); ok {
			vars = append(vars, v)
		}
		start = i + 1
	}

	return vars
}

// parseItem parses a single declaration item. The default expression is
// split off on the masked view before the grammar runs, so defaults can hold
// arbitrary expressions and literals.
func parseItem(text, masked string) (Variable, bool) {
	decl, def := splitDefault(text, masked)
	decl = strings.TrimSpace(decl)
	if decl == "" {
		return Variable{}, false
	}

	if lead := strings.ToUpper(firstWord(decl)); lead != "" {
		if _, ok := skipLead[lead]; ok {
			return Variable{}, false
		}
	}

	item, err := declParser.ParseString("", decl)
	if err != nil || item.Type == nil {
		return Variable{}, false
	}

	return Variable{
		Name:     item.Name,
		DataType: item.Type.String(),
		Constant: item.Constant,
		NotNull:  item.NotNull,
		Default:  strings.TrimSpace(def),
	}, true
}

// splitDefault cuts a declaration at its := or DEFAULT introducer, found on
// the masked view at paren depth zero.
func splitDefault(text, masked string) (decl, def string) {
	depth := 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 && i+1 < len(masked) && masked[i+1] == '=' {
				return text[:i], text[i+2:]
			}
		}
	}

	for _, loc := range reDefaultWord.FindAllStringIndex(masked, -1) {
		if parenDepthAt(masked, loc[0]) == 0 {
			return text[:loc[0]], text[loc[1]:]
		}
	}
	return text, ""
}

func parenDepthAt(masked string, off int) int {
	depth := 0
	for i := 0; i < off; i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

func firstWord(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || c == '$' || c == '#' ||
			c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			continue
		}
		return s[:i]
	}
	return s
}

func (t *typeRef) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Parts, "."))

	if len(t.Args) > 0 {
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = strings.Join(a.Tokens, " ")
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	if t.Attr != "" {
		b.WriteString("%" + strings.ToUpper(t.Attr))
	}
	return b.String()
}
