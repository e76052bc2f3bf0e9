package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies the content class of a Segment.
type Kind int

const (
	// Code is anything outside comments and string literals.
	Code Kind = iota
	// LineComment is a "--" comment extending to (not including) the next newline.
	LineComment
	// BlockComment is a "/* ... */" comment, including its delimiters.
	BlockComment
	// String is a quoted literal, either '...' (with '' escaping) or the
	// alternative-quoting form q'[...]' and friends.
	String
)

// Segment is a maximal run of one content kind. The sequence returned by
// Tokenize covers the input with no gaps or overlaps.
type Segment struct {
	Kind Kind
	Text string
}

// Tokenize splits src into an ordered segment sequence. It never fails:
// unterminated comments and strings consume the remainder of the input.
func Tokenize(src string) []Segment {
	var segs []Segment
	n := len(src)
	start := 0 // start of the current code run

	flush := func(end int) {
		if end > start {
			segs = append(segs, Segment{Kind: Code, Text: src[start:end]})
		}
	}

	i := 0
	for i < n {
		switch {
		case src[i] == '-' && i+1 < n && src[i+1] == '-':
			flush(i)
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
			segs = append(segs, Segment{Kind: LineComment, Text: src[i:end]})
			i, start = end, end

		case src[i] == '/' && i+1 < n && src[i+1] == '*':
			flush(i)
			end := n
			if idx := strings.Index(src[i+2:], "*/"); idx >= 0 {
				end = i + 2 + idx + 2
			}
			segs = append(segs, Segment{Kind: BlockComment, Text: src[i:end]})
			i, start = end, end

		case isQuoteStart(src, i):
			flush(i)
			end := scanAltQuoted(src, i)
			segs = append(segs, Segment{Kind: String, Text: src[i:end]})
			i, start = end, end

		case src[i] == '\'':
			flush(i)
			end := scanQuoted(src, i)
			segs = append(segs, Segment{Kind: String, Text: src[i:end]})
			i, start = end, end

		default:
			i++
		}
	}
	flush(n)

	return segs
}

// isQuoteStart reports whether src[i:] opens an alternative-quoted literal
// (q'...'). The q must begin a token, not end an identifier like "seq".
func isQuoteStart(src string, i int) bool {
	if src[i] != 'q' && src[i] != 'Q' {
		return false
	}
	if i+1 >= len(src) || src[i+1] != '\'' {
		return false
	}
	return i == 0 || !isWordByte(src[i-1])
}

// scanQuoted consumes a standard '...' literal starting at i. A doubled
// quote stays inside the literal; a lone closing quote ends it.
func scanQuoted(src string, i int) int {
	n := len(src)
	j := i + 1
	for j < n {
		if src[j] != '\'' {
			j++
			continue
		}
		if j+1 < n && src[j+1] == '\'' {
			j += 2
			continue
		}
		return j + 1
	}
	return n
}

// scanAltQuoted consumes a q'X...X' literal starting at i. Bracket-style
// delimiters pair with their counterparts; any other delimiter pairs with
// itself. Unterminated literals run to end of input.
func scanAltQuoted(src string, i int) int {
	n := len(src)
	if i+2 >= n {
		return n
	}
	open, size := utf8.DecodeRuneInString(src[i+2:])
	closer := string(closingDelim(open)) + "'"
	body := i + 2 + size
	idx := strings.Index(src[body:], closer)
	if idx < 0 {
		return n
	}
	return body + idx + len(closer)
}

func closingDelim(open rune) rune {
	switch open {
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	case '(':
		return ')'
	}
	return open
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
