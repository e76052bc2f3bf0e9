package tokenizer_test

import (
	"strings"
	"testing"

	. "github.com/apexkit/plsqlfmt/pkg/tokenizer"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "plain code",
			input: "x := 1;",
			want:  []Segment{{Code, "x := 1;"}},
		},
		{
			name:  "line comment",
			input: "x := 1; -- set x\ny := 2;",
			want: []Segment{
				{Code, "x := 1; "},
				{LineComment, "-- set x"},
				{Code, "\ny := 2;"},
			},
		},
		{
			name:  "block comment",
			input: "a /* b */ c",
			want: []Segment{
				{Code, "a "},
				{BlockComment, "/* b */"},
				{Code, " c"},
			},
		},
		{
			name:  "string literal",
			input: "v := 'hello';",
			want: []Segment{
				{Code, "v := "},
				{String, "'hello'"},
				{Code, ";"},
			},
		},
		{
			name:  "doubled quote escape",
			input: "v := 'it''s';",
			want: []Segment{
				{Code, "v := "},
				{String, "'it''s'"},
				{Code, ";"},
			},
		},
		{
			name:  "alternative quoting with brackets",
			input: "v := q'[don't panic]';",
			want: []Segment{
				{Code, "v := "},
				{String, "q'[don't panic]'"},
				{Code, ";"},
			},
		},
		{
			name:  "alternative quoting with self-paired delimiter",
			input: "v := q'!bang!';",
			want: []Segment{
				{Code, "v := "},
				{String, "q'!bang!'"},
				{Code, ";"},
			},
		},
		{
			name:  "identifier ending in q is not a quote start",
			input: "seq'val'",
			want: []Segment{
				{Code, "seq"},
				{String, "'val'"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Unterminated(t *testing.T) {
	t.Run("string runs to end of input", func(t *testing.T) {
		segs := Tokenize("v := 'oops")
		require.Len(t, segs, 2)
		require.Equal(t, String, segs[1].Kind)
		require.Equal(t, "'oops", segs[1].Text)
	})

	t.Run("block comment runs to end of input", func(t *testing.T) {
		segs := Tokenize("a /* never closed\nmore")
		require.Len(t, segs, 2)
		require.Equal(t, BlockComment, segs[1].Kind)
		require.Equal(t, "/* never closed\nmore", segs[1].Text)
	})

	t.Run("alternative quote runs to end of input", func(t *testing.T) {
		segs := Tokenize("v := q'{open")
		require.Len(t, segs, 2)
		require.Equal(t, String, segs[1].Kind)
	})

	t.Run("line comment at end of input", func(t *testing.T) {
		segs := Tokenize("x := 1; -- tail")
		require.Equal(t, LineComment, segs[len(segs)-1].Kind)
		require.Equal(t, "-- tail", segs[len(segs)-1].Text)
	})
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"BEGIN\n  NULL;\nEND;",
		"v := 'BEGIN END IF'; -- keywords in a string\n/* and in\na comment */",
		"x := q'[a 'nested' quote]' || 'plain';",
		"unterminated := 'to the end",
		"-- only a comment",
		"/*",
		"q'(",
		"a'b''c'd",
	}

	for _, input := range inputs {
		var b strings.Builder
		for _, s := range Tokenize(input) {
			b.WriteString(s.Text)
		}
		require.Equal(t, input, b.String(), "round trip failed for %q", input)
	}
}

func TestMask(t *testing.T) {
	t.Run("length and newlines preserved", func(t *testing.T) {
		inputs := []string{
			"x := 'a\nb';\n-- c\n/* d\ne */",
			"BEGIN NULL; END;",
			"v := q'[x\ny]';",
		}
		for _, input := range inputs {
			m := Mask(input)
			require.Len(t, m, len(input))
			for i := 0; i < len(input); i++ {
				if input[i] == '\n' {
					require.Equal(t, byte('\n'), m[i], "newline lost at %d in %q", i, input)
				}
			}
		}
	})

	t.Run("literal content blanked", func(t *testing.T) {
		m := Mask("x := 'END IF'; -- BEGIN")
		require.NotContains(t, m, "END")
		require.NotContains(t, m, "BEGIN")
		require.Contains(t, m, "x := ")
	})

	t.Run("code preserved verbatim", func(t *testing.T) {
		src := "IF a > 0 THEN b := 'x'; END IF;"
		m := Mask(src)
		require.True(t, strings.HasPrefix(m, "IF a > 0 THEN b := "))
		require.True(t, strings.HasSuffix(m, "; END IF;"))
	})
}
