package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitter_Rules(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "rejoins split end qualifier",
			src:      "end\nloop;",
			expected: "end loop;",
		},
		{
			name:     "breaks after statement terminator",
			src:      "x := 1; y := 2; z := 3;",
			expected: "x := 1;\ny := 2;\nz := 3;",
		},
		{
			name:     "terminator inside parens is not a statement end",
			src:      "call(p1 => 1); x := 2;",
			expected: "call(p1 => 1);\nx := 2;",
		},
		{
			name:     "breaks after block opener",
			src:      "begin null; end;",
			expected: "begin\nnull;\nend;",
		},
		{
			name:     "breaks declarations off a routine header",
			src:      "procedure p is l_x number; begin null; end;",
			expected: "procedure p is\nl_x number;\nbegin\nnull;\nend;",
		},
		{
			name:     "breaks after then",
			src:      "if x > 0 then y := 1; end if;",
			expected: "if x > 0 then\ny := 1;\nend if;",
		},
		{
			name:     "breaks after loop opener",
			src:      "for i in 1..3 loop null; end loop;",
			expected: "for i in 1..3 loop\nnull;\nend loop;",
		},
		{
			name:     "breaks before branch keywords",
			src:      "if a then x := 1; elsif b then x := 2; end if;",
			expected: "if a then\nx := 1;\nelsif b then\nx := 2;\nend if;",
		},
		{
			name:     "breaks before case labels",
			src:      "case v when 1 then",
			expected: "case v\nwhen 1 then",
		},
		{
			name:     "breaks before query clauses",
			src:      "select id from emp where dept = 10;",
			expected: "select id\nfrom emp\nwhere dept = 10;",
		},
		{
			name:     "keeps insert into together",
			src:      "insert into t (a) values (1);",
			expected: "insert into t (a)\nvalues (1);",
		},
		{
			name:     "keeps delete from together",
			src:      "delete from t where id = 1;",
			expected: "delete from t\nwhere id = 1;",
		},
		{
			name:     "keeps parenthesized select attached to its open",
			src:      "for r in (select id from emp) loop",
			expected: "for r in (select id\nfrom emp) loop",
		},
	}

	sp := newSplitter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, sp.split(tt.src))
		})
	}
}

func TestSplitter_ProtectsLiterals(t *testing.T) {
	sp := newSplitter()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "semicolon inside string",
			src:      "x := 'a; b'; y := 1;",
			expected: "x := 'a; b';\ny := 1;",
		},
		{
			name:     "keywords inside string",
			src:      "x := 'begin then end';",
			expected: "x := 'begin then end';",
		},
		{
			name:     "semicolon inside line comment",
			src:      "x := 1; -- tail; note\ny := 2;",
			expected: "x := 1; -- tail; note\ny := 2;",
		},
		{
			name:     "alternative quoting",
			src:      "v := q'[don't; stop]'; w := 2;",
			expected: "v := q'[don't; stop]';\nw := 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, sp.split(tt.src))
		})
	}
}

func TestSplitter_Idempotent(t *testing.T) {
	srcs := []string{
		"begin null; end;",
		"if x > 0 then y := 1; elsif x < 0 then y := 2; else\ny := 3; end if;",
		"case v when 1 then x := 1; when 2 then x := 2; end case;",
		"select id from emp where dept = 10 and job = 'CLERK';",
		"for i in 1..3 loop exit when i = 2; end loop;",
		"insert into t (a, b) values (1, 'x; y');",
	}

	sp := newSplitter()
	for _, src := range srcs {
		once := sp.split(src)
		require.Equal(t, once, sp.split(once), "resplitting changed output for %q", src)
	}
}

func TestProtectRestore_RoundTrip(t *testing.T) {
	srcs := []string{
		"x := 'special $1 ${2} \\n chars';",
		"/* block\ncomment */ begin null; end; -- tail",
		"v := q'{mixed 'quotes' inside}';",
	}

	for _, src := range srcs {
		s, lits := protect(src)
		require.Equal(t, src, restore(s, lits))
	}
}
