package format_test

import (
	"strings"
	"testing"

	. "github.com/apexkit/plsqlfmt/pkg/format"
	"github.com/stretchr/testify/require"
)

func TestIndent_Blocks(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name: "declare section",
			src:  "DECLARE l_x NUMBER; BEGIN NULL; END;",
			expected: []string{
				"DECLARE",
				"  l_x NUMBER;",
				"BEGIN",
				"  NULL;",
				"END;",
			},
		},
		{
			name: "procedure header with declaration",
			src:  "CREATE OR REPLACE PROCEDURE p IS l_x NUMBER; BEGIN NULL; END p;",
			expected: []string{
				"CREATE OR REPLACE PROCEDURE p IS",
				"  l_x NUMBER;",
				"BEGIN",
				"  NULL;",
				"END p;",
			},
		},
		{
			name: "elsif chain",
			src:  "IF a = 1 THEN x := 1; ELSIF a = 2 THEN x := 2; ELSE\nx := 3; END IF;",
			expected: []string{
				"IF a = 1 THEN",
				"  x := 1;",
				"ELSIF a = 2 THEN",
				"  x := 2;",
				"ELSE",
				"  x := 3;",
				"END IF;",
			},
		},
		{
			name: "exception section",
			src:  "BEGIN NULL; EXCEPTION WHEN OTHERS THEN NULL; END;",
			expected: []string{
				"BEGIN",
				"  NULL;",
				"EXCEPTION",
				"  WHEN OTHERS THEN",
				"    NULL;",
				"END;",
			},
		},
		{
			name: "numeric for loop",
			src:  "FOR i IN 1..3 LOOP NULL; END LOOP;",
			expected: []string{
				"FOR i IN 1..3 LOOP",
				"  NULL;",
				"END LOOP;",
			},
		},
		{
			name: "while loop",
			src:  "WHILE x < 10 LOOP x := x + 1; END LOOP;",
			expected: []string{
				"WHILE x < 10 LOOP",
				"  x := x + 1;",
				"END LOOP;",
			},
		},
	}

	f := New(Defaults)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := strings.Join(tt.expected, "\n") + "\n"
			require.Equal(t, expected, f.FormatString(tt.src))
		})
	}
}

// A CASE statement closes through the branch stack, so END CASE returns to
// the level that held when the CASE opened even though the last branch body
// never dedented on its own. The branch-stack rule must win over both the
// branch-body dedent and the plain terminator dedent.
func TestIndent_EndCaseUsesBranchStack(t *testing.T) {
	f := New(Defaults)

	src := "CASE v WHEN 1 THEN x := 1; WHEN 2 THEN x := 2; ELSE\nx := 3; END CASE;"
	expected := strings.Join([]string{
		"CASE v",
		"  WHEN 1 THEN",
		"    x := 1;",
		"  WHEN 2 THEN",
		"    x := 2;",
		"  ELSE",
		"    x := 3;",
		"END CASE;",
	}, "\n") + "\n"

	require.Equal(t, expected, f.FormatString(src))
}

// A CASE nested inside a branch body starts its own branch tracking: the
// inner labels indent below the inner subject instead of taking the outer
// branch-body dedent, and each END CASE returns to its own recorded level.
func TestIndent_NestedCase(t *testing.T) {
	f := New(Defaults)

	src := "CASE a WHEN 1 THEN CASE b WHEN 2 THEN x := 1; END CASE; END CASE;"
	expected := strings.Join([]string{
		"CASE a",
		"  WHEN 1 THEN",
		"    CASE b",
		"      WHEN 2 THEN",
		"        x := 1;",
		"    END CASE;",
		"END CASE;",
	}, "\n") + "\n"

	require.Equal(t, expected, f.FormatString(src))
}

func TestIndent_SlashResetsLevel(t *testing.T) {
	f := New(Defaults)

	src := "BEGIN NULL; END;\n/\nBEGIN NULL; END;"
	expected := strings.Join([]string{
		"BEGIN",
		"  NULL;",
		"END;",
		"/",
		"BEGIN",
		"  NULL;",
		"END;",
	}, "\n") + "\n"

	require.Equal(t, expected, f.FormatString(src))
}

func TestIndent_BlankLinesPreserved(t *testing.T) {
	f := New(Defaults)

	src := "BEGIN\nx := 1;\n\ny := 2;\nEND;"
	expected := strings.Join([]string{
		"BEGIN",
		"  x := 1;",
		"",
		"  y := 2;",
		"END;",
	}, "\n") + "\n"

	require.Equal(t, expected, f.FormatString(src))
}

func TestIndent_UnbalancedInputClampsAtZero(t *testing.T) {
	f := New(Defaults)

	// Stray terminators never push the level negative.
	src := "END;\nEND;\nBEGIN\nNULL;\nEND;"
	expected := strings.Join([]string{
		"END;",
		"END;",
		"BEGIN",
		"  NULL;",
		"END;",
	}, "\n") + "\n"

	require.Equal(t, expected, f.FormatString(src))
}
