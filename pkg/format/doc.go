// Package format re-indents and reformats Oracle PL/SQL source.
//
// The formatter is deliberately heuristic: it never parses the language
// into an AST. Instead it runs a layered text-rewriting pipeline over the
// tokenizer's literal-safe code mask:
//
//  1. A statement splitter breaks compressed input into one statement per
//     line through a fixed sequence of idempotent rewrite rules, with all
//     string/comment content swapped out for placeholders while the rules
//     run.
//  2. An indentation engine makes a single forward pass over the split
//     lines, tracking block nesting, CASE branch levels, and open call
//     parens, and prefixes each line with its computed indent.
//  3. Two alignment post-passes column-align the clause keywords of
//     embedded queries and the continuation lines of multi-line argument
//     lists.
//  4. A keyword caser rewrites reserved words to upper case in code
//     segments only.
//
// Malformed input never produces an error; unterminated literals and
// unbalanced blocks degrade to best-effort output.
//
// Usage:
//
//	formatter := format.New(format.Defaults)
//	fmt.Print(formatter.FormatString("IF x > 0 THEN y := 1; END IF;"))
//
// Output:
//
//	IF x > 0 THEN
//	  y := 1;
//	END IF;
package format
