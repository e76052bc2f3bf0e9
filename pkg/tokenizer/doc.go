// Package tokenizer splits PL/SQL source text into typed segments (code,
// line comments, block comments, and string literals) in a single forward
// scan.
//
// The tokenizer is deliberately lossless: concatenating the Text of every
// segment reconstructs the input byte for byte. It never fails on malformed
// input; unterminated comments and strings simply extend to the end of the
// input, which matches how editor tooling behaves on partially typed code.
//
// The derived Mask view blanks out every non-code segment with spaces of the
// same length (newlines preserved), so downstream regex passes can match
// structural keywords without ever firing inside a literal or comment:
//
//	segments := tokenizer.Tokenize(src)
//	masked := tokenizer.Mask(src)
//	// len(masked) == len(src), and masked has spaces wherever src had
//	// string or comment content.
package tokenizer
