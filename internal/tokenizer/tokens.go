// Package tokenizer provides line-level CSV lexing using Shape's tokenizer framework.
package tokenizer

// Token kinds emitted for a single line of CSV text.
//
// The lexer does not know whether it is inside a quoted field. The line
// parser decides how separator and quote tokens are interpreted.
const (
	// Structural tokens
	TokenSeparator = "Separator" // the active field separator
	TokenDQuote    = "DQuote"    // " (quote delimiter)

	// Content token
	TokenText = "Text" // run of characters that are neither separator nor quote
)
