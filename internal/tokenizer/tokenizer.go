package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// DefaultSeparator is the separator used when none is configured.
const DefaultSeparator = ','

// NewLexer creates a lexer for CSV lines separated by commas.
func NewLexer() tokenizer.Tokenizer {
	return NewLexerWithSeparator(DefaultSeparator)
}

// NewLexerWithSeparator creates a lexer for CSV lines split on sep.
//
// Lines handed to the lexer never contain a line terminator, so unlike a
// whole-document tokenizer there is no newline token: a stray CR or LF is
// ordinary text. Matchers are tried in order:
//  1. Separator
//  2. Double quote
//  3. Text (everything else)
//
// The separator is matched literally, so any rune works, including ones
// that carry meaning in pattern languages such as '|' or '.'.
func NewLexerWithSeparator(sep rune) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenSeparator, string(sep)),
		tokenizer.StringMatcherFunc(TokenDQuote, `"`),
		TextMatcher(sep),
	)
}

// TextMatcher creates a matcher for runs of characters that are not the
// separator or a double quote.
//
// Grammar:
//
//	Text = Character+ ;
//	Character = <any character except separator and quote> ;
//
// Performance: Uses ByteStream for fast ASCII scanning when available.
func TextMatcher(sep rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if sep < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return textMatcherByte(byteStream, byte(sep))
			}
		}
		return textMatcherRune(stream, sep)
	}
}

// textMatcherByte scans ASCII-delimited text straight off the byte stream.
// Multi-byte UTF-8 sequences never contain bytes below 128, so comparing raw
// bytes against an ASCII separator is safe.
func textMatcherByte(stream tokenizer.ByteStream, sep byte) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok {
			break
		}
		if b == sep || b == '"' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenText, []rune(string(value)))
}

// textMatcherRune is the fallback for non-ASCII separators.
func textMatcherRune(stream tokenizer.Stream, sep rune) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok {
			break
		}
		if r == sep || r == '"' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenText, value)
}
