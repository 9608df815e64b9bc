// Package shell splits script lines into command tokens.
//
// Unquoted whitespace separates tokens and text inside matching single or
// double quotes is kept together. Everything else is taken as written:
// backslashes are ordinary characters and nothing is expanded, there are no
// variables, globs, pipes or redirects.
package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/anmitsu/go-shlex"
)

// CommentPrefix starts a line that is never tokenized.
const CommentPrefix = "//"

// emptyArg stands in for a standalone "" or '' while the line is lexed, the
// lexer drops empty tokens. U+FDD0 is a noncharacter reserved for internal
// use.
const emptyArg = '\uFDD0'

// ErrUnterminatedQuote is returned for a line with a quote that is never
// closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// literalTokenizer is the shell tokenizer without backslash escapes.
type literalTokenizer struct {
	shlex.DefaultTokenizer
}

func (t *literalTokenizer) IsEscape(r rune) bool {
	return false
}

// IsComment reports whether the line is a comment, ignoring leading whitespace.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), CommentPrefix)
}

// Tokenize splits a line into tokens. The first token is the command name.
//
// A blank line produces no tokens and no error. A line with an open quote
// produces an error and no tokens. A standalone pair of quotes is an empty
// argument.
func Tokenize(line string) ([]string, error) {
	lexer := shlex.NewLexerString(markEmptyArgs(line), true, true)
	lexer.SetTokenizer(&literalTokenizer{})

	tokens, err := lexer.Split()
	switch {
	case errors.Is(err, shlex.ErrNoClosing):
		return nil, fmt.Errorf("%w in %q", ErrUnterminatedQuote, line)
	case err != nil:
		return nil, err
	}

	for i, tok := range tokens {
		if tok == string(emptyArg) {
			tokens[i] = ""
		}
	}
	return tokens, nil
}

// markEmptyArgs replaces each "" or '' that stands alone between whitespace
// with emptyArg. Quotes touching other text are left for the lexer to join.
func markEmptyArgs(line string) string {
	runes := []rune(line)
	standalone := func(i int) bool {
		return i == len(runes) || unicode.IsSpace(runes[i])
	}

	var b strings.Builder
	var quote rune
	afterSpace := true
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			if afterSpace && i+1 < len(runes) && runes[i+1] == r && standalone(i+2) {
				b.WriteRune(emptyArg)
				i++
				afterSpace = false
				continue
			}
			quote = r
		}

		afterSpace = quote == 0 && unicode.IsSpace(r)
		b.WriteRune(r)
	}
	return b.String()
}
