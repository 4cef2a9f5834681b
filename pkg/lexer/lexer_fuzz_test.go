package lexer

import (
	"strings"
	"testing"
)

// FuzzTokenize feeds random inputs to the lexer to catch panics and hangs.
// The lexer should never panic — it returns an error for invalid input.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		// Keywords
		`class return if else def print`,
		`and or not None True False`,
		// Literals
		`42 0 1024`,
		`'hello' "with\nescape" 'quote\''`,
		// Operators
		`+ - * / = == != < > <= >=`,
		// Punctuation
		`( ) : , .`,
		// Identifiers
		`x foo bar_baz __init__`,
		// Comments
		`# this is a comment`,
		// Layout
		"if x:\n  y\nelse:\n  z\n",
		"class A:\n  def f(self):\n    return 1\n",
		"x\n\n\ny",
		"    indented first line",
		"if a:\n  b\n    # comment\n  c\n",
		// Edge cases
		``,
		`   `,
		"\n\n",
		`'unterminated`,
		`'bad\escape'`,
		"'newline\ninside'",
		`99999999999999999999`,
		"\t",
		"trailing spaces\n    ",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Tokenize panicked on input %q: %v", input, r)
			}
		}()
		tokens, err := Tokenize(strings.NewReader(input))
		if err != nil {
			return
		}

		// Successful tokenizations uphold the stream invariants.
		if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokEOF {
			t.Fatalf("missing Eof for input %q: %v", input, tokens)
		}
		depth := 0
		for i, tk := range tokens {
			if tk.Type == TokIndent {
				depth++
			}
			if tk.Type == TokDedent {
				depth--
			}
			if depth < 0 {
				t.Fatalf("negative indent depth at token %d for input %q", i, input)
			}
			if i > 0 && tk.Type == TokNewline && tokens[i-1].Type == TokNewline {
				t.Fatalf("consecutive newlines at token %d for input %q", i, input)
			}
		}
		if depth != 0 {
			t.Fatalf("unbalanced indentation for input %q", input)
		}
	})
}
