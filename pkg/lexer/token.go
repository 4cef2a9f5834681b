package lexer

import "fmt"

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Value-carrying tokens
	TokNumber TokenType = iota
	TokIdent
	TokString
	TokChar

	// Keywords
	TokClass
	TokReturn
	TokIf
	TokElse
	TokDef
	TokPrint
	TokAnd
	TokOr
	TokNot
	TokNone
	TokTrue
	TokFalse

	// Layout
	TokNewline
	TokIndent
	TokDedent
	TokEOF

	// Two-character operators
	TokEq          // ==
	TokNotEq       // !=
	TokLessOrEq    // <=
	TokGreaterOrEq // >=
)

// Token represents a single lexer token. Only the payload field matching the
// type is meaningful: Num for TokNumber, Text for TokIdent and TokString,
// Ch for TokChar.
type Token struct {
	Type TokenType
	Num  int32
	Text string
	Ch   byte
}

// NumberToken creates a number token.
func NumberToken(n int32) Token {
	return Token{Type: TokNumber, Num: n}
}

// IdentToken creates an identifier token.
func IdentToken(name string) Token {
	return Token{Type: TokIdent, Text: name}
}

// StringToken creates a string constant token.
func StringToken(s string) Token {
	return Token{Type: TokString, Text: s}
}

// CharToken creates a single punctuation character token.
func CharToken(c byte) Token {
	return Token{Type: TokChar, Ch: c}
}

var keywords = map[string]TokenType{
	"class":  TokClass,
	"return": TokReturn,
	"if":     TokIf,
	"else":   TokElse,
	"def":    TokDef,
	"print":  TokPrint,
	"and":    TokAnd,
	"or":     TokOr,
	"not":    TokNot,
	"None":   TokNone,
	"True":   TokTrue,
	"False":  TokFalse,
}

// Equals reports whether two tokens have the same type and, for
// value-carrying tokens, the same payload.
func (t Token) Equals(other Token) bool {
	if t.Type != other.Type {
		return false
	}
	switch t.Type {
	case TokNumber:
		return t.Num == other.Num
	case TokIdent, TokString:
		return t.Text == other.Text
	case TokChar:
		return t.Ch == other.Ch
	}
	return true
}

var tokenNames = map[TokenType]string{
	TokClass:       "Class",
	TokReturn:      "Return",
	TokIf:          "If",
	TokElse:        "Else",
	TokDef:         "Def",
	TokPrint:       "Print",
	TokAnd:         "And",
	TokOr:          "Or",
	TokNot:         "Not",
	TokNone:        "None",
	TokTrue:        "True",
	TokFalse:       "False",
	TokNewline:     "Newline",
	TokIndent:      "Indent",
	TokDedent:      "Dedent",
	TokEOF:         "Eof",
	TokEq:          "Eq",
	TokNotEq:       "NotEq",
	TokLessOrEq:    "LessOrEq",
	TokGreaterOrEq: "GreaterOrEq",
}

// String renders the token type name for error messages.
func (tt TokenType) String() string {
	switch tt {
	case TokNumber:
		return "Number"
	case TokIdent:
		return "Id"
	case TokString:
		return "String"
	case TokChar:
		return "Char"
	}
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(tt))
}

// String renders the token for error messages and test failures.
func (t Token) String() string {
	switch t.Type {
	case TokNumber:
		return fmt.Sprintf("Number{%d}", t.Num)
	case TokIdent:
		return fmt.Sprintf("Id{%s}", t.Text)
	case TokString:
		return fmt.Sprintf("String{%s}", t.Text)
	case TokChar:
		return fmt.Sprintf("Char{%c}", t.Ch)
	}
	return t.Type.String()
}
