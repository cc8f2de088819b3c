package lexer

import "fmt"

// TokenKind identifies the token category.
type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenEOF
	TokenOpenBrace
	TokenCloseBrace
	TokenOpenParen
	TokenCloseParen
	TokenSemicolon
	TokenComma
	TokenColon
	TokenDefine // :=
	TokenAssign // =
	TokenEqual
	TokenNotEqual
	TokenLessEqual
	TokenLess
	TokenGreaterEqual
	TokenGreater
	TokenAnd
	TokenOr
	TokenBang
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenFunc
	TokenIf
	TokenElse
	TokenBool
	TokenString
	TokenInt
	TokenName
)

// Token is a single lexed element. Text holds the matched source text for
// fixed tokens and identifiers, and the already-decoded contents for string
// literals. Int and Bool carry the value of the corresponding literal kinds.
// Tokens are immutable once produced.
type Token struct {
	Kind TokenKind
	Text string
	Int  int64
	Bool bool
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenName:
		return fmt.Sprintf("identifier %q", t.Text)
	case TokenString:
		return fmt.Sprintf("string literal %q", t.Text)
	case TokenInt:
		return fmt.Sprintf("integer literal %d", t.Int)
	case TokenBool:
		return fmt.Sprintf("boolean literal %t", t.Bool)
	default:
		return fmt.Sprintf("'%s'", t.Text)
	}
}

// Location is a byte offset into the source text.
type Location int

// Span is what the lexer produces: a token bounded by its start and end
// offsets.
type Span struct {
	Start Location
	Tok   Token
	End   Location
}
