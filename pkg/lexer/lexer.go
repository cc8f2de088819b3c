package lexer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexError reports an unscannable run of characters. The lexer does not
// resynchronize: after a LexError the pass is over and Next returns io.EOF.
type LexError struct {
	Offset  Location
	Message string
}

func (e *LexError) Error() string { return e.Message }

// fixedPattern is one entry of the precomputed pattern set for symbols and
// keywords. Entries sharing a prefix are ordered longest first, so the most
// specific match wins. Word entries (keywords and booleans) only match when
// not followed by a word character, keeping them distinct from identifiers
// that merely start with the same letters.
type fixedPattern struct {
	text      string
	kind      TokenKind
	word      bool
	boolValue bool
}

var fixedPatterns = []fixedPattern{
	{text: "{", kind: TokenOpenBrace},
	{text: "}", kind: TokenCloseBrace},
	{text: "(", kind: TokenOpenParen},
	{text: ")", kind: TokenCloseParen},
	{text: ";", kind: TokenSemicolon},
	{text: ",", kind: TokenComma},
	{text: ":=", kind: TokenDefine},
	{text: ":", kind: TokenColon},
	{text: "==", kind: TokenEqual},
	{text: "=", kind: TokenAssign},
	{text: "!=", kind: TokenNotEqual},
	{text: "!", kind: TokenBang},
	{text: "<=", kind: TokenLessEqual},
	{text: "<", kind: TokenLess},
	{text: ">=", kind: TokenGreaterEqual},
	{text: ">", kind: TokenGreater},
	{text: "&&", kind: TokenAnd},
	{text: "||", kind: TokenOr},
	{text: "+", kind: TokenPlus},
	{text: "-", kind: TokenMinus},
	{text: "*", kind: TokenStar},
	{text: "/", kind: TokenSlash},
	{text: "%", kind: TokenPercent},
	{text: "true", kind: TokenBool, word: true, boolValue: true},
	{text: "false", kind: TokenBool, word: true},
	{text: "func", kind: TokenFunc, word: true},
	{text: "if", kind: TokenIf, word: true},
	{text: "else", kind: TokenElse, word: true},
}

var (
	// skipPattern consumes a run of whitespace and line comments.
	skipPattern   = regexp.MustCompile(`^((//[^\n]*)|\s)+`)
	namePattern   = regexp.MustCompile(`^[a-z][\p{L}\p{N}_]*`)
	stringPattern = regexp.MustCompile(`^"([^"]*)"`)
	intPattern    = regexp.MustCompile(`^-?[0-9]+`)
)

// Lexer turns source text into a lazy sequence of spans, consumable once,
// front to back. Restarting means constructing a new Lexer.
type Lexer struct {
	src string
	pos int
	// canInsertSemi is true right after a token that can legally end a
	// statement; a newline in the following skip run then becomes a
	// synthetic semicolon.
	canInsertSemi bool
}

// New constructs a lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next span. It returns io.EOF once the input is exhausted
// and a *LexError when the remaining input cannot be scanned; either way no
// further tokens are produced in this pass.
func (l *Lexer) Next() (Span, error) {
	span, err := l.advance()
	if err != nil {
		return span, err
	}
	switch span.Tok.Kind {
	case TokenCloseParen, TokenCloseBrace, TokenInt, TokenString, TokenName:
		l.canInsertSemi = true
	default:
		l.canInsertSemi = false
	}
	return span, nil
}

// advance is Next without the statement-termination bookkeeping.
func (l *Lexer) advance() (Span, error) {
	if m := skipPattern.FindString(l.src[l.pos:]); m != "" {
		start := l.pos
		l.pos += len(m)
		// A newline inside the skipped run terminates the pending
		// statement. Consecutive newlines collapse into one semicolon,
		// spanning the whole gap.
		if l.canInsertSemi && strings.Contains(m, "\n") {
			return l.span(start, Token{Kind: TokenSemicolon, Text: ";"}), nil
		}
	}
	if l.pos >= len(l.src) {
		return Span{}, io.EOF
	}

	rest := l.src[l.pos:]
	for _, pat := range fixedPatterns {
		if !strings.HasPrefix(rest, pat.text) {
			continue
		}
		// A minus directly followed by a digit belongs to a signed
		// integer literal.
		if pat.kind == TokenMinus && startsWithDigit(rest[1:]) {
			continue
		}
		if pat.word && startsWithWordChar(rest[len(pat.text):]) {
			continue
		}
		start := l.pos
		l.pos += len(pat.text)
		return l.span(start, Token{Kind: pat.kind, Text: pat.text, Bool: pat.boolValue}), nil
	}

	if m := namePattern.FindString(rest); m != "" {
		start := l.pos
		l.pos += len(m)
		return l.span(start, Token{Kind: TokenName, Text: m}), nil
	}

	if m := stringPattern.FindStringSubmatch(rest); m != nil {
		start := l.pos
		l.pos += len(m[0])
		return l.span(start, Token{Kind: TokenString, Text: decodeStringLiteral(m[1])}), nil
	}

	if m := intPattern.FindString(rest); m != "" {
		start := l.pos
		value, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			l.pos = len(l.src)
			return Span{}, &LexError{
				Offset:  Location(start),
				Message: fmt.Sprintf("integer literal out of range at offset %d", start),
			}
		}
		l.pos += len(m)
		return l.span(start, Token{Kind: TokenInt, Text: m, Int: value}), nil
	}

	// Nothing matched: the rest of the input is one lexical error and the
	// pass stops here.
	offset := l.pos
	l.pos = len(l.src)
	return Span{}, &LexError{
		Offset:  Location(offset),
		Message: fmt.Sprintf("unrecognized characters at offset %d", offset),
	}
}

func (l *Lexer) span(start int, tok Token) Span {
	return Span{Start: Location(start), Tok: tok, End: Location(l.pos)}
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func startsWithWordChar(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// decodeStringLiteral resolves escape sequences in the interior of a string
// literal; the delimiting quotes have already been stripped by the matcher.
// A backslash before any character outside the escape set passes through as
// backslash plus that character rather than failing.
func decodeStringLiteral(raw string) string {
	var b strings.Builder
	escaping := false
	for _, c := range raw {
		if !escaping {
			if c == '\\' {
				escaping = true
			} else {
				b.WriteRune(c)
			}
			continue
		}
		escaping = false
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteRune(c)
		}
	}
	return b.String()
}
