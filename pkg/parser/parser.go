// Package parser turns the lexer's token stream into the syntax tree the
// interpreter walks. The grammar is deliberately small: a program is a list
// of function definitions whose bodies are semicolon-separated expression
// sequences, with standard operator precedence for binary expressions.
package parser

import (
	"fmt"
	"io"

	"iku/interpreter-go/pkg/ast"
	"iku/interpreter-go/pkg/lexer"
)

// ParseError reports a syntactically invalid token, carrying its span for
// diagnostics.
type ParseError struct {
	Span    ast.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Span.Start, e.Message)
}

// Parse lexes and parses a complete program.
func Parse(src string) (*ast.Program, error) {
	lx := lexer.New(src)
	var spans []lexer.Span
	for {
		span, err := lx.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	p := &parser{spans: spans, srcLen: len(src)}
	return p.parseProgram()
}

type parser struct {
	spans  []lexer.Span
	pos    int
	srcLen int
}

func (p *parser) current() lexer.Span {
	if p.pos < len(p.spans) {
		return p.spans[p.pos]
	}
	end := lexer.Location(p.srcLen)
	return lexer.Span{Start: end, Tok: lexer.Token{Kind: lexer.TokenEOF}, End: end}
}

func (p *parser) peek(ahead int) lexer.Token {
	if p.pos+ahead < len(p.spans) {
		return p.spans[p.pos+ahead].Tok
	}
	return lexer.Token{Kind: lexer.TokenEOF}
}

func (p *parser) at(kind lexer.TokenKind) bool {
	return p.current().Tok.Kind == kind
}

func (p *parser) advance() lexer.Span {
	span := p.current()
	p.pos++
	return span
}

func (p *parser) expect(kind lexer.TokenKind, what string) (lexer.Span, error) {
	if !p.at(kind) {
		return lexer.Span{}, p.errorf("expected %s, found %s", what, p.current().Tok)
	}
	return p.advance(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	span := p.current()
	return &ParseError{
		Span:    ast.Span{Start: int(span.Start), End: int(span.End)},
		Message: fmt.Sprintf(format, args...),
	}
}

func spanBetween(start, end lexer.Span) ast.Span {
	return ast.Span{Start: int(start.Start), End: int(end.End)}
}

func exprSpan(start lexer.Span, expr ast.Expression) ast.Span {
	return ast.Span{Start: int(start.Start), End: expr.Span().End}
}

//-----------------------------------------------------------------------------
// Declarations
//-----------------------------------------------------------------------------

func (p *parser) parseProgram() (*ast.Program, error) {
	program := &ast.Program{NodeSpan: ast.Span{End: p.srcLen}}
	for {
		for p.at(lexer.TokenSemicolon) {
			p.advance()
		}
		if p.at(lexer.TokenEOF) {
			return program, nil
		}
		fn, err := p.parseFunctionDefinition()
		if err != nil {
			return nil, err
		}
		program.Functions = append(program.Functions, fn)
	}
}

func (p *parser) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	start, err := p.expect(lexer.TokenFunc, "'func'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.TokenName, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseBracedSequence()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{
		Name:       name.Tok.Text,
		Parameters: params,
		Body:       body,
		NodeSpan:   spanBetween(start, end),
	}, nil
}

func (p *parser) parseParameterList() ([]*ast.Parameter, error) {
	if _, err := p.expect(lexer.TokenOpenParen, "'('"); err != nil {
		return nil, err
	}
	params := []*ast.Parameter{}
	for !p.at(lexer.TokenCloseParen) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(lexer.TokenName, "parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Name: name.Tok.Text, NodeSpan: spanBetween(name, name)}
		// Optional type annotation; recorded but never enforced.
		if p.at(lexer.TokenColon) {
			p.advance()
			typeName, err := p.expect(lexer.TokenName, "type name")
			if err != nil {
				return nil, err
			}
			param.TypeName = typeName.Tok.Text
			param.NodeSpan = spanBetween(name, typeName)
		}
		params = append(params, param)
	}
	p.advance()
	return params, nil
}

// parseBracedSequence parses `{ expr ; expr ; ... }`. Semicolons may be
// explicit or synthesized by the lexer; empty statements are tolerated so
// automatic insertion never produces a spurious parse error.
func (p *parser) parseBracedSequence() ([]ast.Expression, lexer.Span, error) {
	if _, err := p.expect(lexer.TokenOpenBrace, "'{'"); err != nil {
		return nil, lexer.Span{}, err
	}
	body, err := p.parseSequence()
	if err != nil {
		return nil, lexer.Span{}, err
	}
	end, err := p.expect(lexer.TokenCloseBrace, "';' or '}'")
	if err != nil {
		return nil, lexer.Span{}, err
	}
	return body, end, nil
}

func (p *parser) parseSequence() ([]ast.Expression, error) {
	var body []ast.Expression
	for {
		for p.at(lexer.TokenSemicolon) {
			p.advance()
		}
		if p.at(lexer.TokenCloseBrace) || p.at(lexer.TokenEOF) {
			return body, nil
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = append(body, expr)
		if !p.at(lexer.TokenSemicolon) {
			return body, nil
		}
	}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (p *parser) parseExpression() (ast.Expression, error) {
	if p.at(lexer.TokenName) {
		switch p.peek(1).Kind {
		case lexer.TokenDefine:
			name := p.advance()
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.DeclareExpression{
				Name:     name.Tok.Text,
				Value:    value,
				NodeSpan: exprSpan(name, value),
			}, nil
		case lexer.TokenAssign:
			name := p.advance()
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.AssignExpression{
				Name:     name.Tok.Text,
				Value:    value,
				NodeSpan: exprSpan(name, value),
			}, nil
		}
	}
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Expression, error) {
	return p.parseLogical(lexer.TokenOr, ast.LogicalOr, p.parseAnd)
}

func (p *parser) parseAnd() (ast.Expression, error) {
	return p.parseLogical(lexer.TokenAnd, ast.LogicalAnd, p.parseEquality)
}

func (p *parser) parseLogical(kind lexer.TokenKind, op ast.LogicalOperator, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.at(kind) {
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpression{
			Operator: op,
			Left:     left,
			Right:    right,
			NodeSpan: ast.Span{Start: left.Span().Start, End: right.Span().End},
		}
	}
	return left, nil
}

var binaryOperators = map[lexer.TokenKind]ast.Operator{
	lexer.TokenEqual:        ast.OpEqual,
	lexer.TokenNotEqual:     ast.OpNotEqual,
	lexer.TokenLess:         ast.OpLess,
	lexer.TokenLessEqual:    ast.OpLessEqual,
	lexer.TokenGreater:      ast.OpGreater,
	lexer.TokenGreaterEqual: ast.OpGreaterEqual,
	lexer.TokenPlus:         ast.OpAdd,
	lexer.TokenMinus:        ast.OpSubtract,
	lexer.TokenStar:         ast.OpMultiply,
	lexer.TokenSlash:        ast.OpDivide,
	lexer.TokenPercent:      ast.OpModulo,
}

func (p *parser) parseBinary(kinds []lexer.TokenKind, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, kind := range kinds {
			if !p.at(kind) {
				continue
			}
			p.advance()
			right, err := next()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpression{
				Operator: binaryOperators[kind],
				Left:     left,
				Right:    right,
				NodeSpan: ast.Span{Start: left.Span().Start, End: right.Span().End},
			}
			matched = true
			break
		}
		if !matched {
			return left, nil
		}
	}
}

func (p *parser) parseEquality() (ast.Expression, error) {
	return p.parseBinary([]lexer.TokenKind{lexer.TokenEqual, lexer.TokenNotEqual}, p.parseComparison)
}

func (p *parser) parseComparison() (ast.Expression, error) {
	return p.parseBinary([]lexer.TokenKind{
		lexer.TokenLess, lexer.TokenLessEqual, lexer.TokenGreater, lexer.TokenGreaterEqual,
	}, p.parseAdditive)
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinary([]lexer.TokenKind{lexer.TokenPlus, lexer.TokenMinus}, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinary([]lexer.TokenKind{lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent}, p.parseUnary)
}

func (p *parser) parseUnary() (ast.Expression, error) {
	if p.at(lexer.TokenBang) {
		bang := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpression{Operand: operand, NodeSpan: exprSpan(bang, operand)}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	span := p.current()
	switch span.Tok.Kind {
	case lexer.TokenInt:
		p.advance()
		return &ast.IntegerLiteral{Value: span.Tok.Int, NodeSpan: spanBetween(span, span)}, nil
	case lexer.TokenString:
		p.advance()
		return &ast.StringLiteral{Value: span.Tok.Text, NodeSpan: spanBetween(span, span)}, nil
	case lexer.TokenBool:
		p.advance()
		return &ast.BooleanLiteral{Value: span.Tok.Bool, NodeSpan: spanBetween(span, span)}, nil
	case lexer.TokenName:
		p.advance()
		if p.at(lexer.TokenOpenParen) {
			return p.parseCall(span)
		}
		return &ast.Identifier{Name: span.Tok.Text, NodeSpan: spanBetween(span, span)}, nil
	case lexer.TokenOpenParen:
		return p.parseParenthesized()
	case lexer.TokenOpenBrace:
		body, end, err := p.parseBracedSequence()
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpression{Body: body, NodeSpan: spanBetween(span, end)}, nil
	case lexer.TokenIf:
		return p.parseIf()
	default:
		return nil, p.errorf("expected an expression, found %s", span.Tok)
	}
}

func (p *parser) parseCall(name lexer.Span) (ast.Expression, error) {
	p.advance()
	args := []ast.Expression{}
	for !p.at(lexer.TokenCloseParen) {
		if len(args) > 0 {
			if _, err := p.expect(lexer.TokenComma, "','"); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	end := p.advance()
	return &ast.CallExpression{
		Name:      name.Tok.Text,
		Arguments: args,
		NodeSpan:  spanBetween(name, end),
	}, nil
}

// parseParenthesized handles grouping and tuple construction: `(e)` is the
// inner expression, `()` the empty tuple, `(e,)` a one-element tuple, and
// `(a, b)` a longer one. The trailing comma is what makes a single element a
// tuple instead of a grouped expression.
func (p *parser) parseParenthesized() (ast.Expression, error) {
	open := p.advance()
	if p.at(lexer.TokenCloseParen) {
		end := p.advance()
		return &ast.TupleExpression{NodeSpan: spanBetween(open, end)}, nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenComma) {
		if _, err := p.expect(lexer.TokenCloseParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []ast.Expression{first}
	for p.at(lexer.TokenComma) {
		p.advance()
		if p.at(lexer.TokenCloseParen) {
			break
		}
		element, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	end, err := p.expect(lexer.TokenCloseParen, "')'")
	if err != nil {
		return nil, err
	}
	return &ast.TupleExpression{Elements: elements, NodeSpan: spanBetween(open, end)}, nil
}

func (p *parser) parseIf() (ast.Expression, error) {
	start := p.advance()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	thenSeq, end, err := p.parseBracedSequence()
	if err != nil {
		return nil, err
	}
	node := &ast.IfExpression{
		Condition: condition,
		Then:      thenSeq,
		NodeSpan:  spanBetween(start, end),
	}
	if p.at(lexer.TokenElse) {
		p.advance()
		if p.at(lexer.TokenIf) {
			chained, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.Else = []ast.Expression{chained}
			node.NodeSpan.End = chained.Span().End
		} else {
			elseSeq, elseEnd, err := p.parseBracedSequence()
			if err != nil {
				return nil, err
			}
			node.Else = elseSeq
			node.NodeSpan.End = int(elseEnd.End)
		}
	}
	return node, nil
}
