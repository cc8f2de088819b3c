package parser

import (
	"errors"
	"strings"
	"testing"

	"iku/interpreter-go/pkg/ast"
	"iku/interpreter-go/pkg/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return program
}

// mainBody parses a program with a single main function and returns its body.
func mainBody(t *testing.T, body string) []ast.Expression {
	t.Helper()
	program := parseProgram(t, "func main() { "+body+" }")
	if len(program.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(program.Functions))
	}
	return program.Functions[0].Body
}

// mainExpr is mainBody for a single-expression body.
func mainExpr(t *testing.T, body string) ast.Expression {
	t.Helper()
	exprs := mainBody(t, body)
	if len(exprs) != 1 {
		t.Fatalf("got %d expressions, want 1", len(exprs))
	}
	return exprs[0]
}

func TestParseSimpleProgram(t *testing.T) {
	program := parseProgram(t, "func main() { print(2) }")
	fn := program.Functions[0]
	if fn.Name != "main" || len(fn.Parameters) != 0 {
		t.Fatalf("unexpected function header: %+v", fn)
	}
	call, ok := fn.Body[0].(*ast.CallExpression)
	if !ok || call.Name != "print" || len(call.Arguments) != 1 {
		t.Fatalf("unexpected body: %+v", fn.Body)
	}
	lit, ok := call.Arguments[0].(*ast.IntegerLiteral)
	if !ok || lit.Value != 2 {
		t.Fatalf("unexpected argument: %+v", call.Arguments[0])
	}
}

func TestParseMultilineBodyUsesInsertedSemicolons(t *testing.T) {
	src := `
func main() {
	x := 2
	print(x)
}
`
	program := parseProgram(t, src)
	body := program.Functions[0].Body
	if len(body) != 2 {
		t.Fatalf("got %d statements, want 2", len(body))
	}
	if _, ok := body[0].(*ast.DeclareExpression); !ok {
		t.Fatalf("first statement is %T, want declaration", body[0])
	}
	if _, ok := body[1].(*ast.CallExpression); !ok {
		t.Fatalf("second statement is %T, want call", body[1])
	}
}

func TestParseFunctionParameters(t *testing.T) {
	program := parseProgram(t, "func foo(x: int, y) { } func main() { }")
	fn := program.Functions[0]
	if len(fn.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(fn.Parameters))
	}
	if fn.Parameters[0].Name != "x" || fn.Parameters[0].TypeName != "int" {
		t.Fatalf("first parameter: %+v", fn.Parameters[0])
	}
	if fn.Parameters[1].Name != "y" || fn.Parameters[1].TypeName != "" {
		t.Fatalf("second parameter: %+v", fn.Parameters[1])
	}
	if len(program.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(program.Functions))
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	// 16 / 2 * 2 + 1 parses as ((16 / 2) * 2) + 1.
	expr := mainExpr(t, "16 / 2 * 2 + 1")
	add, ok := expr.(*ast.BinaryExpression)
	if !ok || add.Operator != ast.OpAdd {
		t.Fatalf("top operator: %+v, want +", expr)
	}
	mul, ok := add.Left.(*ast.BinaryExpression)
	if !ok || mul.Operator != ast.OpMultiply {
		t.Fatalf("left of +: %+v, want *", add.Left)
	}
	div, ok := mul.Left.(*ast.BinaryExpression)
	if !ok || div.Operator != ast.OpDivide {
		t.Fatalf("left of *: %+v, want /", mul.Left)
	}
	if lit := div.Left.(*ast.IntegerLiteral); lit.Value != 16 {
		t.Fatalf("leftmost operand %d, want 16", lit.Value)
	}
}

func TestComparisonBindsTighterThanLogical(t *testing.T) {
	expr := mainExpr(t, "1 < 2 && x == 3 || y")
	or, ok := expr.(*ast.LogicalExpression)
	if !ok || or.Operator != ast.LogicalOr {
		t.Fatalf("top operator: %+v, want ||", expr)
	}
	and, ok := or.Left.(*ast.LogicalExpression)
	if !ok || and.Operator != ast.LogicalAnd {
		t.Fatalf("left of ||: %+v, want &&", or.Left)
	}
	if _, ok := and.Left.(*ast.BinaryExpression); !ok {
		t.Fatalf("left of &&: %T, want comparison", and.Left)
	}
}

func TestParseTupleForms(t *testing.T) {
	empty := mainExpr(t, "()").(*ast.TupleExpression)
	if len(empty.Elements) != 0 {
		t.Fatalf("() parsed with %d elements", len(empty.Elements))
	}

	single := mainExpr(t, "(1,)").(*ast.TupleExpression)
	if len(single.Elements) != 1 {
		t.Fatalf("(1,) parsed with %d elements", len(single.Elements))
	}

	pair := mainExpr(t, "(1, 2)").(*ast.TupleExpression)
	if len(pair.Elements) != 2 {
		t.Fatalf("(1, 2) parsed with %d elements", len(pair.Elements))
	}

	// Without the trailing comma, parentheses only group.
	if _, ok := mainExpr(t, "(1)").(*ast.IntegerLiteral); !ok {
		t.Fatal("(1) must parse as a grouped integer, not a tuple")
	}
}

func TestParseIfElse(t *testing.T) {
	expr := mainExpr(t, "if x == 1 { print(1) } else { print(2); print(3) }")
	node, ok := expr.(*ast.IfExpression)
	if !ok {
		t.Fatalf("got %T, want IfExpression", expr)
	}
	if len(node.Then) != 1 || len(node.Else) != 2 {
		t.Fatalf("branch lengths %d/%d, want 1/2", len(node.Then), len(node.Else))
	}
}

func TestParseElseIfChain(t *testing.T) {
	expr := mainExpr(t, "if a { } else if b { } else { }")
	node := expr.(*ast.IfExpression)
	if len(node.Else) != 1 {
		t.Fatalf("else branch length %d, want the chained if", len(node.Else))
	}
	if _, ok := node.Else[0].(*ast.IfExpression); !ok {
		t.Fatalf("chained else is %T, want IfExpression", node.Else[0])
	}
}

func TestParseBlockAndBindings(t *testing.T) {
	body := mainBody(t, "x := 2; { x := 3; print(x) }; x = 4")
	if len(body) != 3 {
		t.Fatalf("got %d statements, want 3", len(body))
	}
	decl := body[0].(*ast.DeclareExpression)
	if decl.Name != "x" {
		t.Fatalf("declared name %q, want x", decl.Name)
	}
	block := body[1].(*ast.BlockExpression)
	if len(block.Body) != 2 {
		t.Fatalf("block length %d, want 2", len(block.Body))
	}
	if _, ok := block.Body[0].(*ast.DeclareExpression); !ok {
		t.Fatalf("block statement is %T, want declaration", block.Body[0])
	}
	assign := body[2].(*ast.AssignExpression)
	if assign.Name != "x" {
		t.Fatalf("assigned name %q, want x", assign.Name)
	}
}

func TestParseNotExpression(t *testing.T) {
	expr := mainExpr(t, "!true")
	not, ok := expr.(*ast.NotExpression)
	if !ok {
		t.Fatalf("got %T, want NotExpression", expr)
	}
	if lit, ok := not.Operand.(*ast.BooleanLiteral); !ok || !lit.Value {
		t.Fatalf("operand %+v, want true literal", not.Operand)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"top level requires func", "print(2)", "expected 'func'"},
		{"unclosed call", "func main() { print(2 }", "expected ','"},
		{"missing brace", "func main() { print(2)", "';' or '}'"},
		{"else needs a branch", "func main() { if x { } else 2 }", "'{'"},
		{"missing separator", "func main() { print(1) print(2) }", "';' or '}'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if !strings.Contains(parseErr.Message, tc.want) {
				t.Fatalf("message %q does not mention %q", parseErr.Message, tc.want)
			}
		})
	}
}

func TestLexErrorsPropagate(t *testing.T) {
	_, err := Parse("func main() { @ }")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %v, want *lexer.LexError", err)
	}
}

func TestNodeSpansCoverTheirSource(t *testing.T) {
	src := "func main() { print(2) }"
	program := parseProgram(t, src)
	fn := program.Functions[0]
	if fn.Span().Start != 0 || fn.Span().End != len(src) {
		t.Fatalf("function span %+v, want 0..%d", fn.Span(), len(src))
	}
	call := fn.Body[0]
	if got := src[call.Span().Start:call.Span().End]; got != "print(2)" {
		t.Fatalf("call span covers %q, want %q", got, "print(2)")
	}
}
