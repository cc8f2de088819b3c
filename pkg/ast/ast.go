package ast

// Span bounds a node in the source text as a byte-offset pair. Spans are
// purely informational: diagnostics use them, evaluation never does.
type Span struct {
	Start int
	End   int
}

// Node is the behaviour shared by every syntax-tree node.
type Node interface {
	Span() Span
}

// Expression is implemented by every node that evaluates to a literal value.
type Expression interface {
	Node
	expressionNode()
}

// Operator identifies a strict (non-short-circuiting) binary operator.
// Equality and inequality apply to any two literals; the ordering and
// arithmetic operators require integer operands.
type Operator string

const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpAdd          Operator = "+"
	OpSubtract     Operator = "-"
	OpMultiply     Operator = "*"
	OpDivide       Operator = "/"
	OpModulo       Operator = "%"
)

// LogicalOperator identifies a lazily evaluated boolean connective.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "&&"
	LogicalOr  LogicalOperator = "||"
)

//-----------------------------------------------------------------------------
// Literals and names
//-----------------------------------------------------------------------------

type StringLiteral struct {
	Value    string
	NodeSpan Span
}

func (n *StringLiteral) Span() Span      { return n.NodeSpan }
func (n *StringLiteral) expressionNode() {}

type IntegerLiteral struct {
	Value    int64
	NodeSpan Span
}

func (n *IntegerLiteral) Span() Span      { return n.NodeSpan }
func (n *IntegerLiteral) expressionNode() {}

type BooleanLiteral struct {
	Value    bool
	NodeSpan Span
}

func (n *BooleanLiteral) Span() Span      { return n.NodeSpan }
func (n *BooleanLiteral) expressionNode() {}

// Identifier references a variable binding by name.
type Identifier struct {
	Name     string
	NodeSpan Span
}

func (n *Identifier) Span() Span      { return n.NodeSpan }
func (n *Identifier) expressionNode() {}

//-----------------------------------------------------------------------------
// Bindings
//-----------------------------------------------------------------------------

// DeclareExpression binds a new name in the current innermost scope (`:=`),
// shadowing any identically named binding in an outer scope.
type DeclareExpression struct {
	Name     string
	Value    Expression
	NodeSpan Span
}

func (n *DeclareExpression) Span() Span      { return n.NodeSpan }
func (n *DeclareExpression) expressionNode() {}

// AssignExpression mutates an already declared name in the nearest enclosing
// scope (`=`). Assigning an undeclared name is a runtime error.
type AssignExpression struct {
	Name     string
	Value    Expression
	NodeSpan Span
}

func (n *AssignExpression) Span() Span      { return n.NodeSpan }
func (n *AssignExpression) expressionNode() {}

//-----------------------------------------------------------------------------
// Compound expressions
//-----------------------------------------------------------------------------

// BlockExpression evaluates its body in a freshly entered nested scope. An
// empty body yields the unit tuple; otherwise the value is that of the last
// expression.
type BlockExpression struct {
	Body     []Expression
	NodeSpan Span
}

func (n *BlockExpression) Span() Span      { return n.NodeSpan }
func (n *BlockExpression) expressionNode() {}

type BinaryExpression struct {
	Operator Operator
	Left     Expression
	Right    Expression
	NodeSpan Span
}

func (n *BinaryExpression) Span() Span      { return n.NodeSpan }
func (n *BinaryExpression) expressionNode() {}

// LogicalExpression is `&&` or `||`. The right operand is only evaluated when
// the left operand does not already decide the result.
type LogicalExpression struct {
	Operator LogicalOperator
	Left     Expression
	Right    Expression
	NodeSpan Span
}

func (n *LogicalExpression) Span() Span      { return n.NodeSpan }
func (n *LogicalExpression) expressionNode() {}

type NotExpression struct {
	Operand  Expression
	NodeSpan Span
}

func (n *NotExpression) Span() Span      { return n.NodeSpan }
func (n *NotExpression) expressionNode() {}

// IfExpression holds plain sequences rather than blocks: the chosen branch is
// evaluated directly in the current scope. Only an explicit BlockExpression
// introduces a new scope.
type IfExpression struct {
	Condition Expression
	Then      []Expression
	Else      []Expression
	NodeSpan  Span
}

func (n *IfExpression) Span() Span      { return n.NodeSpan }
func (n *IfExpression) expressionNode() {}

// TupleExpression constructs a tuple of its evaluated elements, including the
// zero-element unit tuple.
type TupleExpression struct {
	Elements []Expression
	NodeSpan Span
}

func (n *TupleExpression) Span() Span      { return n.NodeSpan }
func (n *TupleExpression) expressionNode() {}

// CallExpression invokes a named function with positional arguments.
type CallExpression struct {
	Name      string
	Arguments []Expression
	NodeSpan  Span
}

func (n *CallExpression) Span() Span      { return n.NodeSpan }
func (n *CallExpression) expressionNode() {}

//-----------------------------------------------------------------------------
// Declarations
//-----------------------------------------------------------------------------

// Parameter is a declared function parameter. TypeName carries an optional
// annotation that the runtime does not enforce.
type Parameter struct {
	Name     string
	TypeName string
	NodeSpan Span
}

func (n *Parameter) Span() Span { return n.NodeSpan }

type FunctionDefinition struct {
	Name       string
	Parameters []*Parameter
	Body       []Expression
	NodeSpan   Span
}

func (n *FunctionDefinition) Span() Span { return n.NodeSpan }

// Program is an ordered collection of function definitions. A runnable
// program defines a zero-argument function named "main".
type Program struct {
	Functions []*FunctionDefinition
	NodeSpan  Span
}

func (n *Program) Span() Span { return n.NodeSpan }
