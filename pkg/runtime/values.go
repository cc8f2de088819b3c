package runtime

import (
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBool
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBool:
		return "boolean"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is the shared behaviour of all runtime values. A Value is always
// fully evaluated; it never contains unevaluated expressions.
type Value interface {
	Kind() Kind
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// TupleValue is an ordered, possibly empty sequence of values.
type TupleValue struct {
	Elements []Value
}

func (v *TupleValue) Kind() Kind { return KindTuple }

// Unit is the zero-element tuple, the result of empty blocks, empty function
// bodies, and print.
var Unit Value = &TupleValue{}

// Equal reports structural equality, defined recursively over tuples.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case IntegerValue:
		bv, ok := b.(IntegerValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Format renders a value for display. Strings render as their raw contents,
// integers in decimal, booleans as true/false. Tuples are parenthesized and
// comma-separated; a single-element tuple keeps a trailing comma, as in
// "(1,)", to distinguish it from a parenthesized expression, and the empty
// tuple renders as "()".
func Format(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return val.Val
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case *TupleValue:
		var b strings.Builder
		b.WriteByte('(')
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Format(el))
		}
		if len(val.Elements) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "<invalid>"
	}
}
