package interpreter

import (
	"fmt"
	"io"
)

// Context is the capability the evaluator uses for observable output. It is
// injected so the same evaluation logic can run against standard output or an
// in-memory capture buffer. Print must not fail.
type Context interface {
	Print(data string)
}

// WriterContext emits program output to a writer. The CLI wires it to
// os.Stdout.
type WriterContext struct {
	W io.Writer
}

func (c WriterContext) Print(data string) {
	fmt.Fprint(c.W, data)
}
