package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"iku/interpreter-go/pkg/interpreter"
	"iku/interpreter-go/pkg/lexer"
	"iku/interpreter-go/pkg/parser"
	"iku/interpreter-go/pkg/runtime"
)

func runEntry(args []string) int {
	if len(args) != 1 {
		printUsage()
		return 1
	}
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	program, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, describeError(err))
		return 1
	}
	slog.Debug("parsed program", "path", path, "functions", len(program.Functions))

	start := time.Now()
	result, err := interpreter.Interpret(interpreter.WriterContext{W: os.Stdout}, program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, describeError(err))
		return 1
	}
	slog.Debug("program finished",
		"path", path,
		"elapsed", time.Since(start),
		"result", runtime.Format(result))
	return 0
}

// describeError labels the failing stage so the message reads well after the
// file path prefix.
func describeError(err error) string {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var runErr *interpreter.Error
	switch {
	case errors.As(err, &lexErr):
		return fmt.Sprintf("lex error: %s", lexErr.Message)
	case errors.As(err, &parseErr):
		return parseErr.Error()
	case errors.As(err, &runErr):
		return fmt.Sprintf("runtime error: %s", runErr.Message)
	default:
		return err.Error()
	}
}
