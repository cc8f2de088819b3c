package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"iku/interpreter-go/pkg/interpreter"
	"iku/interpreter-go/pkg/lexer"
)

func TestParseGlobalFlags(t *testing.T) {
	opts, rest, err := parseGlobalFlags([]string{"--verbose", "--log-file=/tmp/iku.log", "run", "prog.iku"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.verbose || opts.logFile != "/tmp/iku.log" {
		t.Fatalf("options %+v", opts)
	}
	if len(rest) != 2 || rest[0] != "run" {
		t.Fatalf("remaining args %v", rest)
	}

	if _, _, err := parseGlobalFlags([]string{"--log-file="}); err == nil {
		t.Fatal("empty --log-file must be rejected")
	}
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.iku")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunEntryExitCodes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"clean run", "func main() { }", 0},
		{"runtime failure", "func main() { 1 / 0 }", 1},
		{"parse failure", "func main() {", 1},
		{"lex failure", "func main() { @ }", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := runEntry([]string{writeProgram(t, tc.src)}); got != tc.want {
				t.Fatalf("exit code %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRunEntryRejectsMissingFile(t *testing.T) {
	if got := runEntry([]string{filepath.Join(t.TempDir(), "absent.iku")}); got != 1 {
		t.Fatalf("exit code %d, want 1", got)
	}
}

func TestDescribeErrorLabelsStages(t *testing.T) {
	got := describeError(&interpreter.Error{Message: "division by zero"})
	if got != "runtime error: division by zero" {
		t.Fatalf("describeError = %q", got)
	}
	got = describeError(&lexer.LexError{Message: "unrecognized characters at offset 2"})
	if !strings.HasPrefix(got, "lex error:") {
		t.Fatalf("describeError = %q, want the lex stage label", got)
	}
}
