package interpreter

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"iku/interpreter-go/pkg/parser"
)

// execFixture is one end-to-end scenario: a complete program, the exact
// stdout it must produce, and the runtime error it must end with, if any.
type execFixture struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadFixtures(t *testing.T, path string) []execFixture {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var fixtures []execFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return fixtures
}

func TestExecFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixture files under testdata")
	}
	for _, path := range paths {
		for _, fx := range loadFixtures(t, path) {
			t.Run(fx.Name, func(t *testing.T) {
				program, err := parser.Parse(fx.Source)
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				ctx := &captureContext{}
				_, err = Interpret(ctx, program)
				if fx.Error == "" {
					if err != nil {
						t.Fatalf("Interpret: %v", err)
					}
				} else if err == nil || err.Error() != fx.Error {
					t.Fatalf("error %v, want %q", err, fx.Error)
				}
				if got := ctx.out.String(); got != fx.Output {
					t.Fatalf("output %q, want %q", got, fx.Output)
				}
			})
		}
	}
}
