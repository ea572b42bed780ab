package tests

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// buildLox compiles ./cmd/lox into a temp binary shared by every subtest.
func buildLox(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	binaryPath := filepath.Join(t.TempDir(), "lox-test-binary")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/lox")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}
	return binaryPath
}

// runLox runs the built binary against source read from stdin, with the
// given backend flag ("--tree" or "--vm"), and returns trimmed stdout,
// trimmed stderr and the exit code.
func runLox(t *testing.T, binaryPath, backendFlag, source string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, backendFlag, "-")
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run binary: %v", err)
		}
	}
	return strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), exitCode
}

// TestEndToEndScenarios drives spec.md §8's six positive scenarios
// through both backends and checks byte-identical stdout, the quantified
// invariant §8 opens with.
func TestEndToEndScenarios(t *testing.T) {
	binaryPath := buildLox(t)

	scenarios := []struct {
		name   string
		source string
		want   string
	}{
		{"arithmetic_precedence", `print 1 + 2 * 3;`, "7"},
		{"string_concat", `var a = "foo"; var b = "bar"; print a + b;`, "foobar"},
		{"recursive_fib", `fun fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(10);`, "55"},
		{"closure_over_popped_scope", `var f; { var x = 1; fun g() { return x; } f = g; } print f();`, "1"},
		{"inherited_method", `class A { greet() { print "hi"; } } class B < A {} B().greet();`, "hi"},
		{"init_returns_this_field", `class C { init(x) { this.x = x; } } print C(7).x;`, "7"},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			treeOut, treeErr, treeCode := runLox(t, binaryPath, "--tree", sc.source)
			if treeCode != 0 {
				t.Fatalf("tree-walk exited %d, stderr: %s", treeCode, treeErr)
			}
			if treeOut != sc.want {
				t.Errorf("tree-walk: got %q, want %q", treeOut, sc.want)
			}

			vmOut, vmErr, vmCode := runLox(t, binaryPath, "--vm", sc.source)
			if vmCode != 0 {
				t.Fatalf("vm exited %d, stderr: %s", vmCode, vmErr)
			}
			if vmOut != sc.want {
				t.Errorf("vm: got %q, want %q", vmOut, sc.want)
			}

			if treeOut != vmOut {
				t.Errorf("backends disagree: tree-walk %q, vm %q", treeOut, vmOut)
			}
		})
	}
}

// TestNegativeScenarios checks spec.md §8's four error scenarios: a
// stderr substring and an exact exit code, per backend.
func TestNegativeScenarios(t *testing.T) {
	binaryPath := buildLox(t)

	var manyConstants strings.Builder
	for i := 0; i < 257; i++ {
		manyConstants.WriteString("print ")
		manyConstants.WriteString(strconv.Itoa(i))
		manyConstants.WriteString(".5;\n")
	}

	scenarios := []struct {
		name       string
		source     string
		wantSubstr string
		wantExit   int
		vmOnly     bool
	}{
		{"negate_non_number", `print -"x";`, "Operand must be a number.", 70, false},
		{"undefined_variable", `var a; a = b;`, "Undefined variable 'b'.", 70, false},
		{"top_level_return", `return 1;`, "Can't return from top-level code", 65, false},
		{"too_many_constants", manyConstants.String(), "Too many constants in one chunk.", 65, true},
	}

	for _, sc := range scenarios {
		backends := []string{"--tree", "--vm"}
		if sc.vmOnly {
			backends = []string{"--vm"}
		}
		for _, backend := range backends {
			t.Run(sc.name+"_"+strings.TrimPrefix(backend, "--"), func(t *testing.T) {
				_, stderr, exitCode := runLox(t, binaryPath, backend, sc.source)
				if exitCode != sc.wantExit {
					t.Errorf("exit code: got %d, want %d (stderr: %s)", exitCode, sc.wantExit, stderr)
				}
				if !strings.Contains(stderr, sc.wantSubstr) {
					t.Errorf("stderr %q does not contain %q", stderr, sc.wantSubstr)
				}
			})
		}
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
