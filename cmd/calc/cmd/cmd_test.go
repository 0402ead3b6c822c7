package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes the command line with a config that disables color.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "calc.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[output]\ncolor = false\n"), 0o644))

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestEvalArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single", []string{"eval", "2 + 3 * 4"}, "14\n"},
		{"several", []string{"eval", "2+3*4", "10/2-3"}, "14\n2\n"},
		{"echo", []string{"eval", "--echo", "10/2-3", "8-3-2"}, "10 2 / 3 - : 2\n8 3 - 2 - : 3\n"},
		{"fmt", []string{"eval", "--fmt", "%.2f", "1/3"}, "0.33\n"},
		{"fmt-text", []string{"eval", "--fmt", "= %g", "6*7"}, "= 42\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestEvalStdin(t *testing.T) {
	out, _, err := run(t, "2 +\n3\n", "eval")
	require.NoError(t, err)
	require.Equal(t, "5\n", out)

	out, _, err = run(t, "1+1\n\n2*3\n", "eval", "-n")
	require.NoError(t, err)
	require.Equal(t, "2\n6\n", out)

	out, _, err = run(t, "7\n", "eval", "--in", "-", "1+1")
	require.NoError(t, err)
	require.Equal(t, "7\n2\n", out)
}

func TestEvalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1+2\n3*4\n"), 0o644))
	out, _, err := run(t, "", "eval", "-n", "--in", path)
	require.NoError(t, err)
	require.Equal(t, "3\n12\n", out)

	_, _, err = run(t, "", "eval", "--in", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestEvalErrors(t *testing.T) {
	out, errOut, err := run(t, "", "eval", "5/0", "2+2")
	require.EqualError(t, err, "1 of 2 expressions failed")
	require.Equal(t, "4\n", out)
	require.Contains(t, errOut, "arg 1: 2: division by zero: 5 / 0\n    5/0\n     ^\n")

	_, errOut, err = run(t, "2+a\n2 3\n", "eval", "-n")
	require.EqualError(t, err, "2 of 2 expressions failed")
	require.Contains(t, errOut, `stdin:1: 3: invalid token "a"`)
	require.Contains(t, errOut, "stdin:2: 3: expression leaves 2 values, want 1")

	_, errOut, err = run(t, "   ", "eval")
	require.Error(t, err)
	require.Contains(t, errOut, "stdin: 4: no expression")

	_, _, err = run(t, "", "eval", "--fmt", "%d", "1")
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
name: good
cases:
  - {name: precedence, expr: "2+3*4", want: 14}
  - {name: div0, expr: "5/0", error: DivisionByZero}
`), 0o644))
	out, _, err := run(t, "", "batch", good)
	require.NoError(t, err)
	require.Contains(t, out, "run_id: ")
	require.Contains(t, out, "passed: 2")
	require.Contains(t, out, "failed: 0")
	require.Contains(t, out, "postfix: 2 3 4 * +")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
cases:
  - {name: wrong, expr: "2+3*4", want: 20}
`), 0o644))
	out, _, err = run(t, "", "batch", bad)
	require.EqualError(t, err, "1 of 1 cases failed")
	require.Contains(t, out, "reason: want 20, got 14")

	_, _, err = run(t, "", "batch")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "calc v"+Version)
	require.Contains(t, out, "Go Version:")
}

func TestBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "calc.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[log]\nlevel = \"loud\"\n"), 0o644))
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "eval", "1"})
	require.Error(t, root.Execute())
}
