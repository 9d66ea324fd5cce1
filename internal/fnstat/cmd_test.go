package fnstat

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/fnkit/errors"
)

// executeCommand runs the root command with args and stdin and returns stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", writeConfig(t, "name: fnstat\n"), "--log-level", "disabled"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	if root.Use != "fnstat" {
		t.Errorf("root.Use = %q, want fnstat", root.Use)
	}
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"stats", "version"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
}

func TestStatsCommandStdin(t *testing.T) {
	out, err := executeCommand(t, "1\n2\n3\n4\n", "stats", "--predicate", "even")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "count: 2\nsum: 6\nmean: 3\nalternating_sum: -2\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestStatsCommandFilesAndJSON(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("1\n-2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("# more\n3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "", "stats", "--json", "--min", "0", "--scale", "10", a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var r Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if r.Count != 2 || r.Sum != 40 || r.Mean == nil || *r.Mean != 20 {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestStatsCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.ErrorCode
	}{
		{"bad number", "1\nx\n", []string{"stats"}, errors.ErrCodeInvalidInput},
		{"missing file", "", []string{"stats", "/nonexistent/data.txt"}, errors.ErrCodeInvalidInput},
		{"bad predicate", "1\n", []string{"stats", "--predicate", "prime"}, errors.ErrCodeInvalidConfig},
		{"min above max", "1\n", []string{"stats", "--min", "5", "--max", "1"}, errors.ErrCodeInvalidConfig},
		{"bad run id", "1\n", []string{"stats", "--run-id", "not-a-uuid"}, errors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := executeCommand(t, tc.stdin, tc.args...)
			if !errors.IsCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if ExitCode(err) != 2 {
				t.Errorf("expected exit code 2, got %d", ExitCode(err))
			}
		})
	}
}

func TestStatsCommandEmpty(t *testing.T) {
	out, err := executeCommand(t, "# nothing\n", "stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "count: 0") || !strings.Contains(out, "mean: n/a") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "fnstat ") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = executeCommand(t, "", "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if _, ok := info["version"]; !ok {
		t.Errorf("expected version key in %v", info)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("nil error should exit 0")
	}
	if ExitCode(errors.Internal(nil)) != 1 {
		t.Error("internal errors should exit 1")
	}
	if ExitCode(errors.InvalidConfig("x")) != 2 {
		t.Error("config errors should exit 2")
	}
}

func TestFlagOverrides(t *testing.T) {
	cmd := newStatsCommand()
	if err := cmd.ParseFlags([]string{"--predicate", "odd", "--limit", "3", "--json"}); err != nil {
		t.Fatal(err)
	}
	got := flagOverrides(cmd.Flags())
	if got["stats.predicate"] != "odd" || got["stats.limit"] != "3" {
		t.Errorf("unexpected overrides %v", got)
	}
	if len(got) != 2 {
		t.Errorf("unchanged flags and --json must not override config, got %v", got)
	}
}
