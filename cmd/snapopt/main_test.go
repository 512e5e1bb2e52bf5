package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	snapio "github.com/dzonerzy/go-snapopt/io"
)

const testTable = `options:
  - short: "h?"
    long: [help, manual]
    return: help
  - short: o
    long: [output]
    argument: required
    return: output
  - short: v
    long: [verbose]
    flag: verbose
    value: 1
  - return: file
`

type runResult struct {
	stdout, stderr string
	code           int
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	for _, key := range []string{"SNAPOPT_TABLE", "SNAPOPT_SORT", "SNAPOPT_OUTPUT", "SNAPOPT_ERRORS", "SNAPOPT_CONFIG", "SNAPOPT_LOG_LEVEL"} {
		if _, ok := os.LookupEnv(key); !ok {
			t.Setenv(key, "")
		}
	}
	var out, errb bytes.Buffer
	m := snapio.New().WithOut(&out).WithErr(&errb).WithIn(strings.NewReader(stdin)).NoColor()
	cmd := newRootCommand(m)
	cmd.SetArgs(args)
	err := cmd.Execute()
	handleError(m, err)
	return runResult{stdout: out.String(), stderr: errb.String(), code: exitCode(err)}
}

func TestParseText(t *testing.T) {
	path := writeTable(t, testTable)
	res := runCLI(t, "", "parse", "-t", path, "--", "-vo", "out.txt", "in.txt", "--man")
	if res.code != ExitSuccess {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) < 4 || !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "STATUS") {
		t.Fatalf("unexpected output:\n%s", res.stdout)
	}
	for i, want := range []string{"-o", "--man", "in.txt"} {
		if !strings.Contains(lines[i+1], want) {
			t.Errorf("row %d = %q, want it to contain %q", i, lines[i+1], want)
		}
	}
	if !strings.Contains(lines[1], "out.txt") {
		t.Errorf("argument missing from %q", lines[1])
	}
	if !strings.Contains(res.stdout, "verbose = 1") {
		t.Errorf("flag values missing:\n%s", res.stdout)
	}
}

func TestParseJSON(t *testing.T) {
	path := writeTable(t, testTable)
	res := runCLI(t, "", "parse", "-t", path, "-o", "json", "--sort", "input", "--", "-vo", "out.txt", "in.txt", "--man")
	if res.code != ExitSuccess {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	var rep report
	if err := json.Unmarshal([]byte(res.stdout), &rep); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	var got []string
	for _, r := range rep.Results {
		got = append(got, r.Return)
	}
	if strings.Join(got, ",") != "output,file,help" {
		t.Errorf("input order = %v", got)
	}
	if len(rep.Flags) != 1 || rep.Flags[0] != (flagView{Name: "verbose", Value: 1}) {
		t.Errorf("flags = %+v", rep.Flags)
	}
	if rep.Results[0].Option != "-o" || rep.Results[0].Argument != "out.txt" {
		t.Errorf("first record = %+v", rep.Results[0])
	}
}

func TestParseFailures(t *testing.T) {
	path := writeTable(t, testTable)

	res := runCLI(t, "", "parse", "-t", path, "--", "--verbsoe", "-o")
	if res.code != ExitFailure {
		t.Fatalf("expected exit 1, got %d", res.code)
	}
	for _, want := range []string{"unknown option: --verbsoe", "Did you mean '--verbose'?", "option requires an argument: -o"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, res.stderr)
		}
	}
	if !strings.Contains(res.stdout, "unknown_option") || !strings.Contains(res.stdout, "missing_argument") {
		t.Errorf("stdout should list failed records:\n%s", res.stdout)
	}

	res = runCLI(t, "", "parse", "-t", path, "--errors=false", "--", "--verbsoe", "in.txt")
	if res.code != ExitSuccess {
		t.Fatalf("suppressed errors should exit 0, got %d: %s", res.code, res.stderr)
	}
	if strings.Contains(res.stdout, "verbsoe") {
		t.Errorf("failed record printed despite --errors=false:\n%s", res.stdout)
	}
}

func TestParseIntroducer(t *testing.T) {
	path := writeTable(t, testTable)
	res := runCLI(t, "", "parse", "-t", path, "--introducer", "/", "-o", "json", "--", "/v", "//help", "-x")
	if res.code != ExitSuccess {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	var rep report
	if err := json.Unmarshal([]byte(res.stdout), &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Results) != 2 || rep.Results[0].Option != "//help" || rep.Results[1].Option != "-x" {
		t.Errorf("results = %+v", rep.Results)
	}
}

func TestParseTableFromStdin(t *testing.T) {
	res := runCLI(t, testTable, "parse", "-t", "-", "-o", "yaml", "--", "--output=x")
	if res.code != ExitSuccess {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "return: output") || !strings.Contains(res.stdout, "argument: x") {
		t.Errorf("unexpected YAML:\n%s", res.stdout)
	}
}

func TestEnvironmentAndConfig(t *testing.T) {
	path := writeTable(t, testTable)

	t.Run("environment", func(t *testing.T) {
		t.Setenv("SNAPOPT_TABLE", path)
		t.Setenv("SNAPOPT_OUTPUT", "json")
		res := runCLI(t, "", "parse", "--", "in.txt")
		if res.code != ExitSuccess {
			t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
		}
		if !strings.Contains(res.stdout, `"return": "file"`) {
			t.Errorf("expected JSON output:\n%s", res.stdout)
		}
	})

	t.Run("config file", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "snapopt.yaml")
		if err := os.WriteFile(cfg, []byte("table: "+path+"\noutput: yaml\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("SNAPOPT_CONFIG", cfg)
		res := runCLI(t, "", "parse", "--", "in.txt")
		if res.code != ExitSuccess {
			t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
		}
		if !strings.Contains(res.stdout, "results:") {
			t.Errorf("expected YAML output:\n%s", res.stdout)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		t.Setenv("SNAPOPT_TABLE", path)
		t.Setenv("SNAPOPT_OUTPUT", "json")
		res := runCLI(t, "", "parse", "-o", "yaml", "--", "in.txt")
		if !strings.Contains(res.stdout, "results:") {
			t.Errorf("command line should override the environment:\n%s", res.stdout)
		}
	})
}

func TestUsageErrors(t *testing.T) {
	path := writeTable(t, testTable)
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"no table", []string{"parse", "--", "x"}, ExitUsage, "no option table"},
		{"bad sort", []string{"parse", "-t", path, "--sort", "sideways"}, ExitUsage, "unknown sort mode"},
		{"bad output", []string{"parse", "-t", path, "-o", "xml"}, ExitUsage, "unknown output format"},
		{"bad introducer", []string{"parse", "-t", path, "--introducer", "ab"}, ExitUsage, "single character"},
		{"unknown flag", []string{"parse", "--bogus"}, ExitUsage, "unknown flag"},
		{"bad log level", []string{"--log-level", "loud", "version"}, ExitUsage, "unknown log level"},
		{"missing table", []string{"parse", "-t", filepath.Join(t.TempDir(), "nope.yaml")}, ExitTable, "read option table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			if res.code != tt.code {
				t.Errorf("exit %d, want %d (stderr: %s)", res.code, tt.code, res.stderr)
			}
			if !strings.Contains(res.stderr, tt.want) {
				t.Errorf("stderr %q does not mention %q", res.stderr, tt.want)
			}
		})
	}
}

func TestLint(t *testing.T) {
	clean := writeTable(t, testTable)
	res := runCLI(t, "", "lint", "-t", clean)
	if res.code != ExitSuccess || !strings.Contains(res.stdout, "no conflicts") {
		t.Errorf("clean table: exit %d, stdout %q", res.code, res.stdout)
	}

	conflicting := writeTable(t, testTable+"  - short: v\n    long: [version]\n")
	res = runCLI(t, "", "lint", "-t", conflicting)
	if res.code != ExitFailure {
		t.Errorf("expected exit 1, got %d", res.code)
	}
	if !strings.Contains(res.stderr, `short option "v" is already declared by definition 2`) {
		t.Errorf("stderr = %q", res.stderr)
	}

	res = runCLI(t, "", "lint", "-t", clean, "--print")
	if res.code != ExitSuccess || !strings.HasPrefix(res.stdout, "options:") {
		t.Errorf("--print: exit %d, stdout:\n%s", res.code, res.stdout)
	}
}

func TestVersion(t *testing.T) {
	res := runCLI(t, "", "version")
	if res.code != ExitSuccess || !strings.HasPrefix(res.stdout, "snapopt "+version) {
		t.Errorf("version: exit %d, stdout %q", res.code, res.stdout)
	}
}

func TestBuildLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if _, err := buildLogger(level); err != nil {
			t.Errorf("buildLogger(%q): %v", level, err)
		}
	}
	if _, err := buildLogger("verbose"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{pflag.ErrHelp, ExitSuccess},
		{errors.New("boom"), ExitFailure},
		{&ExitError{Code: ExitTable}, ExitTable},
		{errors.Join(errors.New("ctx"), &ExitError{Code: ExitUsage}), ExitUsage},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
