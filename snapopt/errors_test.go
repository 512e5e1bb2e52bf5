package snapopt

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func newErrorParser() *Parser {
	return NewParser(
		Definition{Short: "v", Long: []string{"verbose"}, Return: "verbose"},
		Definition{Long: []string{"file"}, Return: "file", Arg: ArgMandatory},
		Definition{Long: []string{"filetype"}, Return: "filetype"},
		Definition{Short: "n", Long: []string{"dry-run"}, Return: "dry-run"},
		Definition{Short: "x", Return: "x", Flag: FlagFunc(func(int) error { return errors.New("read-only") })},
	)
}

func TestResultErrorMessages(t *testing.T) {
	p := newErrorParser()

	tests := []struct {
		name       string
		args       []string
		kind       ErrorKind
		message    string
		suggestion string
	}{
		{"unknown short", []string{"-z"}, KindUnknownOption, "unknown option: -z", ""},
		{"unknown long with suggestion", []string{"--verbsoe"}, KindUnknownOption, "unknown option: --verbsoe", "--verbose"},
		{"unknown long without suggestion", []string{"--zzzzzz"}, KindUnknownOption, "unknown option: --zzzzzz", ""},
		{"ambiguous", []string{"--fil"}, KindAmbiguousOption, "ambiguous option: --fil (could be --file, --filetype)", ""},
		{"missing argument", []string{"--file"}, KindMissingArgument, "option requires an argument: --file", ""},
		{"unexpected argument", []string{"--dry-run=yes"}, KindUnexpectedArgument, "option does not take an argument: --dry-run=yes", ""},
		{"unknown non-option", []string{"stray"}, KindUnknownNonOption, "unexpected argument: stray", ""},
		{"flag target", []string{"-x"}, KindFlagTarget, "cannot set flag for option: -x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := p.Parse(tt.args)
			if len(results) != 1 {
				t.Fatalf("expected 1 result, got %d", len(results))
			}
			e := p.ResultError(results[0])
			if e == nil {
				t.Fatal("expected a *ParseError")
			}
			if e.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", e.Kind, tt.kind)
			}
			if e.Message != tt.message {
				t.Errorf("message = %q, want %q", e.Message, tt.message)
			}
			if e.Suggestion != tt.suggestion {
				t.Errorf("suggestion = %q, want %q", e.Suggestion, tt.suggestion)
			}
			if tt.suggestion != "" && !strings.Contains(e.Error(), "Did you mean '"+tt.suggestion+"'?") {
				t.Errorf("Error() lacks suggestion: %q", e.Error())
			}
		})
	}
}

func TestResultErrorAmbiguousCandidates(t *testing.T) {
	p := newErrorParser()
	results := p.Parse([]string{"--fil"})
	e := p.ResultError(results[0])
	if !slices.Equal(e.Candidates, []string{"--file", "--filetype"}) {
		t.Errorf("candidates = %v", e.Candidates)
	}
	if e.Definition != Unknown {
		t.Errorf("expected unknown definition, got %d", e.Definition)
	}
}

func TestResultErrorUsesIntroducer(t *testing.T) {
	p := newErrorParser().Introducer('+')
	results := p.Parse([]string{"+z", "++file"})
	if err := p.ResultError(results[0]); err == nil || err.Option != "+z" {
		t.Errorf("expected +z, got %v", err)
	}
	if err := p.ResultError(results[1]); err == nil || err.Option != "++file" {
		t.Errorf("expected ++file, got %v", err)
	}
}

func TestResultErrorNilForOK(t *testing.T) {
	p := newErrorParser()
	results := p.Parse([]string{"-v"})
	if e := p.ResultError(results[0]); e != nil {
		t.Errorf("expected nil, got %v", e)
	}
	if err := p.Err(results); err != nil {
		t.Errorf("expected nil joined error, got %v", err)
	}
}

func TestErrJoinsAndIsKind(t *testing.T) {
	p := newErrorParser()
	results := p.Parse([]string{"-v", "--fil", "-z", "--file"})
	err := p.Err(results)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, kind := range []ErrorKind{KindAmbiguousOption, KindUnknownOption, KindMissingArgument} {
		if !IsKind(err, kind) {
			t.Errorf("expected joined error to contain %q", kind)
		}
	}
	if IsKind(err, KindFlagTarget) {
		t.Error("did not expect a flag target error")
	}
	if IsKind(nil, KindUnknownOption) {
		t.Error("nil error has no kind")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("expected errors.As to find a *ParseError")
	}
	if pe.Kind != KindAmbiguousOption {
		t.Errorf("first error kind = %q", pe.Kind)
	}
	if lines := strings.Count(err.Error(), "\n"); lines != 2 {
		t.Errorf("expected 3 joined lines, got %q", err.Error())
	}
}
