package snapopt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dzonerzy/go-snapopt/internal/fuzzy"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints
const maxSuggestionDistance = 2

// ParseError describes one failed record
type ParseError struct {
	Kind       ErrorKind
	Message    string
	Option     string // as typed, introducers included
	Argument   string
	Index      int // Result.Index of the record
	Definition int
	Suggestion string   // closest long option for unknown long options
	Candidates []string // matches of an ambiguous prefix, introducers included
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return e.Message + "\n  Did you mean '" + e.Suggestion + "'?"
	}
	return e.Message
}

// ResultError converts a failed record into a *ParseError. It returns nil
// for successful records.
func (p *Parser) ResultError(r Result) *ParseError {
	if r.OK {
		return nil
	}

	option := p.Typed(r)
	e := &ParseError{
		Kind:       r.Kind,
		Option:     option,
		Argument:   r.Argument,
		Index:      r.Index,
		Definition: r.Definition,
	}

	switch r.Kind {
	case KindUnknownOption:
		e.Message = "unknown option: " + option
		if r.Form == FormLong {
			if best := fuzzy.FindBestOption(r.Option, p.longNames(), maxSuggestionDistance); best != "" {
				e.Suggestion = p.longPrefix() + best
			}
		}
	case KindAmbiguousOption:
		e.Candidates = make([]string, len(r.Candidates))
		for i, c := range r.Candidates {
			e.Candidates[i] = p.longPrefix() + c
		}
		e.Message = fmt.Sprintf("ambiguous option: %s (could be %s)", option, strings.Join(e.Candidates, ", "))
	case KindMissingArgument:
		e.Message = "option requires an argument: " + option
	case KindUnexpectedArgument:
		e.Message = fmt.Sprintf("option does not take an argument: %s=%s", option, r.Argument)
	case KindUnknownNonOption:
		e.Message = "unexpected argument: " + option
	case KindFlagTarget:
		e.Message = "cannot set flag for option: " + option
	case KindNone:
		e.Kind = KindUnknownOption
		e.Message = "invalid option: " + option
	default:
		e.Message = fmt.Sprintf("%s: %s", r.Kind, option)
	}
	return e
}

// Err joins the errors of all failed records, or returns nil
func (p *Parser) Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if e := p.ResultError(r); e != nil {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}

// IsKind reports whether err contains a *ParseError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if IsKind(e, kind) {
				return true
			}
		}
		return false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

func (p *Parser) longPrefix() string {
	return string(p.introducer) + string(p.introducer)
}

func (p *Parser) longNames() []string {
	names := make([]string, 0, len(p.long))
	for i := range p.defs {
		names = append(names, p.defs[i].Long...)
	}
	return names
}
