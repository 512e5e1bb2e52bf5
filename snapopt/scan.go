package snapopt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dzonerzy/go-snapopt/internal/intern"
)

// scan is the per-call state of Parse
type scan struct {
	p    *Parser
	args []string
	pos  int
	mode SortMode

	endOfOptions bool

	options    *[]Result
	nonOptions *[]Result
	count      int
}

func (p *Parser) newScan(args []string) *scan {
	return &scan{
		p:          p,
		args:       args,
		mode:       p.sortMode.effective(),
		options:    resultBuckets.Get(),
		nonOptions: resultBuckets.Get(),
	}
}

func (s *scan) release() {
	resultBuckets.Put(s.options)
	resultBuckets.Put(s.nonOptions)
	s.options, s.nonOptions = nil, nil
}

// next consumes the following token as an argument
func (s *scan) next() (string, bool) {
	if s.pos+1 >= len(s.args) {
		return "", false
	}
	s.pos++
	return s.args[s.pos], true
}

// matchShort walks a short option block one rune at a time. Options that
// take no argument let the walk continue, so -abc is three options, or
// two when b takes an argument ("c").
func (s *scan) matchShort(block string) {
	for block != "" {
		r, size := utf8.DecodeRuneInString(block)
		block = block[size:]

		res := Result{
			Option:     intern.InternRune(r),
			Definition: s.p.lookupShort(r),
			Form:       FormShort,
		}
		if res.Definition == Unknown {
			res.Kind = KindUnknownOption
			s.add(res)
			continue
		}

		def := &s.p.defs[res.Definition]
		res.Return = def.Return
		switch def.Arg {
		case ArgMandatory:
			if block != "" {
				res.Argument, block = block, ""
				res.OK = true
			} else if next, ok := s.next(); ok {
				// taken as-is even when it looks like an option
				res.Argument = next
				res.OK = true
			} else {
				res.Kind = KindMissingArgument
			}
		case ArgOptional:
			res.Argument, block = block, ""
			res.OK = true
		default:
			res.OK = true
		}
		s.add(res)
	}
}

// matchLong resolves one long option token, with introducers stripped
func (s *scan) matchLong(text string) {
	name, value, hasValue := strings.Cut(text, "=")

	res := Result{Option: name, Form: FormLong}
	res.Definition, res.Candidates = s.p.lookupLong(name)
	if res.Definition == Unknown {
		res.Kind = KindUnknownOption
		if len(res.Candidates) > 0 {
			res.Kind = KindAmbiguousOption
		}
		// keep the stray value for diagnostics
		res.Argument = value
		s.add(res)
		return
	}

	def := &s.p.defs[res.Definition]
	res.Return = def.Return
	switch def.Arg {
	case ArgMandatory:
		if hasValue {
			res.Argument = value
			res.OK = true
		} else if next, ok := s.next(); ok {
			res.Argument = next
			res.OK = true
		} else {
			res.Kind = KindMissingArgument
		}
	case ArgOptional:
		res.Argument = value
		res.OK = true
	default:
		if hasValue {
			res.Argument = value
			res.Kind = KindUnexpectedArgument
		} else {
			res.OK = true
		}
	}
	s.add(res)
}

// matchNonOption resolves a bare token against the non-option definition
func (s *scan) matchNonOption(token string) {
	res := Result{
		Option:     token,
		Argument:   token,
		Definition: s.p.nonOption,
		Form:       FormNonOption,
	}
	if res.Definition == Unknown {
		res.Kind = KindUnknownNonOption
	} else {
		res.Return = s.p.defs[res.Definition].Return
		res.OK = true
	}
	s.add(res)
}

// add runs the accumulation rules for one record: write the flag, then
// drop failed records when errors are excluded, then drop successful
// records without a Return tag, then append with the next Index.
func (s *scan) add(res Result) {
	if res.Definition != Unknown {
		def := &s.p.defs[res.Definition]
		if def.Flag != nil {
			if err := setFlag(def.Flag, def.FlagValue); err != nil {
				if res.OK {
					res.OK = false
					res.Kind = KindFlagTarget
				}
				s.p.log.Debug("flag target write failed",
					zap.String("option", res.Option),
					zap.Int("definition", res.Definition),
					zap.Error(err))
			}
		}
	}

	kept := true
	switch {
	case !res.OK && !s.p.includeErrors:
		kept = false
	case res.OK && res.Return == "":
		kept = false
	}

	if kept {
		res.Index = s.count
		s.count++
		if res.Form == FormNonOption && s.mode == SortClassic {
			*s.nonOptions = append(*s.nonOptions, res)
		} else {
			*s.options = append(*s.options, res)
		}
	}

	if ce := s.p.log.Check(zap.DebugLevel, "resolved"); ce != nil {
		ce.Write(
			zap.Stringer("form", res.Form),
			zap.String("option", res.Option),
			zap.String("argument", res.Argument),
			zap.Int("definition", res.Definition),
			zap.String("return", res.Return),
			zap.Bool("ok", res.OK),
			zap.String("kind", string(res.Kind)),
			zap.Bool("kept", kept),
		)
	}
}

// setFlag writes a flag target, turning a panicking target into an error
func setFlag(target FlagTarget, value int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapopt: flag target panicked: %v", r)
		}
	}()
	return target.SetFlag(value)
}
