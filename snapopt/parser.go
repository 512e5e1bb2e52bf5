// Package snapopt parses GNU-style command lines against a declarative
// option table and returns every resolved option, argument and error as one
// sorted slice, instead of handing options out one call at a time.
package snapopt

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dzonerzy/go-snapopt/internal/intern"
	"github.com/dzonerzy/go-snapopt/internal/pool"
)

// DefaultIntroducer starts short options; doubled, it starts long options.
const DefaultIntroducer = '-'

// tokenMode is the Mode Classifier's verdict for one token
type tokenMode int

const (
	modeNonOption tokenMode = iota
	modeShort
	modeLong
	modeEndOfOptions
)

// buckets recycled between parses; returned slices are always fresh
var resultBuckets = pool.NewSlicePool[Result](16, 4096)

// Parser resolves argument vectors against an option table in one pass.
// Configure it with the builder methods before the first Parse; after that
// it is read-only and Parse may run concurrently, provided flag targets are
// not shared between the concurrent calls.
type Parser struct {
	defs []Definition

	short     map[rune]int
	long      map[string]int
	nonOption int

	introducer    rune
	sortMode      SortMode
	includeErrors bool
	log           *zap.Logger
}

// NewParser creates a parser over a copy of defs. Defaults: '-' introducer,
// SortClassic, failed records included.
func NewParser(defs ...Definition) *Parser {
	p := &Parser{
		defs:          slices.Clone(defs),
		short:         make(map[rune]int),
		long:          make(map[string]int),
		nonOption:     Unknown,
		introducer:    DefaultIntroducer,
		sortMode:      SortClassic,
		includeErrors: true,
		log:           zap.NewNop(),
	}

	for i := range p.defs {
		d := &p.defs[i]
		d.Long = slices.Clone(d.Long)
		for j, name := range d.Long {
			d.Long[j] = intern.Intern(name)
		}
		d.Return = intern.Intern(d.Return)

		if d.IsNonOption() {
			if p.nonOption == Unknown {
				p.nonOption = i
			}
			continue
		}
		for _, r := range d.Short {
			if _, taken := p.short[r]; !taken {
				p.short[r] = i
			}
		}
		for _, name := range d.Long {
			if _, taken := p.long[name]; !taken {
				p.long[name] = i
			}
		}
	}
	return p
}

// Introducer sets the character that starts options (default '-')
func (p *Parser) Introducer(r rune) *Parser {
	p.introducer = r
	return p
}

// SortBy sets the result order (default SortClassic)
func (p *Parser) SortBy(mode SortMode) *Parser {
	p.sortMode = mode
	return p
}

// IncludeErrors controls whether failed records appear in the results.
// Flag targets are written either way.
func (p *Parser) IncludeErrors(include bool) *Parser {
	p.includeErrors = include
	return p
}

// WithLogger traces every resolution at debug level. nil disables tracing.
func (p *Parser) WithLogger(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p.log = log
	return p
}

// Definitions returns a copy of the option table
func (p *Parser) Definitions() []Definition {
	return slices.Clone(p.defs)
}

// Parse resolves args (without the program name) and returns the sorted
// results. It never fails: malformed input shows up as records with
// OK == false.
func (p *Parser) Parse(args []string) []Result {
	s := p.newScan(args)
	defer s.release()

	for ; s.pos < len(args); s.pos++ {
		token := args[s.pos]
		if s.endOfOptions {
			s.matchNonOption(token)
			continue
		}

		mode, rest := p.classify(token)
		switch mode {
		case modeEndOfOptions:
			s.endOfOptions = true
		case modeShort:
			s.matchShort(rest)
		case modeLong:
			s.matchLong(rest)
		case modeNonOption:
			s.matchNonOption(token)
		}
	}
	return assemble(s.mode, *s.options, *s.nonOptions)
}

// ParseOS parses os.Args[1:]
func (p *Parser) ParseOS() []Result {
	if len(os.Args) < 2 {
		return p.Parse(nil)
	}
	return p.Parse(os.Args[1:])
}

// Parse is the one-shot form of NewParser(defs...).SortBy(mode).IncludeErrors(includeErrors).Parse(args)
func Parse(args []string, defs []Definition, mode SortMode, includeErrors bool) []Result {
	return NewParser(defs...).SortBy(mode).IncludeErrors(includeErrors).Parse(args)
}

// ParseCommandLine parses the process arguments against defs
func ParseCommandLine(defs []Definition, mode SortMode, includeErrors bool) []Result {
	return NewParser(defs...).SortBy(mode).IncludeErrors(includeErrors).ParseOS()
}

// classify strips the introducers off token. One introducer means a short
// option block, two mean a long option, and nothing left after stripping
// ("-" or "--") ends option processing for the rest of the vector.
func (p *Parser) classify(token string) (tokenMode, string) {
	rest, ok := p.trimIntroducer(token)
	if !ok {
		return modeNonOption, token
	}
	mode := modeShort
	if r, ok := p.trimIntroducer(rest); ok {
		mode, rest = modeLong, r
	}
	if rest == "" {
		return modeEndOfOptions, ""
	}
	return mode, rest
}

func (p *Parser) trimIntroducer(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r != p.introducer {
		return s, false
	}
	if r == utf8.RuneError && size == 1 {
		// invalid byte, not a literal U+FFFD introducer
		return s, false
	}
	return s[size:], true
}

// lookupShort finds the first definition declaring r
func (p *Parser) lookupShort(r rune) int {
	if i, ok := p.short[r]; ok {
		return i
	}
	return Unknown
}

// lookupLong resolves a long name: an exact match wins outright, otherwise
// the name must be a prefix of long forms in exactly one definition. When
// several definitions match the prefix, the matched names are returned.
func (p *Parser) lookupLong(name string) (int, []string) {
	if name == "" {
		return Unknown, nil
	}
	if i, ok := p.long[name]; ok {
		return i, nil
	}

	found := Unknown
	var candidates []string
	for i := range p.defs {
		for _, l := range p.defs[i].Long {
			if strings.HasPrefix(l, name) {
				if found == Unknown {
					found = i
				}
				candidates = append(candidates, l)
				break
			}
		}
	}
	if len(candidates) > 1 {
		return Unknown, candidates
	}
	return found, nil
}

// Typed renders the option of r the way it was typed, introducers included
func (p *Parser) Typed(r Result) string {
	switch r.Form {
	case FormShort:
		return string(p.introducer) + r.Option
	case FormLong:
		return string(p.introducer) + string(p.introducer) + r.Option
	default:
		return r.Option
	}
}

func (p *Parser) String() string {
	return fmt.Sprintf("snapopt.Parser{definitions: %d, introducer: %q, sort: %s, includeErrors: %t}",
		len(p.defs), p.introducer, p.sortMode, p.includeErrors)
}
