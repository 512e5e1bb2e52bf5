package snapopt

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ArgPolicy governs whether an option takes an argument
type ArgPolicy int

const (
	ArgNotAllowed ArgPolicy = iota // -x, --name; --name=v is an error
	ArgMandatory                   // -xV, -x V, --name=V, --name V
	ArgOptional                    // -xV, --name=V; never the next token
)

// String returns the table spelling of the policy
func (a ArgPolicy) String() string {
	switch a {
	case ArgNotAllowed:
		return "none"
	case ArgMandatory:
		return "required"
	case ArgOptional:
		return "optional"
	default:
		return fmt.Sprintf("ArgPolicy(%d)", int(a))
	}
}

// ParseArgPolicy converts a table spelling back to an ArgPolicy
func ParseArgPolicy(s string) (ArgPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no", "notallowed", "not-allowed":
		return ArgNotAllowed, nil
	case "required", "mandatory":
		return ArgMandatory, nil
	case "optional":
		return ArgOptional, nil
	default:
		return ArgNotAllowed, fmt.Errorf("unknown argument policy %q (expected none, required or optional)", s)
	}
}

// Definition is one row of the option table.
//
// A definition with no short and no long forms is the non-option
// definition: bare arguments resolve to it. Only the first such row counts.
// When a short rune or long name is declared more than once, the first
// declaring row wins.
type Definition struct {
	Short     string   // each rune is one short form, e.g. "h?"
	Long      []string // long names without introducers
	Arg       ArgPolicy
	Return    string // reported tag; "" keeps the match out of the results
	Flag      FlagTarget
	FlagValue int
}

// IsNonOption reports whether d is a non-option definition
func (d *Definition) IsNonOption() bool {
	return d.Short == "" && len(d.Long) == 0
}

// ErrNilFlagTarget is returned when a flag target has nowhere to write.
var ErrNilFlagTarget = errors.New("snapopt: nil flag target")

// FlagTarget is a caller-owned cell written when its option matches.
// Writes happen in input order, before results are sorted.
type FlagTarget interface {
	SetFlag(value int) error
}

// IntFlag is a plain int cell
type IntFlag int

// SetFlag implements FlagTarget
func (f *IntFlag) SetFlag(value int) error {
	if f == nil {
		return ErrNilFlagTarget
	}
	*f = IntFlag(value)
	return nil
}

// Value returns the current value
func (f *IntFlag) Value() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// FlagFunc adapts a function to FlagTarget
type FlagFunc func(value int) error

// SetFlag implements FlagTarget
func (fn FlagFunc) SetFlag(value int) error {
	if fn == nil {
		return ErrNilFlagTarget
	}
	return fn(value)
}

// FlagSet holds named flag cells, so callers can read the final value of
// each flag by name after a parse.
type FlagSet struct {
	mu     sync.RWMutex
	values map[string]int
	names  []string
}

// NewFlagSet creates an empty flag set
func NewFlagSet() *FlagSet {
	return &FlagSet{values: make(map[string]int)}
}

// Target registers name (initially 0) and returns a FlagTarget writing it.
// Registering an existing name returns a target for the same cell.
func (fs *FlagSet) Target(name string) FlagTarget {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.values[name]; !ok {
		fs.values[name] = 0
		fs.names = append(fs.names, name)
	}
	return namedFlag{set: fs, name: name}
}

// Value returns the current value of name
func (fs *FlagSet) Value(name string) (int, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	v, ok := fs.values[name]
	return v, ok
}

// Names returns the registered names in registration order
func (fs *FlagSet) Names() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return slices.Clone(fs.names)
}

// Snapshot copies all current values
func (fs *FlagSet) Snapshot() map[string]int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	out := make(map[string]int, len(fs.values))
	for k, v := range fs.values {
		out[k] = v
	}
	return out
}

// Reset sets every registered cell back to 0
func (fs *FlagSet) Reset() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for k := range fs.values {
		fs.values[k] = 0
	}
}

type namedFlag struct {
	set  *FlagSet
	name string
}

func (n namedFlag) SetFlag(value int) error {
	if n.set == nil {
		return ErrNilFlagTarget
	}
	n.set.mu.Lock()
	defer n.set.mu.Unlock()
	if _, ok := n.set.values[n.name]; !ok {
		return fmt.Errorf("snapopt: flag %q is not registered", n.name)
	}
	n.set.values[n.name] = value
	return nil
}
