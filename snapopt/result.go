package snapopt

import (
	"fmt"
	"strings"
)

// Unknown is the Definition index of records no table row matched
const Unknown = -1

// Form tells how a record was written on the command line
type Form int

const (
	FormShort Form = iota
	FormLong
	FormNonOption
)

func (f Form) String() string {
	switch f {
	case FormShort:
		return "short"
	case FormLong:
		return "long"
	case FormNonOption:
		return "non-option"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// ErrorKind categorizes failed records. These categories drive the
// messages produced by ResultError.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindUnknownOption      ErrorKind = "unknown_option"
	KindAmbiguousOption    ErrorKind = "ambiguous_option"
	KindMissingArgument    ErrorKind = "missing_argument"
	KindUnexpectedArgument ErrorKind = "unexpected_argument"
	KindUnknownNonOption   ErrorKind = "unknown_non_option"
	KindFlagTarget         ErrorKind = "flag_target"
)

// Result is one resolved token or short-option character
type Result struct {
	Return     string // tag of the matched definition, "" when unresolved
	Definition int    // index into the table, or Unknown
	Index      int    // position among all kept records in encounter order
	OK         bool
	Option     string // as typed, without introducers or =argument
	Argument   string // for non-options, equal to Option
	Form       Form
	Kind       ErrorKind // KindNone when OK
	Candidates []string  // long names an ambiguous prefix matched
}

// String renders r for debugging
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s %q", r.Index, r.Form, r.Option)
	if r.Argument != "" && r.Form != FormNonOption {
		fmt.Fprintf(&b, " arg=%q", r.Argument)
	}
	if r.Definition != Unknown {
		fmt.Fprintf(&b, " def=%d", r.Definition)
	}
	if r.Return != "" {
		fmt.Fprintf(&b, " return=%q", r.Return)
	}
	if !r.OK {
		fmt.Fprintf(&b, " error=%s", r.Kind)
	}
	return b.String()
}
