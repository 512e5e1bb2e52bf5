package snapopt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode selects the order of the returned results
type SortMode int

const (
	// SortClassic keeps options in encounter order, followed by all
	// non-options in encounter order.
	SortClassic SortMode = iota
	// SortByDefinition orders by table row, then by encounter order.
	SortByDefinition
	// SortByReturn orders by Return tag, then by encounter order.
	SortByReturn
	// SortByInput keeps encounter order.
	SortByInput
)

func (m SortMode) String() string {
	switch m {
	case SortClassic:
		return "classic"
	case SortByDefinition:
		return "definition"
	case SortByReturn:
		return "return"
	case SortByInput:
		return "input"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// ParseSortMode parses the names printed by SortMode.String
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return SortClassic, nil
	case "definition", "def":
		return SortByDefinition, nil
	case "return", "value":
		return SortByReturn, nil
	case "input":
		return SortByInput, nil
	default:
		return SortClassic, fmt.Errorf("unknown sort mode %q (expected classic, definition, return or input)", s)
	}
}

// effective maps unrecognized modes onto SortClassic
func (m SortMode) effective() SortMode {
	switch m {
	case SortByDefinition, SortByReturn, SortByInput:
		return m
	default:
		return SortClassic
	}
}

// assemble produces the caller-owned result slice from the two buckets.
// options holds everything except, under SortClassic, the non-options.
func assemble(mode SortMode, options, nonOptions []Result) []Result {
	out := make([]Result, 0, len(options)+len(nonOptions))
	out = append(out, options...)

	switch mode {
	case SortByDefinition:
		slices.SortStableFunc(out, func(a, b Result) int {
			if c := cmp.Compare(a.Definition, b.Definition); c != 0 {
				return c
			}
			return cmp.Compare(a.Index, b.Index)
		})
	case SortByReturn:
		slices.SortStableFunc(out, func(a, b Result) int {
			if c := strings.Compare(a.Return, b.Return); c != 0 {
				return c
			}
			return cmp.Compare(a.Index, b.Index)
		})
	case SortByInput:
	default:
		out = append(out, nonOptions...)
	}
	return out
}
