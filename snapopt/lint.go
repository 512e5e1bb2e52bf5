package snapopt

import (
	"fmt"
	"strings"
)

// ConflictKind names a problem Lint found in an option table
type ConflictKind string

const (
	// ConflictShortShadowed: a short rune already declared by an earlier row.
	ConflictShortShadowed ConflictKind = "short_shadowed"
	// ConflictLongShadowed: a long name already declared by an earlier row.
	ConflictLongShadowed ConflictKind = "long_shadowed"
	// ConflictExtraNonOption: a second non-option row, never consulted.
	ConflictExtraNonOption ConflictKind = "extra_non_option"
	// ConflictUnreachableLong: a long name that no token can spell
	// (empty, or containing '=').
	ConflictUnreachableLong ConflictKind = "unreachable_long"
)

// Conflict is one Lint finding
type Conflict struct {
	Kind       ConflictKind
	Form       string // the short rune or long name involved; "" for rows
	Definition int    // the row that loses
	ShadowedBy int    // the row that wins, or Unknown
}

func (c Conflict) String() string {
	switch c.Kind {
	case ConflictShortShadowed:
		return fmt.Sprintf("definition %d: short option %q is already declared by definition %d", c.Definition, c.Form, c.ShadowedBy)
	case ConflictLongShadowed:
		return fmt.Sprintf("definition %d: long option %q is already declared by definition %d", c.Definition, c.Form, c.ShadowedBy)
	case ConflictExtraNonOption:
		return fmt.Sprintf("definition %d: non-option definition ignored, definition %d handles non-options", c.Definition, c.ShadowedBy)
	case ConflictUnreachableLong:
		return fmt.Sprintf("definition %d: long option %q can never match", c.Definition, c.Form)
	default:
		return fmt.Sprintf("definition %d: %s %q", c.Definition, c.Kind, c.Form)
	}
}

// Lint reports table rows or forms that Parse will never resolve to
func Lint(defs []Definition) []Conflict {
	var conflicts []Conflict
	short := make(map[rune]int)
	long := make(map[string]int)
	nonOption := Unknown

	for i := range defs {
		d := &defs[i]
		if d.IsNonOption() {
			if nonOption == Unknown {
				nonOption = i
			} else {
				conflicts = append(conflicts, Conflict{Kind: ConflictExtraNonOption, Definition: i, ShadowedBy: nonOption})
			}
			continue
		}

		seen := make(map[rune]bool, len(d.Short))
		for _, r := range d.Short {
			if seen[r] {
				continue
			}
			seen[r] = true
			if owner, taken := short[r]; taken {
				conflicts = append(conflicts, Conflict{Kind: ConflictShortShadowed, Form: string(r), Definition: i, ShadowedBy: owner})
				continue
			}
			short[r] = i
		}

		for _, name := range d.Long {
			if name == "" || strings.ContainsRune(name, '=') {
				conflicts = append(conflicts, Conflict{Kind: ConflictUnreachableLong, Form: name, Definition: i, ShadowedBy: Unknown})
				continue
			}
			if owner, taken := long[name]; taken {
				if owner != i {
					conflicts = append(conflicts, Conflict{Kind: ConflictLongShadowed, Form: name, Definition: i, ShadowedBy: owner})
				}
				continue
			}
			long[name] = i
		}
	}
	return conflicts
}
