// Package intern keeps canonical copies of option texts so repeated parses
// of the same argument vector hand out the same string headers
package intern

import (
	"sync"
	"unicode/utf8"
)

// StringInterner provides thread-safe string interning
type StringInterner struct {
	strings map[string]string
	mutex   sync.RWMutex
}

// NewStringInterner creates an interner with room for capacity entries
func NewStringInterner(capacity int) *StringInterner {
	if capacity <= 0 {
		capacity = 64
	}
	return &StringInterner{
		strings: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of s
func (si *StringInterner) Intern(s string) string {
	si.mutex.RLock()
	if interned, exists := si.strings[s]; exists {
		si.mutex.RUnlock()
		return interned
	}
	si.mutex.RUnlock()

	si.mutex.Lock()
	defer si.mutex.Unlock()

	// Another writer may have won the race
	if interned, exists := si.strings[s]; exists {
		return interned
	}
	si.strings[s] = s
	return s
}

// InternRune returns the canonical one-rune string for r. Printable ASCII is
// served from a static table and never touches the map.
func (si *StringInterner) InternRune(r rune) string {
	if r >= asciiFirst && r <= asciiLast {
		return asciiStrings[r-asciiFirst]
	}
	if !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return si.Intern(string(r))
}

// PreIntern adds strings ahead of parsing
func (si *StringInterner) PreIntern(strs []string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	for _, s := range strs {
		si.strings[s] = s
	}
}

// Stats returns the number of interned strings.
func (si *StringInterner) Stats() int {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	return len(si.strings)
}

// Clear removes all interned strings (useful for testing)
func (si *StringInterner) Clear() {
	si.mutex.Lock()
	defer si.mutex.Unlock()
	clear(si.strings)
}

const (
	asciiFirst = '!'
	asciiLast  = '~'
)

var asciiStrings = func() [asciiLast - asciiFirst + 1]string {
	var table [asciiLast - asciiFirst + 1]string
	for r := rune(asciiFirst); r <= asciiLast; r++ {
		table[r-asciiFirst] = string(r)
	}
	return table
}()

// CommonOptionNames are long names most tables declare.
var CommonOptionNames = []string{
	"help", "version", "verbose", "quiet", "config", "output",
	"input", "force", "debug", "file", "all", "dry-run",
}

// GlobalInterner is the process-wide interner used by the parser.
var GlobalInterner = func() *StringInterner {
	si := NewStringInterner(128)
	si.PreIntern(CommonOptionNames)
	return si
}()

// Intern interns a string using the global interner
func Intern(s string) string {
	return GlobalInterner.Intern(s)
}

// InternRune interns a single rune using the global interner
//
//nolint:revive // keep name for public API symmetry with Intern
func InternRune(r rune) string {
	return GlobalInterner.InternRune(r)
}
