// Package table loads option tables from YAML documents.
//
//	introducer: "-"       # optional
//	options:
//	  - short: "h?"
//	    long: [help, manual]
//	    argument: none    # none | required | optional
//	    return: help
//	  - short: v
//	    flag: verbose     # named cell in Table.Flags
//	    value: 1
//	  - return: file      # no forms: the non-option definition
package table

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-snapopt/snapopt"
)

// Option is the YAML shape of one definition
type Option struct {
	Short    string   `yaml:"short,omitempty"`
	Long     []string `yaml:"long,omitempty"`
	Argument string   `yaml:"argument,omitempty"`
	Return   string   `yaml:"return,omitempty"`
	Flag     string   `yaml:"flag,omitempty"`
	Value    int      `yaml:"value,omitempty"`
}

// Document is the YAML shape of a table file
type Document struct {
	Introducer string   `yaml:"introducer,omitempty"`
	Options    []Option `yaml:"options"`
}

// Table is a loaded option table
type Table struct {
	Definitions []snapopt.Definition
	Flags       *snapopt.FlagSet
	FlagNames   map[int]string // definition index to flag cell name
	Introducer  rune           // 0 when the document does not set one
}

// Parser builds a parser over the table
func (t *Table) Parser() *snapopt.Parser {
	p := snapopt.NewParser(t.Definitions...)
	if t.Introducer != 0 {
		p.Introducer(t.Introducer)
	}
	return p
}

// LoadFile reads and decodes a table file
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read option table")
	}
	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// Decode reads one YAML document. Unknown keys are rejected.
func Decode(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty option table")
		}
		return nil, errors.Wrap(err, "decode option table")
	}
	return doc.Table()
}

// Table converts the document, creating one flag cell per distinct name
func (d *Document) Table() (*Table, error) {
	t := &Table{
		Definitions: make([]snapopt.Definition, 0, len(d.Options)),
		Flags:       snapopt.NewFlagSet(),
		FlagNames:   make(map[int]string),
	}

	if d.Introducer != "" {
		r, size := utf8.DecodeRuneInString(d.Introducer)
		if size != len(d.Introducer) || r == utf8.RuneError {
			return nil, errors.Errorf("introducer must be a single character, got %q", d.Introducer)
		}
		t.Introducer = r
	}

	for i, o := range d.Options {
		policy, err := snapopt.ParseArgPolicy(o.Argument)
		if err != nil {
			return nil, errors.Wrapf(err, "option %d", i)
		}
		if !utf8.ValidString(o.Short) {
			return nil, errors.Errorf("option %d: short forms are not valid UTF-8", i)
		}
		def := snapopt.Definition{
			Short:     o.Short,
			Long:      o.Long,
			Arg:       policy,
			Return:    o.Return,
			FlagValue: o.Value,
		}
		if o.Flag != "" {
			def.Flag = t.Flags.Target(o.Flag)
			t.FlagNames[i] = o.Flag
		}
		t.Definitions = append(t.Definitions, def)
	}
	return t, nil
}

// Encode writes defs back as YAML. Flag targets are written under the names
// given in flagNames (definition index to name); others are omitted.
func Encode(w io.Writer, defs []snapopt.Definition, flagNames map[int]string) error {
	return encode(w, document(defs, flagNames))
}

// Encode writes the table back in its normalized form
func (t *Table) Encode(w io.Writer) error {
	doc := document(t.Definitions, t.FlagNames)
	if t.Introducer != 0 {
		doc.Introducer = string(t.Introducer)
	}
	return encode(w, doc)
}

func document(defs []snapopt.Definition, flagNames map[int]string) *Document {
	doc := &Document{Options: make([]Option, len(defs))}
	for i, d := range defs {
		doc.Options[i] = Option{
			Short:    d.Short,
			Long:     d.Long,
			Argument: d.Arg.String(),
			Return:   d.Return,
			Flag:     flagNames[i],
			Value:    d.FlagValue,
		}
	}
	return doc
}

func encode(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encode option table")
	}
	return errors.Wrap(enc.Close(), "encode option table")
}
