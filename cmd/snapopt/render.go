package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	snapio "github.com/dzonerzy/go-snapopt/io"
	"github.com/dzonerzy/go-snapopt/snapopt"
)

type recordView struct {
	Index      int      `json:"index" yaml:"index"`
	Form       string   `json:"form" yaml:"form"`
	Option     string   `json:"option" yaml:"option"`
	Argument   string   `json:"argument,omitempty" yaml:"argument,omitempty"`
	Definition int      `json:"definition" yaml:"definition"`
	Return     string   `json:"return,omitempty" yaml:"return,omitempty"`
	OK         bool     `json:"ok" yaml:"ok"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Message    string   `json:"message,omitempty" yaml:"message,omitempty"`
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

type flagView struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

type report struct {
	Results []recordView `json:"results" yaml:"results"`
	Flags   []flagView   `json:"flags,omitempty" yaml:"flags,omitempty"`
	Failed  int          `json:"failed" yaml:"failed"`
}

func newReport(p *snapopt.Parser, results []snapopt.Result, flags *snapopt.FlagSet) *report {
	rep := &report{Results: make([]recordView, 0, len(results))}
	for _, r := range results {
		v := recordView{
			Index:      r.Index,
			Form:       r.Form.String(),
			Option:     p.Typed(r),
			Argument:   r.Argument,
			Definition: r.Definition,
			Return:     r.Return,
			OK:         r.OK,
			Candidates: r.Candidates,
		}
		if r.Form == snapopt.FormNonOption {
			v.Argument = ""
		}
		if perr := p.ResultError(r); perr != nil {
			v.Error = string(perr.Kind)
			v.Message = perr.Error()
			rep.Failed++
		}
		rep.Results = append(rep.Results, v)
	}
	if flags != nil {
		for _, name := range flags.Names() {
			value, _ := flags.Value(name)
			rep.Flags = append(rep.Flags, flagView{Name: name, Value: value})
		}
	}
	return rep
}

var renderers = map[string]func(*snapio.IOManager, *report) error{
	"text": renderText,
	"json": renderJSON,
	"yaml": renderYAML,
}

func renderJSON(m *snapio.IOManager, rep *report) error {
	enc := json.NewEncoder(m.Out())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func renderYAML(m *snapio.IOManager, rep *report) error {
	enc := yaml.NewEncoder(m.Out())
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}

var textHeader = []string{"#", "FORM", "OPTION", "ARGUMENT", "DEF", "RETURN", "STATUS"}

// renderText prints an aligned table. Widths are measured in terminal
// cells so multibyte options stay aligned, and arguments are cut to a third
// of the terminal width.
func renderText(m *snapio.IOManager, rep *report) error {
	theme := snapio.DefaultTheme()
	argLimit := max(m.Width()/3, 12)

	rows := make([][]string, 0, len(rep.Results))
	for _, r := range rep.Results {
		def := "-"
		if r.Definition != snapopt.Unknown {
			def = strconv.Itoa(r.Definition)
		}
		status := "ok"
		if !r.OK {
			status = r.Error
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Index),
			r.Form,
			r.Option,
			runewidth.Truncate(r.Argument, argLimit, "…"),
			def,
			orDash(r.Return),
			status,
		})
	}

	widths := make([]int, len(textHeader))
	for _, row := range append([][]string{textHeader}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	w := m.Out()
	if err := writeRow(w, textHeader, widths, func(i int, s string) string { return m.Bold(s) }); err != nil {
		return err
	}
	for i, row := range rows {
		ok := rep.Results[i].OK
		err := writeRow(w, row, widths, func(col int, s string) string {
			if col != len(row)-1 {
				return s
			}
			if ok {
				return theme.Success.Sprint(m, s)
			}
			return theme.Error.Sprint(m, s)
		})
		if err != nil {
			return err
		}
	}

	if len(rep.Flags) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nflags:"); err != nil {
		return err
	}
	for _, f := range rep.Flags {
		if _, err := fmt.Fprintf(w, "  %s = %d\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeRow pads before styling so escape codes do not count toward widths
func writeRow(w io.Writer, row []string, widths []int, style func(int, string) string) error {
	cells := make([]string, len(row))
	for i, cell := range row {
		if i < len(row)-1 {
			cell = runewidth.FillRight(cell, widths[i])
		}
		cells[i] = style(i, cell)
	}
	_, err := fmt.Fprintln(w, strings.Join(cells, "  "))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
