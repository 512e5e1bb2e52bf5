package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dzonerzy/go-snapopt/snapopt"
	"github.com/dzonerzy/go-snapopt/table"
)

type parseOptions struct {
	table      string
	sort       string
	errors     bool
	introducer string
	output     string
}

func newParseCommand(g *globals) *cobra.Command {
	opts := &parseOptions{sort: "classic", errors: true, output: "text"}
	cmd := &cobra.Command{
		Use:   "parse -t TABLE [flags] -- ARGS...",
		Short: "Parse ARGS against an option table",
		Long: `Parse resolves ARGS in one pass against the option table and prints one
record per resolved option character, long option and non-option, followed by
the final value of every named flag cell.

The command exits with status 1 when any failed record is printed.`,
		Example: `  snapopt parse -t table.yaml -- -vo out.txt --man in.txt
  snapopt parse -t table.yaml --sort input -o json -- --fil x
  SNAPOPT_TABLE=table.yaml snapopt parse -- /v //help`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(g, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "Option table file (YAML, - for stdin)")
	cmd.Flags().StringVar(&opts.sort, "sort", opts.sort, "Result order (classic, definition, return, input)")
	cmd.Flags().BoolVar(&opts.errors, "errors", opts.errors, "Include failed records in the output")
	cmd.Flags().StringVar(&opts.introducer, "introducer", "", "Option introducer character (overrides the table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "Output format (text, json, yaml)")
	return cmd
}

func runParse(g *globals, opts *parseOptions, args []string) error {
	mode, err := snapopt.ParseSortMode(opts.sort)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	render, ok := renderers[opts.output]
	if !ok {
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("unknown output format %q (expected text, json or yaml)", opts.output)}
	}
	tbl, err := loadTable(g, opts.table)
	if err != nil {
		return err
	}

	p := tbl.Parser().SortBy(mode).IncludeErrors(opts.errors).WithLogger(g.log)
	if opts.introducer != "" {
		r, size := utf8.DecodeRuneInString(opts.introducer)
		if size != len(opts.introducer) || r == utf8.RuneError {
			return &ExitError{Code: ExitUsage, Err: fmt.Errorf("introducer must be a single character, got %q", opts.introducer)}
		}
		p.Introducer(r)
	}

	results := p.Parse(args)
	g.log.Debug("parsed", zap.Stringer("parser", p), zap.Int("args", len(args)), zap.Int("results", len(results)))

	rep := newReport(p, results, tbl.Flags)
	if err := render(g.io, rep); err != nil {
		return errors.Wrap(err, "write results")
	}
	if rep.Failed == 0 {
		return nil
	}
	if opts.output == "text" {
		for _, r := range results {
			if perr := p.ResultError(r); perr != nil {
				g.console.Error("%s", perr)
			}
		}
	}
	return &ExitError{Code: ExitFailure}
}

// loadTable reads path, or stdin for "-"
func loadTable(g *globals, path string) (*table.Table, error) {
	if path == "" {
		return nil, &ExitError{Code: ExitUsage, Err: errors.New("no option table given (use --table or SNAPOPT_TABLE)")}
	}
	var (
		tbl *table.Table
		err error
	)
	if path == "-" {
		tbl, err = table.Decode(g.io.In())
	} else {
		tbl, err = table.LoadFile(path)
	}
	if err != nil {
		return nil, &ExitError{Code: ExitTable, Err: err}
	}
	g.log.Debug("loaded option table", zap.String("path", path), zap.Int("definitions", len(tbl.Definitions)))
	return tbl, nil
}
