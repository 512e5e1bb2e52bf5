package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dzonerzy/go-snapopt/snapopt"
)

type lintOptions struct {
	table string
	print bool
}

func newLintCommand(g *globals) *cobra.Command {
	opts := &lintOptions{}
	cmd := &cobra.Command{
		Use:   "lint -t TABLE",
		Short: "Report shadowed or unreachable definitions in an option table",
		Long: `Lint loads an option table and reports forms that an earlier definition
already claims, extra non-option definitions, and long names that can never
match. The command exits with status 1 when any conflict is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(g, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "Option table file (YAML, - for stdin)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Write the normalized table to stdout")
	return cmd
}

func runLint(g *globals, opts *lintOptions) error {
	tbl, err := loadTable(g, opts.table)
	if err != nil {
		return err
	}
	if opts.print {
		if err := tbl.Encode(g.io.Out()); err != nil {
			return errors.Wrap(err, "print table")
		}
	}

	conflicts := snapopt.Lint(tbl.Definitions)
	if len(conflicts) == 0 {
		if opts.print {
			// keep stdout a valid document
			return nil
		}
		g.console.Success("%s: %d definitions, no conflicts", opts.table, len(tbl.Definitions))
		return nil
	}
	for _, c := range conflicts {
		g.console.Warning("%s", c)
	}
	return &ExitError{Code: ExitFailure}
}
