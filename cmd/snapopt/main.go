// Command snapopt parses an argument vector against a YAML option table and
// prints the resolved records.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	snapio "github.com/dzonerzy/go-snapopt/io"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	m := snapio.New()
	err := newRootCommand(m).Execute()
	handleError(m, err)
	os.Exit(exitCode(err))
}

// globals shared by every subcommand
type globals struct {
	io        *snapio.IOManager
	logLevel  string
	logFormat string
	noColor   bool

	log     *zap.Logger
	console *snapio.Logger
}

func newRootCommand(m *snapio.IOManager) *cobra.Command {
	g := &globals{io: m, logLevel: "warn"}
	cmd := &cobra.Command{
		Use:           "snapopt",
		Short:         "Single-pass GNU-style option parsing against declarative tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	cmd.SetOut(m.Out())
	cmd.SetErr(m.Err())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Err: err}
	})
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", g.logLevel, "Diagnostic log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "symbols", "Console message prefixes (symbols, tagged, plain)")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	parseCmd := newParseCommand(g)
	lintCmd := newLintCommand(g)
	cmd.AddCommand(parseCmd, lintCmd, newVersionCommand())

	apply := bindViper(cmd, parseCmd, lintCmd)
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := apply(); err != nil {
			return &ExitError{Code: ExitUsage, Err: err}
		}
		return g.setup()
	}
	return cmd
}

func (g *globals) setup() error {
	if g.noColor {
		g.io.NoColor()
	}
	log, err := buildLogger(g.logLevel)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	format, err := snapio.ParseLogFormat(g.logFormat)
	if err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	g.log = log
	g.console = snapio.NewLogger(g.io).WithFormat(format)
	return nil
}

// bindViper lets SNAPOPT_* variables and a snapopt.yaml file supply any flag
// the command line left unset. The returned func runs after flag parsing.
func bindViper(commands ...*cobra.Command) func() error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("SNAPOPT")
	v.AutomaticEnv()
	configFile := os.Getenv("SNAPOPT_CONFIG")
	configureConfigFile(v, configFile)

	return func() error {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				return err
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			return err
		}
		var setErr error
		for _, cmd := range commands {
			for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed || !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val == "" {
						return
					}
					if err := f.Value.Set(val); err != nil && setErr == nil {
						setErr = fmt.Errorf("invalid value %q for %s: %w", val, f.Name, err)
					}
				})
			}
		}
		return setErr
	}
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("snapopt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "snapopt"))
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

// buildLogger returns the diagnostic logger. Diagnostics go to stderr so
// they never mix with parse output.
func buildLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning", "":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func handleError(m *snapio.IOManager, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		// already reported
		return
	}
	fmt.Fprintf(m.Err(), "Error: %s\n", err)
}
