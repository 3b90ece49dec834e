// Package main implements testablegen, a code generator that makes unexported
// members of a Go package reachable from its tests.
//
// testablegen scans a package for testable markers and writes one _test.go
// file of exported accessors, following the export_test.go pattern:
//   - getters, setters and clearers for marked struct fields and package vars
//   - call-through functions for marked methods and functions
//   - an arguments struct with defaults for functions declaring default values
//
// Usage:
//
//	testablegen [flags] [package-dir]
//
// Flags:
//
//	--output <file>
//	    Name of the generated file inside the package dir (default: "testable_generated_test.go")
//	--prefix <name>
//	    Prefix of every generated identifier (default: "Testable")
//	--scope external|package
//	    Who consumes the accessors; decides which types are reachable (default: "external")
//	--unreachable ignore|warn|error
//	    How members that cannot be exposed are reported (default: "warn")
//	--config <path>
//	    YAML config file (default: .testablegen.yaml in the package dir, if present)
//	--verify
//	    Type-check the package and its tests against the generated file
//
// Example:
//
//	//go:generate go run github.com/ecordell/testablegen .
//
// Marker Format:
//
// Fields are marked with the `testable` struct tag, whose value lists the
// accessors to generate ("getter", "setter", "clearer"; empty means all).
// Functions, methods, fields and vars may instead carry a directive comment
// whose options use struct tag syntax:
//
//	type Subject struct {
//	    defaultProperty map[string]float64 `testable:"getter,setter,clearer"`
//	}
//
//	//testable:generate default:"multiplier=1.0"
//	func (s *Subject) multiplySum(multiplier float64, valuesToSum ...*float64) float64
//
// A member whose accessor would name a type the consumer cannot reach is
// skipped and reported; the remaining members are still generated.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath  string
	output      string
	prefix      string
	scope       string
	unreachable string
	verify      bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:           "testablegen [package-dir]",
		Short:         "Generate test accessors for unexported members",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			err := run(cmd, dir, opts, logger)
			if err != nil {
				logger.Error("generation failed", zap.String("dir", dir), zap.Error(err))
			}
			return err
		},
	}

	defaults := NewConfig()
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default: "+DefaultConfigFile+" in the package dir)")
	flags.StringVar(&opts.output, "output", defaults.Output, "Name of the generated file inside the package dir")
	flags.StringVar(&opts.prefix, "prefix", defaults.Prefix, "Prefix of every generated identifier")
	flags.StringVar(&opts.scope, "scope", string(defaults.Scope), "Consumer of the accessors: external or package")
	flags.StringVar(&opts.unreachable, "unreachable", string(defaults.Unreachable), "Reporting of members that cannot be exposed: ignore, warn or error")
	flags.BoolVar(&opts.verify, "verify", defaults.Verify, "Type-check the package and its tests against the generated file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, dir string, opts *rootOptions, logger *zap.Logger) error {
	cfg, err := LoadConfig(opts.configPath, dir)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("generating accessors", zap.String("dir", dir), zap.String("output", cfg.Output), zap.String("scope", string(cfg.Scope)))

	res, err := Generate(cmd.Context(), dir, cfg, logger)
	if res != nil {
		res.Diagnostics.Log(logger)
	}
	if err != nil {
		if errors.Is(err, ErrNoMembers) {
			return fmt.Errorf("nothing to generate in %s: %w", dir, err)
		}
		return err
	}

	if err := res.Write(FileWriter); err != nil {
		return err
	}
	logger.Info("wrote accessors", zap.String("path", res.Path), zap.Int("members", len(res.Members)), zap.Int("accessors", len(res.Accessors)))
	return nil
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *Config, opts *rootOptions) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("prefix") {
		cfg.Prefix = opts.prefix
	}
	if flags.Changed("scope") {
		cfg.Scope = Scope(opts.scope)
	}
	if flags.Changed("unreachable") {
		cfg.Unreachable = UnreachablePolicy(opts.unreachable)
	}
	if flags.Changed("verify") {
		cfg.Verify = opts.verify
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.DisableStacktrace = true
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
