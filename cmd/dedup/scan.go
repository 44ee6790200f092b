package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dedup/pkg/config"
	"github.com/arthur-debert/dedup/pkg/core"
	"github.com/arthur-debert/dedup/pkg/reporter"
	"github.com/arthur-debert/dedup/pkg/ui/progress"
)

// detectFlags are the flags shared by every command that runs
// duplicate detection. They override the loaded configuration.
type detectFlags struct {
	fileTypes  []string
	exclude    []string
	workers    int
	noProgress bool
}

func (f *detectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.fileTypes, "types", "t", nil, MsgFlagTypes)
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "e", nil, MsgFlagExclude)
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, MsgFlagWorkers)
	cmd.Flags().BoolVar(&f.noProgress, "no-progress", false, MsgFlagNoProgress)
}

// loadConfig loads the effective configuration and applies the
// command-line overrides on top.
func (f *detectFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("types") {
		cfg.Scan.FileTypes = f.fileTypes
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Scan.ExcludeDirs = append(cfg.Scan.ExcludeDirs, f.exclude...)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Hash.Workers = f.workers
	}
	return cfg, nil
}

// findOptions wires progress bars into a detection pass. The returned
// stop function clears any bar still on screen.
func (f *detectFlags) findOptions(root string, cfg *config.Config) (core.FindOptions, func()) {
	opts := core.FindOptions{Root: root, Config: cfg}

	if f.noProgress {
		return opts, func() {}
	}

	// Bars render on stderr so report output stays pipeable.
	var scanBar, hashBar *progress.Bar
	opts.ScanProgress = func(processed, total int, dir string) {
		if scanBar == nil {
			scanBar = progress.NewBar("Scanning", total, os.Stderr)
		}
		scanBar.Set(processed)
	}
	opts.HashProgress = func(pct int) {
		if hashBar == nil {
			if scanBar != nil {
				scanBar.Stop()
			}
			hashBar = progress.NewBar("Hashing", 100, os.Stderr)
		}
		hashBar.Set(pct)
	}

	return opts, func() {
		if scanBar != nil {
			scanBar.Stop()
		}
		if hashBar != nil {
			hashBar.Stop()
		}
	}
}

// rootArg resolves the positional directory argument, defaulting to
// the current directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func newScanCmd() *cobra.Command {
	var flags detectFlags
	var format string

	cmd := &cobra.Command{
		Use:     "scan [directory]",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			outFormat, err := reporter.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			opts, stop := flags.findOptions(rootArg(args), cfg)
			result, err := core.FindDuplicates(opts)
			stop()
			if err != nil {
				return err
			}

			report := reporter.Build(result.Groups, result.Decisions, result.Summary.Processed)
			out, err := reporter.New(cfg.Output.Color).Render(outFormat, report)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)

	return cmd
}
