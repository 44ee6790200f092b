package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dedup/pkg/core"
	"github.com/arthur-debert/dedup/pkg/reporter"
)

func newCleanCmd() *cobra.Command {
	var flags detectFlags
	var yes bool

	cmd := &cobra.Command{
		Use:     "clean [directory]",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			findOpts, stop := flags.findOptions(rootArg(args), cfg)
			defer stop()

			result, err := core.Clean(core.CleanOptions{
				FindOptions: findOpts,
				DryRun:      dryRun,
				Confirm: func(find *core.FindResult) bool {
					stop()
					printReport(cmd, cfg.Output.Color, find)
					if dryRun || yes {
						return true
					}
					return confirm(cmd, find.Stats)
				},
			})
			if err != nil {
				return err
			}

			if len(result.Find.Decisions) == 0 {
				printReport(cmd, cfg.Output.Color, result.Find)
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoDuplicates)
				return nil
			}
			if result.Aborted {
				fmt.Fprintln(cmd.OutOrStdout(), MsgAbortedNotice)
				return nil
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgCleanedFormat, result.Deleted, result.Find.Stats.SpaceHuman())
			if result.Failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgFailuresFormat, result.Failed)
				for _, outcome := range result.Outcomes {
					if !outcome.Success {
						fmt.Fprintf(cmd.OutOrStdout(), MsgFailureItem, outcome.Path, outcome.Err)
					}
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)

	return cmd
}

func printReport(cmd *cobra.Command, color bool, find *core.FindResult) {
	report := reporter.Build(find.Groups, find.Decisions, find.Summary.Processed)
	out, err := reporter.New(color).Render(reporter.FormatTable, report)
	if err != nil {
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

// confirm asks for an explicit yes on stdin before any file is moved.
func confirm(cmd *cobra.Command, stats reporter.ScanStats) bool {
	fmt.Fprintf(cmd.OutOrStdout(), MsgConfirmFormat, stats.FilesToDelete, stats.SpaceHuman())

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
