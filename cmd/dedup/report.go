package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dedup/pkg/core"
	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/reporter"
)

func newReportCmd() *cobra.Command {
	var flags detectFlags
	var format, output string

	cmd := &cobra.Command{
		Use:     "report [directory]",
		Short:   MsgReportShort,
		Long:    MsgReportLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			outFormat, err := reporter.ParseFormat(format)
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
			// File reports are always uncolored.
			out, err := reporter.New(false).Render(outFormat, report)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return errors.WrapIO(err, output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", MsgFlagFormat)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)

	return cmd
}
