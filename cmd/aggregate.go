package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaulthiergain/syscalls-heatmap/internal/usage"
)

var aggOutput string

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <folder>",
	Short: "Aggregate per-application JSON reports into a <syscall, usage> file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := loadSheet()
		if err != nil {
			return err
		}
		counts := usage.NewCounts(sh.Names())
		nb, err := usage.AggregateFolder(args[0], counts, logger)
		if err != nil {
			return err
		}
		out := cfg.AggregatedOutput
		if cmd.Flags().Changed("output") {
			out = aggOutput
		}
		if out == "" {
			return fmt.Errorf("no output path set")
		}
		if err := usage.WriteAggregated(out, counts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Aggregated %d applications into %s\n", nb, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().StringVarP(&aggOutput, "output", "o", "aggregated.json", "path of the aggregated JSON file")
}
