package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaulthiergain/syscalls-heatmap/internal/support"
)

var (
	supApps     bool
	supSyscalls bool
)

var supportCmd = &cobra.Command{
	Use:   "support <folder>",
	Short: "Print syscall support per application and syscall popularity as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !supApps && !supSyscalls {
			return fmt.Errorf("nothing to print: use --apps and/or --syscalls")
		}
		sh, err := loadSheet()
		if err != nil {
			return err
		}
		rep, err := support.Analyze(sh, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if supApps {
			if err := rep.WriteAppsCSV(out); err != nil {
				return fmt.Errorf("write apps csv: %w", err)
			}
		}
		if supSyscalls {
			if err := rep.WriteSyscallsCSV(out); err != nil {
				return fmt.Errorf("write syscalls csv: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(supportCmd)
	supportCmd.Flags().BoolVarP(&supApps, "apps", "a", false, "print system call support in applications")
	supportCmd.Flags().BoolVarP(&supSyscalls, "syscalls", "s", false, "print system call usage / popularity in apps")
}
