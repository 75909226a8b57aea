package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/gaulthiergain/syscalls-heatmap/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set syscalls-heatmap configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "sheet_path: %s\n", cfg.SheetPath)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "sheet_index: %d\n", cfg.SheetIndex)
		fmt.Fprintf(out, "aggregated_file: %s\n", cfg.AggregatedFile)
		fmt.Fprintf(out, "aggregated_output: %s\n", cfg.AggregatedOutput)
		fmt.Fprintf(out, "nb_apps: %d\n", cfg.NbApps)
		fmt.Fprintf(out, "heatmap_output: %s\n", cfg.HeatmapOutput)
		fmt.Fprintf(out, "grid_width: %d\n", cfg.GridWidth)
		fmt.Fprintf(out, "font_size: %.1f\n", cfg.FontSize)
		fmt.Fprintf(out, "palette: %s\n", cfg.Palette)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// start from the file so flag and env overrides are not persisted
		cfg, err := cfgpkg.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "sheet_path":
			cfg.SheetPath = val
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid sheet_index: %v (1-based)", val)
			}
			cfg.SheetIndex = i
		case "aggregated_file":
			cfg.AggregatedFile = val
		case "aggregated_output":
			cfg.AggregatedOutput = val
		case "nb_apps":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for nb_apps: %v", val)
			}
			cfg.NbApps = i
		case "heatmap_output":
			cfg.HeatmapOutput = val
		case "grid_width":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for grid_width: %v", val)
			}
			cfg.GridWidth = i
		case "font_size":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for font_size: %v", val)
			}
			cfg.FontSize = f
		case "palette":
			cfg.Palette = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
