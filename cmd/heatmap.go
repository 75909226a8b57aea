package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/gaulthiergain/syscalls-heatmap/internal/heatmap"
	"github.com/gaulthiergain/syscalls-heatmap/internal/usage"
)

var (
	hmAggregatedFile string
	hmNbApps         int
	hmFolder         string
	hmAggregatedOut  string
	hmDisplayNames   bool
	hmOutput         string
	hmWidth          int
	hmFontSize       float64
	hmPalette        string
	hmTitle          string
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render syscall popularity as a heatmap",
	Long: `Render the percentage of applications using each syscall, in status sheet order.
Usage comes either from an aggregated <syscall, usage> JSON file or from a folder of
per-application JSON reports, which is aggregated on the fly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := loadSheet()
		if err != nil {
			return err
		}
		counts := usage.NewCounts(sh.Names())
		f := cmd.Flags()

		nbApps := cfg.NbApps
		if f.Changed("nb-apps") {
			nbApps = hmNbApps
		}
		if hmFolder != "" {
			nb, err := usage.AggregateFolder(hmFolder, counts, logger)
			if err != nil {
				return err
			}
			nbApps = nb
			out := cfg.AggregatedOutput
			if f.Changed("aggregated-out") {
				out = hmAggregatedOut
			}
			if out != "" {
				if err := usage.WriteAggregated(out, counts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Aggregated %d applications into %s\n", nb, out)
			}
		} else {
			in := cfg.AggregatedFile
			if f.Changed("aggregated-file") {
				in = hmAggregatedFile
			}
			if err := usage.ReadAggregated(in, counts, logger); err != nil {
				return err
			}
		}

		values, err := usage.Percentages(counts, nbApps)
		if err != nil {
			return fmt.Errorf("no applications to compute usage for: %w", err)
		}

		opt := heatmap.DefaultOptions()
		opt.Width = cfg.GridWidth
		if f.Changed("width") {
			opt.Width = hmWidth
		}
		opt.FontSize = cfg.FontSize
		if f.Changed("font-size") {
			opt.FontSize = hmFontSize
		}
		opt.Palette = cfg.Palette
		if f.Changed("palette") {
			opt.Palette = hmPalette
		}
		opt.Title = hmTitle
		if hmDisplayNames {
			opt.CellWidth = 1.1 * vg.Inch
			opt.CellHeight = 0.6 * vg.Inch
		}

		out := cfg.HeatmapOutput
		if f.Changed("output") {
			out = hmOutput
		}
		if out == "" {
			out = heatmap.DefaultOutput
		}
		if err := heatmap.Save(out, values, heatmap.Labels(sh, hmDisplayNames), opt); err != nil {
			return err
		}
		logger.Debug().Int("apps", nbApps).Int("syscalls", len(values)).Msg("heatmap rendered")
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote heatmap to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
	heatmapCmd.Flags().StringVar(&hmAggregatedFile, "aggregated-file", "syscalls_sample.json", "aggregated JSON file mapping syscall to usage")
	heatmapCmd.Flags().IntVar(&hmNbApps, "nb-apps", 30, "number of applications analysed by the toolchain (ignored with --folder-to-aggregate)")
	heatmapCmd.Flags().StringVar(&hmFolder, "folder-to-aggregate", "", "folder of per-application JSON reports to aggregate")
	heatmapCmd.Flags().StringVar(&hmAggregatedOut, "aggregated-out", "aggregated.json", "where to write the aggregated JSON when aggregating a folder (empty to skip)")
	heatmapCmd.Flags().BoolVar(&hmDisplayNames, "display-syscall-name", false, "display syscall name and status in every cell (large figure)")
	heatmapCmd.Flags().StringVarP(&hmOutput, "output", "o", heatmap.DefaultOutput, "output image; format follows the extension (pdf, png, svg, ...)")
	heatmapCmd.Flags().IntVar(&hmWidth, "width", heatmap.DefaultWidth, "number of cells per row")
	heatmapCmd.Flags().Float64Var(&hmFontSize, "font-size", 8, "annotation font size in points")
	heatmapCmd.Flags().StringVar(&hmPalette, "palette", "YlOrRd", "sequential ColorBrewer palette")
	heatmapCmd.Flags().StringVar(&hmTitle, "title", "", "optional figure title")
}
