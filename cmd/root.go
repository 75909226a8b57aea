package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/gaulthiergain/syscalls-heatmap/internal/config"
	"github.com/gaulthiergain/syscalls-heatmap/internal/sheet"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Status sheet flags (override config if set)
	flagSheetPath  string
	flagSheetName  string
	flagSheetIndex int

	// Loaded configuration
	cfg *cfgpkg.Global

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "syscalls-heatmap",
	Short: "Visualize syscall usage and support across analysed applications",
	Long: `syscalls-heatmap aggregates the system calls used by a corpus of applications,
as reported by the syscall analysis toolchain, and renders their popularity as a heatmap
annotated with the implementation status of each syscall.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return loadConfig() }
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.syscalls-heatmap/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSheetPath, "sheet", "", "syscall status sheet (.xlsx, .csv or .tsv; overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to read (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index, used if no sheet name is set (overrides config)")
}

func loadConfig() error {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(level).
		With().Timestamp().Str("run", uuid.NewString()).Logger()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("sheet") && flagSheetPath != "" {
		cfg.SheetPath = flagSheetPath
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}
	logger.Debug().Str("sheet", cfg.SheetPath).Msg("configuration loaded")
	return nil
}

// loadSheet reads the status sheet selected by the configuration.
func loadSheet() (*sheet.Sheet, error) {
	opt := sheet.DefaultOptions()
	opt.SheetName = cfg.SheetName
	if cfg.SheetIndex > 0 {
		opt.SheetIndex = cfg.SheetIndex
	}
	sh, err := sheet.Load(cfg.SheetPath, opt)
	if err != nil {
		return nil, fmt.Errorf("load status sheet: %w", err)
	}
	if sh.Len() == 0 {
		return nil, fmt.Errorf("status sheet %s has no syscalls", cfg.SheetPath)
	}
	logger.Debug().Int("syscalls", sh.Len()).Msg("status sheet loaded")
	return sh, nil
}
