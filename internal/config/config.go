package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const dirName = ".syscalls-heatmap"

// Global configuration structure.
type Global struct {
	// Status sheet
	SheetPath  string `mapstructure:"sheet_path" yaml:"sheet_path"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`

	// Usage data
	AggregatedFile   string `mapstructure:"aggregated_file" yaml:"aggregated_file"`
	AggregatedOutput string `mapstructure:"aggregated_output" yaml:"aggregated_output"`
	NbApps           int    `mapstructure:"nb_apps" yaml:"nb_apps"`

	// Heatmap rendering
	HeatmapOutput string  `mapstructure:"heatmap_output" yaml:"heatmap_output"`
	GridWidth     int     `mapstructure:"grid_width" yaml:"grid_width"`
	FontSize      float64 `mapstructure:"font_size" yaml:"font_size"`
	Palette       string  `mapstructure:"palette" yaml:"palette"`
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.syscalls-heatmap/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadFile loads the configuration file over defaults, ignoring the
// environment. Use it when the result is written back with Save.
func LoadFile(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("SYSCALLS_HEATMAP")
		v.AutomaticEnv()
	}

	v.SetDefault("sheet_path", "Unikraft - Syscall Status.xlsx")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("aggregated_file", "syscalls_sample.json")
	v.SetDefault("aggregated_output", "aggregated.json")
	v.SetDefault("nb_apps", 30)
	v.SetDefault("heatmap_output", "syscall-heatmap.pdf")
	v.SetDefault("grid_width", 15)
	v.SetDefault("font_size", 8.0)
	v.SetDefault("palette", "YlOrRd")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
