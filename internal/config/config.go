package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// CSV defaults; the sensor exports this tool targets are typically
	// latin1-encoded and semicolon-delimited with comma decimals.
	CSVEncoding  string `mapstructure:"csv_encoding" yaml:"csv_encoding"`
	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`

	// Artifact locations
	ModelsDir string `mapstructure:"models_dir" yaml:"models_dir"`
	PlotsDir  string `mapstructure:"plots_dir" yaml:"plots_dir"`

	// Chart rendering
	PlotWidth     int `mapstructure:"plot_width" yaml:"plot_width"`
	PlotHeight    int `mapstructure:"plot_height" yaml:"plot_height"`
	HistogramBins int `mapstructure:"histogram_bins" yaml:"histogram_bins"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edakit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".edakit")
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
	v := viper.New()
	v.SetEnvPrefix("EDAKIT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("csv_encoding", "latin1")
	v.SetDefault("csv_delimiter", ";")
	v.SetDefault("plots_dir", ".")
	v.SetDefault("plot_width", 1280)
	v.SetDefault("plot_height", 720)
	v.SetDefault("histogram_bins", 15)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".edakit")
		_ = os.MkdirAll(dir, 0o755)
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
	// Resolve models_dir default: ~/.edakit/models
	if c.ModelsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ModelsDir = filepath.Join(home, ".edakit", "models")
	}
	return &c, nil
}
