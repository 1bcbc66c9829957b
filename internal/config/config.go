package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"invocr/internal/domain"
)

// Config holds all settings for the batch extraction CLI. The extraction
// core itself is configuration-free; everything here concerns input
// discovery, output and logging.
type Config struct {
	Input  InputConfig
	Output OutputConfig
	Log    LogConfig
}

// InputConfig holds input discovery settings.
type InputConfig struct {
	Dir       string `mapstructure:"dir"`
	Extension string `mapstructure:"extension"`
}

// OutputConfig holds result export settings.
type OutputConfig struct {
	Path          string  `mapstructure:"path"`
	Format        string  `mapstructure:"format"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// Format returns the validated output format.
func (o *OutputConfig) OutputFormat() (domain.OutputFormat, error) {
	format, ok := domain.AllowedOutputFormats[strings.ToLower(o.Format)]
	if !ok {
		return "", fmt.Errorf("unsupported output format %q (want json, csv or xlsx)", o.Format)
	}
	return format, nil
}

// Load reads configuration from environment variables with the INVOCR_
// prefix, e.g. INVOCR_OUTPUT_FORMAT=csv.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Input defaults
	v.SetDefault("input.dir", ".")
	v.SetDefault("input.extension", ".txt")

	// Output defaults
	v.SetDefault("output.path", "extraction-results.json")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.min_confidence", 0.0)

	// Log defaults
	v.SetDefault("log.verbose", false)

	var cfg Config
	cfg.Input = InputConfig{
		Dir:       v.GetString("input.dir"),
		Extension: v.GetString("input.extension"),
	}
	cfg.Output = OutputConfig{
		Path:          v.GetString("output.path"),
		Format:        v.GetString("output.format"),
		MinConfidence: v.GetFloat64("output.min_confidence"),
	}
	cfg.Log = LogConfig{
		Verbose: v.GetBool("log.verbose"),
	}

	if _, err := cfg.Output.OutputFormat(); err != nil {
		return nil, err
	}
	if cfg.Output.MinConfidence < 0 || cfg.Output.MinConfidence > 1 {
		return nil, fmt.Errorf("output.min_confidence must be in [0,1], got %v", cfg.Output.MinConfidence)
	}

	return &cfg, nil
}
