// Package config holds the settings of a generation run.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/pimgen/layout"
	"github.com/sarchlab/pimgen/matrix"
	"github.com/sarchlab/pimgen/program"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTrace = "trace"
	FormatTable = "table"
	FormatHex   = "hex"
)

// LayoutConfig is the YAML form of layout.Layout.
type LayoutConfig struct {
	BaseA     int `yaml:"base_a"`
	BaseB     int `yaml:"base_b"`
	BaseC     int `yaml:"base_c"`
	SIMDWidth int `yaml:"simd_width"`
}

// Config describes one generation run.
type Config struct {
	// Input is the matrix CSV file. Ignored when Fill is positive.
	Input string `yaml:"input"`
	// Fill generates two Fill x Fill matrices instead of reading Input.
	Fill int `yaml:"fill"`
	// Output is the file the program is written to; empty means stdout.
	Output    string       `yaml:"output"`
	Format    string       `yaml:"format"`
	RowTiling bool         `yaml:"row_tiling"`
	Report    string       `yaml:"report"`
	LogLevel  string       `yaml:"log_level"`
	Layout    LayoutConfig `yaml:"layout"`
}

// Default returns the configuration of the reference accelerator.
func Default() Config {
	l := layout.Default()

	return Config{
		Input:    "matrix.csv",
		Format:   FormatTrace,
		LogLevel: "warn",
		Layout: LayoutConfig{
			BaseA:     l.BaseA,
			BaseB:     l.BaseB,
			BaseC:     l.BaseC,
			SIMDWidth: l.SIMDWidth,
		},
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return c, err
	}

	return c, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Format {
	case FormatTrace, FormatTable, FormatHex:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}

	if c.Fill < 0 {
		return fmt.Errorf("config: fill must not be negative, got %d", c.Fill)
	}

	if c.Fill == 0 && c.Input == "" {
		return fmt.Errorf("config: either input or fill is required")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if err := c.LayoutSpec().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// LayoutSpec converts the layout section.
func (c Config) LayoutSpec() layout.Layout {
	return layout.Layout{
		BaseA:     c.Layout.BaseA,
		BaseB:     c.Layout.BaseB,
		BaseC:     c.Layout.BaseC,
		SIMDWidth: c.Layout.SIMDWidth,
	}
}

// Source returns the matrix source the run reads from.
func (c Config) Source() matrix.Source {
	if c.Fill > 0 {
		return matrix.StaticSource{
			A: matrix.Fill(c.Fill, matrix.IncreasingGen(1)),
			B: matrix.Fill(c.Fill, matrix.IncreasingGen(1)),
		}
	}

	return matrix.CSVSource{Path: c.Input}
}

// SlogLevel parses LogLevel. "trace" selects program.LevelTrace.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return program.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
