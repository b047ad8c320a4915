package config

import "github.com/sarchlab/pimgen/layout"

// Builder can build run configurations.
type Builder struct {
	cfg Config
}

// MakeBuilder starts from the default configuration.
func MakeBuilder() Builder {
	return Builder{cfg: Default()}
}

// From starts from an existing configuration.
func (b Builder) From(c Config) Builder {
	b.cfg = c
	return b
}

// WithInput sets the matrix file.
func (b Builder) WithInput(path string) Builder {
	b.cfg.Input = path
	return b
}

// WithFill generates n x n operands instead of reading a file.
func (b Builder) WithFill(n int) Builder {
	b.cfg.Fill = n
	return b
}

// WithOutput sets the program output file.
func (b Builder) WithOutput(path string) Builder {
	b.cfg.Output = path
	return b
}

// WithFormat sets the output format.
func (b Builder) WithFormat(format string) Builder {
	b.cfg.Format = format
	return b
}

// WithRowTiling enables row tiling in the compute phase.
func (b Builder) WithRowTiling(tileRows bool) Builder {
	b.cfg.RowTiling = tileRows
	return b
}

// WithReport sets the verification report file.
func (b Builder) WithReport(path string) Builder {
	b.cfg.Report = path
	return b
}

// WithLogLevel sets the log level.
func (b Builder) WithLogLevel(level string) Builder {
	b.cfg.LogLevel = level
	return b
}

// WithLayout sets the memory layout.
func (b Builder) WithLayout(l layout.Layout) Builder {
	b.cfg.Layout = LayoutConfig{
		BaseA:     l.BaseA,
		BaseB:     l.BaseB,
		BaseC:     l.BaseC,
		SIMDWidth: l.SIMDWidth,
	}
	return b
}

// Build validates and returns the configuration.
func (b Builder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}

	return b.cfg, nil
}
