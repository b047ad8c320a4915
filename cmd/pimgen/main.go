// Command pimgen generates the SIMD pPIM instruction stream for multiplying
// the two matrices of a CSV file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/pimgen/config"
	"github.com/sarchlab/pimgen/matrix"
	"github.com/sarchlab/pimgen/program"
	"github.com/sarchlab/pimgen/trace"
	"github.com/sarchlab/pimgen/verify"
	"github.com/tebeka/atexit"
)

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	level, _ := cfg.SlogLevel()
	handler := slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	out := stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			slog.Error("Could not create output file", "Path", cfg.Output, "Error", err)
			return 1
		}
		atexit.Register(func() { f.Close() })
		out = f
	}

	pair, err := cfg.Source().Load()
	if err != nil {
		slog.Error("Could not load matrices", "Error", err)
		return 1
	}
	slog.Info("Detected matrix size", "N", pair.N)
	slog.Debug("Reference product", "C", matrix.Multiply(pair.A, pair.B))

	builder := program.MakeGeneratorBuilder().
		WithLayout(cfg.LayoutSpec()).
		WithRowTiling(cfg.RowTiling)

	var tw *trace.Writer
	if cfg.Format == config.FormatTrace {
		tw = trace.NewWriter(out)
		builder = builder.WithHook(tw)
	}

	prog, err := builder.Build().GenerateFor(pair.N)
	if err != nil {
		slog.Error("Generation failed", "Error", err)
		return 1
	}

	switch cfg.Format {
	case config.FormatTrace:
		err = tw.Err()
	case config.FormatTable:
		err = trace.WriteTable(out, prog)
	case config.FormatHex:
		err = trace.WriteHexImage(out, prog)
	}
	if err != nil {
		slog.Error("Could not write program", "Error", err)
		return 1
	}

	if cfg.Report != "" {
		target := verify.Target{
			Layout:    cfg.LayoutSpec(),
			N:         pair.N,
			RowTiling: cfg.RowTiling,
		}
		report := verify.GenerateReport(prog, target)
		if err := report.SaveReportToFile(cfg.Report); err != nil {
			slog.Error("Could not save report", "Error", err)
			return 1
		}
		if !report.OK() {
			slog.Warn("Program has lint issues", "Count", len(report.Issues), "Report", cfg.Report)
		}
	}

	slog.Info("Program generated", "Instructions", prog.Len())

	return 0
}

func parseConfig(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("pimgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML configuration file")
	input := fs.String("input", "", "matrix CSV file (rows of A, ---, rows of B)")
	fill := fs.Int("fill", 0, "generate N x N operands instead of reading a file")
	format := fs.String("format", "", "output format: trace, table or hex")
	output := fs.String("o", "", "output file (default stdout)")
	report := fs.String("report", "", "write a verification report to this file")
	rowTiling := fs.Bool("row-tiling", false, "step rows by the SIMD width in the compute phase")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	base := config.Default()
	if *configPath != "" {
		var err error
		base, err = config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	b := config.MakeBuilder().From(base)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			b = b.WithInput(*input)
		case "fill":
			b = b.WithFill(*fill)
		case "format":
			b = b.WithFormat(*format)
		case "o":
			b = b.WithOutput(*output)
		case "report":
			b = b.WithReport(*report)
		case "row-tiling":
			b = b.WithRowTiling(*rowTiling)
		case "log-level":
			b = b.WithLogLevel(*logLevel)
		}
	})

	return b.Build()
}
