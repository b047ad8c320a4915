package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/pimgen/instr"
	"github.com/sarchlab/pimgen/layout"
	"github.com/sarchlab/pimgen/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	ProgramLength int
	Target        Target
	Issues        []Issue
	ByType        map[IssueType][]Issue
	OpcodeCounts  map[instr.Opcode]int
}

// GenerateReport lints the program and collects summary counts.
func GenerateReport(prog *program.Program, target Target) *VerificationReport {
	report := &VerificationReport{
		ProgramLength: prog.Len(),
		Target:        target,
		ByType:        make(map[IssueType][]Issue),
		OpcodeCounts:  make(map[instr.Opcode]int),
	}

	report.Issues = RunLint(prog, target)
	for _, issue := range report.Issues {
		report.ByType[issue.Type] = append(report.ByType[issue.Type], issue)
	}

	for _, op := range []instr.Opcode{instr.NoOp, instr.Prog, instr.Exe, instr.End} {
		report.OpcodeCounts[op] = prog.Count(op)
	}

	return report
}

// OK reports whether no issue was found.
func (r *VerificationReport) OK() bool {
	return len(r.Issues) == 0
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "SIMD pPIM PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)

	l := r.Target.Layout
	fmt.Fprintf(w, "\nMatrix size (N): %d\n", r.Target.N)
	fmt.Fprintf(w, "SIMD width: %d, row tiling: %v\n", l.SIMDWidth, r.Target.RowTiling)
	for _, region := range layout.Regions {
		first, last := l.Extent(region, r.Target.N)
		fmt.Fprintf(w, "  Region %s: 0x%03X - 0x%03X\n", region, first, last)
	}

	counts := table.NewWriter()
	counts.SetTitle(fmt.Sprintf("Instructions (%d)", r.ProgramLength))
	counts.AppendHeader(table.Row{"Opcode", "Count"})
	for _, op := range []instr.Opcode{instr.NoOp, instr.Prog, instr.Exe, instr.End} {
		counts.AppendRow(table.Row{op.String(), r.OpcodeCounts[op]})
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, counts.Render())

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "LINT CHECKS")
	fmt.Fprintln(w, separator)

	if r.OK() {
		fmt.Fprintln(w, "✓ No lint issues found!")
	} else {
		fmt.Fprintf(w, "⚠ Found %d lint issues:\n\n", len(r.Issues))

		issues := table.NewWriter()
		issues.AppendHeader(table.Row{"Type", "Instruction", "Message"})
		for _, t := range IssueTypes {
			for _, issue := range r.ByType[t] {
				at := "-"
				if issue.Index >= 0 {
					at = fmt.Sprintf("%d", issue.Index)
				}
				issues.AppendRow(table.Row{string(issue.Type), at, issue.Message})
			}
		}
		fmt.Fprintln(w, issues.Render())
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	parts := make([]string, 0, len(IssueTypes))
	for _, t := range IssueTypes {
		parts = append(parts, fmt.Sprintf("%d %s", len(r.ByType[t]), t))
	}
	fmt.Fprintf(w, "Lint Result: %d issues detected (%s)\n",
		len(r.Issues), strings.Join(parts, ", "))

	if r.OK() {
		fmt.Fprintln(w, "✓ PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "⚠ PROGRAM HAS ISSUES")
	}

	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
