// Package trace renders generated programs for people: the annotated console
// trace, a table view and a plain hex image.
package trace

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/pimgen/program"
)

// FormatLine renders one entry as a field dump followed by its annotation.
func FormatLine(e program.Entry) string {
	i := e.Inst

	line := fmt.Sprintf(
		"Opcode: %02b (%s), Core Ptr: %06b, Rd: %d, Wr: %d, Row Address: %09b [%s] | Binary: %s",
		uint8(i.Opcode()), i.Opcode(), i.CorePtr(), i.Rd(), i.Wr(), i.RowAddr(),
		i.Hex(), i.Binary(),
	)
	if e.Comment != "" {
		line += "  ; " + e.Comment
	}

	return line
}

// SectionTitle returns the heading printed before the first entry of a phase.
// END has no heading of its own.
func SectionTitle(p program.Phase) string {
	switch p {
	case program.PhaseLUT:
		return "Programming SIMD LUTs:"
	case program.PhaseLoad:
		return "Loading Matrices into SIMD Memory:"
	case program.PhaseCompute:
		return "Generating Optimized SIMD pPIM ISA for Matrix Multiplication:"
	default:
		return ""
	}
}

// Writer prints every emitted instruction. It can be attached to a
// program.Generator as a hook so the trace streams while the program is
// generated.
type Writer struct {
	w       io.Writer
	started bool
	phase   program.Phase
	err     error
}

// NewWriter creates a Writer that prints to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Func implements sim.Hook.
func (tw *Writer) Func(ctx sim.HookCtx) {
	if ctx.Pos != program.HookPosInstEmit {
		return
	}

	entry, ok := ctx.Item.(program.Entry)
	if !ok {
		return
	}

	tw.WriteEntry(entry)
}

// WriteEntry prints one entry, preceded by a section heading when the phase
// changes.
func (tw *Writer) WriteEntry(e program.Entry) {
	if tw.err != nil {
		return
	}

	if !tw.started || e.Phase != tw.phase {
		if title := SectionTitle(e.Phase); title != "" {
			_, tw.err = fmt.Fprintf(tw.w, "\n%s\n", title)
		}
		tw.started = true
		tw.phase = e.Phase
	}

	if tw.err == nil {
		_, tw.err = fmt.Fprintln(tw.w, FormatLine(e))
	}

	program.Trace("Inst",
		"Behavior", "Emit",
		"Index", e.Index,
		"Phase", e.Phase.String(),
		"Hex", e.Inst.Hex(),
		"Comment", e.Comment,
	)
}

// Err returns the first write error.
func (tw *Writer) Err() error {
	return tw.err
}

// WriteTrace prints a whole program in trace form.
func WriteTrace(w io.Writer, prog *program.Program) error {
	tw := NewWriter(w)
	for _, e := range prog.Entries() {
		tw.WriteEntry(e)
	}

	return tw.Err()
}

// RenderTable renders the program as a table.
func RenderTable(prog *program.Program) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("SIMD pPIM Program (%d instructions)", prog.Len()))
	t.AppendHeader(table.Row{
		"#", "Phase", "Opcode", "Core Ptr", "Rd", "Wr", "Row Addr", "Hex", "Binary", "Comment",
	})

	for _, e := range prog.Entries() {
		i := e.Inst
		t.AppendRow(table.Row{
			e.Index, e.Phase.String(), i.Opcode().String(), i.CorePtr(), i.Rd(), i.Wr(),
			fmt.Sprintf("0x%03X", i.RowAddr()), i.Hex(), i.Binary(), e.Comment,
		})
	}

	return t.Render()
}

// WriteTable writes the table rendering to w.
func WriteTable(w io.Writer, prog *program.Program) error {
	_, err := fmt.Fprintln(w, RenderTable(prog))
	return err
}

// WriteHexImage writes one hex word per line, the form a loader consumes.
func WriteHexImage(w io.Writer, prog *program.Program) error {
	for _, e := range prog.Entries() {
		if _, err := fmt.Fprintln(w, e.Inst.Hex()); err != nil {
			return err
		}
	}

	return nil
}
