package program

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/pimgen/instr"
	"github.com/sarchlab/pimgen/layout"
	"github.com/sarchlab/pimgen/matrix"
)

// HookPosInstEmit marks when an instruction is appended to the program. The
// hook item is the emitted Entry.
var HookPosInstEmit = &sim.HookPos{Name: "Inst Emit"}

// LUT slots programmed by the prologue.
const (
	LUTMultiply = 1
	LUTAdd      = 2
)

// Generator emits the tiled matrix multiplication program.
type Generator struct {
	sim.HookableBase

	layout   layout.Layout
	tileRows bool
}

// GeneratorBuilder can create generators.
type GeneratorBuilder struct {
	layout   layout.Layout
	tileRows bool
	hooks    []sim.Hook
}

// MakeGeneratorBuilder returns a builder with the default layout.
func MakeGeneratorBuilder() GeneratorBuilder {
	return GeneratorBuilder{
		layout: layout.Default(),
	}
}

// WithLayout sets the memory layout.
func (b GeneratorBuilder) WithLayout(l layout.Layout) GeneratorBuilder {
	b.layout = l
	return b
}

// WithRowTiling makes the compute phase step the row index by the SIMD width
// as well as the column and reduction indices.
func (b GeneratorBuilder) WithRowTiling(tileRows bool) GeneratorBuilder {
	b.tileRows = tileRows
	return b
}

// WithHook attaches a hook that sees every emitted instruction.
func (b GeneratorBuilder) WithHook(hook sim.Hook) GeneratorBuilder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hook)
	return b
}

// Build creates a generator.
func (b GeneratorBuilder) Build() *Generator {
	if err := b.layout.Validate(); err != nil {
		panic(err)
	}

	g := &Generator{
		layout:   b.layout,
		tileRows: b.tileRows,
	}

	for _, h := range b.hooks {
		g.AcceptHook(h)
	}

	return g
}

// Layout returns the memory layout the generator addresses.
func (g *Generator) Layout() layout.Layout {
	return g.layout
}

// RowTiling reports whether the compute phase tiles rows.
func (g *Generator) RowTiling() bool {
	return g.tileRows
}

// Generate loads the operands from src and emits the program for them.
func (g *Generator) Generate(src matrix.Source) (*Program, error) {
	pair, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("program: load operands: %w", err)
	}

	Trace("Program",
		"Behavior", "LoadOperands",
		"N", pair.N,
	)

	return g.GenerateFor(pair.N)
}

// GenerateFor emits the program for an n x n multiplication. Only the shape
// matters: instructions carry addresses, never matrix values.
func (g *Generator) GenerateFor(n int) (*Program, error) {
	if n <= 0 {
		return nil, fmt.Errorf("program: dimension must be positive, got %d", n)
	}

	e := &emitter{g: g, prog: New()}
	w := g.layout.SIMDWidth

	e.phase = PhaseLUT
	e.emit(instr.Prog, LUTMultiply, 0, 1, 0, "PROGRAM LUT0 (SIMD Multiply)")
	e.emit(instr.Prog, LUTAdd, 0, 1, 0, "PROGRAM LUT1 (SIMD Add)")

	e.phase = PhaseLoad
	for i := 0; i < n; i++ {
		for j := 0; j < n; j += w {
			// B is walked transposed here but not in the compute phase.
			addrA := g.layout.Address(layout.RegionA, i, j, n)
			addrB := g.layout.Address(layout.RegionB, j, i, n)
			e.emit(instr.Prog, 0, 0, 1, addrA, fmt.Sprintf("VLOAD A[%d][%d]", i, j))
			e.emit(instr.Prog, 0, 0, 1, addrB, fmt.Sprintf("VLOAD B[%d][%d]", j, i))
		}
	}

	rowStep := 1
	if g.tileRows {
		rowStep = w
	}

	e.phase = PhaseCompute
	for i := 0; i < n; i += rowStep {
		for j := 0; j < n; j += w {
			addrC := g.layout.Address(layout.RegionC, i, j, n)
			e.emit(instr.Prog, 0, 0, 1, addrC, fmt.Sprintf("INIT C[%d][%d]", i, j))

			for k := 0; k < n; k += w {
				addrA := g.layout.Address(layout.RegionA, i, k, n)
				addrB := g.layout.Address(layout.RegionB, k, j, n)
				e.emit(instr.Prog, 0, 1, 0, addrA, fmt.Sprintf("VLOAD A[%d][%d]", i, k))
				e.emit(instr.Prog, 0, 1, 0, addrB, fmt.Sprintf("VLOAD B[%d][%d]", k, j))
				e.emit(instr.Exe, LUTMultiply, 1, 0, 0, "VMUL A, B -> C")
				e.emit(instr.Exe, LUTAdd, 1, 0, 0, "VADD C, prev_C")
			}

			e.emit(instr.Prog, 0, 0, 1, addrC, fmt.Sprintf("VSTORE C[%d][%d]", i, j))
		}
	}

	e.terminate()

	if e.err != nil {
		return nil, e.err
	}

	Trace("Program",
		"Behavior", "Generate",
		"N", n,
		"SIMDWidth", w,
		"RowTiling", g.tileRows,
		"Length", e.prog.Len(),
	)

	return e.prog, nil
}

// emitter appends to a program and stops at the first error.
type emitter struct {
	g     *Generator
	prog  *Program
	phase Phase
	err   error
}

func (e *emitter) emit(op instr.Opcode, corePtr, rd, wr, rowAddr int, comment string) {
	if e.err != nil {
		return
	}

	inst, err := instr.Encode(op, corePtr, rd, wr, rowAddr)
	if err != nil {
		e.err = fmt.Errorf("program: instruction %d (%s): %w",
			e.prog.Len(), comment, err)
		return
	}

	entry, err := e.prog.Append(e.phase, inst, comment)
	if err != nil {
		e.err = err
		return
	}

	e.notify(entry)
}

func (e *emitter) terminate() {
	if e.err != nil {
		return
	}

	entry, err := e.prog.Terminate()
	if err != nil {
		e.err = err
		return
	}

	e.notify(entry)
}

func (e *emitter) notify(entry Entry) {
	e.g.InvokeHook(sim.HookCtx{
		Domain: e.g,
		Pos:    HookPosInstEmit,
		Item:   entry,
	})
}
