// Package program sequences encoded instructions into a matrix
// multiplication program for the SIMD PIM accelerator.
package program

import (
	"errors"

	"github.com/sarchlab/pimgen/instr"
)

// ErrTerminated is returned when appending to a program that already ends
// with END.
var ErrTerminated = errors.New("program: already terminated")

// Phase tells which part of the program an entry belongs to.
type Phase int

const (
	PhaseLUT Phase = iota
	PhaseLoad
	PhaseCompute
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseLUT:
		return "LUT"
	case PhaseLoad:
		return "LOAD"
	case PhaseCompute:
		return "COMPUTE"
	case PhaseEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Entry is one instruction of a program with its annotation. The comment is
// documentation only and is not part of the binary.
type Entry struct {
	Index   int
	Phase   Phase
	Inst    instr.Inst
	Comment string
}

// Program is an append-only instruction sequence that ends with exactly one
// END instruction.
type Program struct {
	entries    []Entry
	terminated bool
}

// New creates an empty program.
func New() *Program {
	return &Program{}
}

// Append adds an instruction. END must go through Terminate.
func (p *Program) Append(phase Phase, inst instr.Inst, comment string) (Entry, error) {
	if p.terminated {
		return Entry{}, ErrTerminated
	}

	if inst.Opcode() == instr.End {
		return Entry{}, errors.New("program: END must be emitted by Terminate")
	}

	return p.push(phase, inst, comment), nil
}

// Terminate appends the END instruction with all operand fields zero.
func (p *Program) Terminate() (Entry, error) {
	if p.terminated {
		return Entry{}, ErrTerminated
	}

	e := p.push(PhaseEnd, instr.MustEncode(instr.End, 0, 0, 0, 0), "END PROGRAM")
	p.terminated = true

	return e, nil
}

func (p *Program) push(phase Phase, inst instr.Inst, comment string) Entry {
	e := Entry{
		Index:   len(p.entries),
		Phase:   phase,
		Inst:    inst,
		Comment: comment,
	}
	p.entries = append(p.entries, e)

	return e
}

// Terminated reports whether END has been emitted.
func (p *Program) Terminated() bool {
	return p.terminated
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.entries)
}

// At returns the i-th entry.
func (p *Program) At(i int) Entry {
	return p.entries[i]
}

// Entries returns a copy of all entries.
func (p *Program) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Words returns the packed instruction words in order.
func (p *Program) Words() []uint32 {
	words := make([]uint32, len(p.entries))
	for i, e := range p.entries {
		words[i] = e.Inst.Word()
	}

	return words
}

// Count returns how many instructions use the opcode.
func (p *Program) Count(op instr.Opcode) int {
	n := 0
	for _, e := range p.entries {
		if e.Inst.Opcode() == op {
			n++
		}
	}

	return n
}
