package instr

import (
	"fmt"
	"strings"
)

// Opcode is the 2-bit operation code at the top of an instruction word.
type Opcode uint8

const (
	NoOp Opcode = 0b00
	Prog Opcode = 0b01
	Exe  Opcode = 0b10
	End  Opcode = 0b11
)

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	switch o {
	case NoOp:
		return "NO_OP"
	case Prog:
		return "PROG"
	case Exe:
		return "EXE"
	case End:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// ISA is a named table from mnemonic to opcode.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from instruction name to its opcode.
	nameToOpcode map[string]Opcode
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		nameToOpcode: make(map[string]Opcode),
	}
}

func (isa *ISA) registerNewInst(name string, op Opcode) {
	isa.nameToOpcode[strings.ToUpper(name)] = op
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Lookup finds the opcode of a mnemonic. Lookup is case-insensitive.
func (isa *ISA) Lookup(name string) (Opcode, bool) {
	op, ok := isa.nameToOpcode[strings.ToUpper(strings.TrimSpace(name))]
	return op, ok
}

// DefaultISA is the SIMD PIM instruction subset.
var DefaultISA = newDefaultISA()

func newDefaultISA() *ISA {
	isa := NewISA("SIMD pPIM ISA")
	isa.registerNewInst("NO_OP", NoOp)
	isa.registerNewInst("NOP", NoOp)
	isa.registerNewInst("PROG", Prog)
	isa.registerNewInst("EXE", Exe)
	isa.registerNewInst("END", End)

	return isa
}

// ParseOpcode resolves a mnemonic against DefaultISA.
func ParseOpcode(name string) (Opcode, error) {
	op, ok := DefaultISA.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("instr: unknown opcode %q", name)
	}

	return op, nil
}
