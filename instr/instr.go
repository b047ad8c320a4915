// Package instr encodes and decodes the fixed-width SIMD PIM instruction word.
//
// Bit layout, most significant first:
//
//	opcode(2) | corePtr(6) | rd(1) | wr(1) | rowAddr(9)
//
// The word is rendered as 24 bits, so the top 5 bits are always zero.
package instr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrReservedBits is returned when decoding a word with bits set above the
// opcode field.
var ErrReservedBits = errors.New("instr: reserved bits set")

// Inst is a packed instruction word. The zero value is NO_OP with all
// operand fields cleared.
type Inst struct {
	word uint32
}

// Encode packs the fields into an instruction. A value that does not fit its
// field fails with an *OverflowError instead of spilling into its neighbour.
func Encode(op Opcode, corePtr, rd, wr, rowAddr int) (Inst, error) {
	fields := []struct {
		f Field
		v int
	}{
		{FieldOpcode, int(op)},
		{FieldCorePtr, corePtr},
		{FieldRd, rd},
		{FieldWr, wr},
		{FieldRowAddr, rowAddr},
	}

	var word uint32
	for _, fv := range fields {
		bits, err := fv.f.put(fv.v)
		if err != nil {
			return Inst{}, err
		}
		word |= bits
	}

	return Inst{word: word}, nil
}

// MustEncode is like Encode but panics on overflow.
func MustEncode(op Opcode, corePtr, rd, wr, rowAddr int) Inst {
	i, err := Encode(op, corePtr, rd, wr, rowAddr)
	if err != nil {
		panic(err)
	}

	return i
}

// Decode unpacks a word produced by Encode.
func Decode(word uint32) (Inst, error) {
	if word&^usedMask != 0 {
		return Inst{}, fmt.Errorf("%w: 0x%06X", ErrReservedBits, word)
	}

	return Inst{word: word}, nil
}

// ParseHex decodes the Hex rendering of an instruction. The 0x prefix is
// optional.
func ParseHex(s string) (Inst, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	v, err := strconv.ParseUint(s, 16, WordBits)
	if err != nil {
		return Inst{}, fmt.Errorf("instr: parse hex %q: %w", s, err)
	}

	return Decode(uint32(v))
}

// ParseBinary decodes the Binary rendering of an instruction.
func ParseBinary(s string) (Inst, error) {
	s = strings.TrimSpace(s)

	v, err := strconv.ParseUint(s, 2, WordBits)
	if err != nil {
		return Inst{}, fmt.Errorf("instr: parse binary %q: %w", s, err)
	}

	return Decode(uint32(v))
}

func (i Inst) Opcode() Opcode { return Opcode(FieldOpcode.get(i.word)) }
func (i Inst) CorePtr() int   { return FieldCorePtr.get(i.word) }
func (i Inst) Rd() int        { return FieldRd.get(i.word) }
func (i Inst) Wr() int        { return FieldWr.get(i.word) }
func (i Inst) RowAddr() int   { return FieldRowAddr.get(i.word) }

// Word returns the packed value.
func (i Inst) Word() uint32 {
	return i.word
}

// Hex renders the word as 0x followed by 6 uppercase hex digits.
func (i Inst) Hex() string {
	return fmt.Sprintf("0x%06X", i.word)
}

// Binary renders the word as a 24 character binary string.
func (i Inst) Binary() string {
	return fmt.Sprintf("%0*b", WordBits, i.word)
}

func (i Inst) String() string {
	return fmt.Sprintf("%s core=%d rd=%d wr=%d row=%d [%s]",
		i.Opcode(), i.CorePtr(), i.Rd(), i.Wr(), i.RowAddr(), i.Hex())
}
