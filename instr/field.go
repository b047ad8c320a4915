package instr

import "fmt"

// WordBits is the width of the rendered instruction word.
const WordBits = 24

// usedMask covers the 19 bits the fields occupy. The top 5 rendered bits are
// always zero.
const usedMask uint32 = 1<<19 - 1

// A Field is a bit range inside an instruction word.
type Field struct {
	Name  string
	Shift uint
	Width uint
}

// Fields of the instruction word, most significant first.
var (
	FieldOpcode  = Field{Name: "opcode", Shift: 17, Width: 2}
	FieldCorePtr = Field{Name: "core_ptr", Shift: 11, Width: 6}
	FieldRd      = Field{Name: "rd", Shift: 10, Width: 1}
	FieldWr      = Field{Name: "wr", Shift: 9, Width: 1}
	FieldRowAddr = Field{Name: "row_addr", Shift: 0, Width: 9}
)

// Max returns the largest value the field can hold.
func (f Field) Max() int {
	return 1<<f.Width - 1
}

// Fits reports whether v can be stored in the field.
func (f Field) Fits(v int) bool {
	return v >= 0 && v <= f.Max()
}

func (f Field) put(v int) (uint32, error) {
	if !f.Fits(v) {
		return 0, &OverflowError{Field: f.Name, Value: v, Width: f.Width}
	}

	return uint32(v) << f.Shift, nil
}

func (f Field) get(word uint32) int {
	return int((word >> f.Shift) & uint32(f.Max()))
}

// OverflowError is returned when a field value does not fit in its width.
type OverflowError struct {
	Field string
	Value int
	Width uint
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("instr: %s value %d does not fit in %d bits",
		e.Field, e.Value, e.Width)
}
