package verify

import (
	"fmt"

	"github.com/sarchlab/pimgen/instr"
	"github.com/sarchlab/pimgen/layout"
	"github.com/sarchlab/pimgen/program"
)

// RunLint performs static checks on a generated program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(prog *program.Program, target Target) []Issue {
	var issues []Issue

	issues = append(issues, checkFraming(prog)...)
	issues = append(issues, checkEncoding(prog)...)
	issues = append(issues, checkLayout(target)...)
	issues = append(issues, checkLength(prog, target)...)

	return issues
}

func checkFraming(prog *program.Program) []Issue {
	var issues []Issue

	if prog.Len() == 0 {
		return []Issue{{
			Type:    IssueFraming,
			Index:   -1,
			Message: "program is empty",
		}}
	}

	for idx, corePtr := range []int{program.LUTMultiply, program.LUTAdd} {
		if idx >= prog.Len() {
			break
		}

		inst := prog.At(idx).Inst
		if inst.Opcode() != instr.Prog || inst.CorePtr() != corePtr {
			issues = append(issues, Issue{
				Type:  IssueFraming,
				Index: idx,
				Message: fmt.Sprintf("instruction %d should program LUT at core %d, got %s",
					idx, corePtr, inst),
				Details: map[string]interface{}{"expected_core_ptr": corePtr},
			})
		}
	}

	last := prog.Len() - 1
	for _, e := range prog.Entries() {
		if e.Inst.Opcode() != instr.End || e.Index == last {
			continue
		}

		issues = append(issues, Issue{
			Type:    IssueFraming,
			Index:   e.Index,
			Message: fmt.Sprintf("END at instruction %d before the end of the program", e.Index),
		})
	}

	end := prog.At(last).Inst
	if end != instr.MustEncode(instr.End, 0, 0, 0, 0) {
		issues = append(issues, Issue{
			Type:    IssueFraming,
			Index:   last,
			Message: fmt.Sprintf("program must end with END and zero operands, got %s", end),
		})
	}

	return issues
}

func checkEncoding(prog *program.Program) []Issue {
	var issues []Issue

	for _, e := range prog.Entries() {
		fromHex, errHex := instr.ParseHex(e.Inst.Hex())
		fromBin, errBin := instr.ParseBinary(e.Inst.Binary())
		fromWord, errWord := instr.Decode(e.Inst.Word())

		for _, err := range []error{errHex, errBin, errWord} {
			if err != nil {
				issues = append(issues, Issue{
					Type:    IssueEncoding,
					Index:   e.Index,
					Message: fmt.Sprintf("instruction %d does not decode: %v", e.Index, err),
				})
			}
		}

		if errHex == nil && errBin == nil && errWord == nil &&
			(fromHex != e.Inst || fromBin != e.Inst || fromWord != e.Inst) {
			issues = append(issues, Issue{
				Type:    IssueEncoding,
				Index:   e.Index,
				Message: fmt.Sprintf("renderings of instruction %d disagree", e.Index),
				Details: map[string]interface{}{
					"hex":    e.Inst.Hex(),
					"binary": e.Inst.Binary(),
				},
			})
		}
	}

	return issues
}

func checkLayout(target Target) []Issue {
	var issues []Issue
	l := target.Layout
	n := target.N

	if n%l.SIMDWidth != 0 {
		issues = append(issues, Issue{
			Type:  IssueLayout,
			Index: -1,
			Message: fmt.Sprintf("dimension %d is not a multiple of SIMD width %d; "+
				"vector accesses reach into padding", n, l.SIMDWidth),
			Details: map[string]interface{}{"n": n, "simd_width": l.SIMDWidth},
		})
	}

	if err := l.CheckOverlap(n); err != nil {
		issues = append(issues, Issue{
			Type:    IssueLayout,
			Index:   -1,
			Message: err.Error(),
		})
	}

	for _, r := range layout.Regions {
		_, last := l.Extent(r, n)
		if last > AddressLimit() {
			issues = append(issues, Issue{
				Type:  IssueLayout,
				Index: -1,
				Message: fmt.Sprintf("region %s reaches 0x%03X, beyond the row address limit 0x%03X",
					r, last, AddressLimit()),
				Details: map[string]interface{}{"region": r.String(), "last": last},
			})
		}
	}

	return issues
}

func checkLength(prog *program.Program, target Target) []Issue {
	expected := program.ExpectedLength(target.N, target.Layout.SIMDWidth, target.RowTiling)
	if prog.Len() == expected {
		return nil
	}

	return []Issue{{
		Type:  IssueLength,
		Index: -1,
		Message: fmt.Sprintf("program has %d instructions, expected %d for N=%d",
			prog.Len(), expected, target.N),
		Details: map[string]interface{}{"actual": prog.Len(), "expected": expected},
	}}
}
