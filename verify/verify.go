// Package verify provides static checks for generated SIMD PIM programs.
//
// The checks never execute the program. They look at its structure:
//
//   - FRAMING: LUT prologue first, exactly one END and it is last
//   - ENCODING: hex, binary and packed renderings agree and decode cleanly
//   - LAYOUT: region extents fit the row address field and do not overlap
//   - LENGTH: the instruction count matches the tiling of the dimension
//
// # Usage Example
//
//	target := verify.NewTarget(layout.Default(), n)
//	issues := verify.RunLint(prog, target)
//	for _, issue := range issues {
//	    log.Printf("[%s] #%d: %s", issue.Type, issue.Index, issue.Message)
//	}
package verify

import (
	"github.com/sarchlab/pimgen/instr"
	"github.com/sarchlab/pimgen/layout"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueFraming  IssueType = "FRAMING"
	IssueEncoding IssueType = "ENCODING"
	IssueLayout   IssueType = "LAYOUT"
	IssueLength   IssueType = "LENGTH"
)

// IssueTypes lists the issue types in report order.
var IssueTypes = []IssueType{IssueFraming, IssueEncoding, IssueLayout, IssueLength}

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // category
	Index   int                    // instruction index, -1 if not applicable
	Message string                 // human-readable description
	Details map[string]interface{} // additional structured data
}

// Target describes what the program was generated for.
type Target struct {
	Layout    layout.Layout
	N         int
	RowTiling bool
}

// NewTarget creates a target without row tiling.
func NewTarget(l layout.Layout, n int) Target {
	return Target{Layout: l, N: n}
}

// AddressLimit returns the largest row address an instruction can carry.
func AddressLimit() int {
	return instr.FieldRowAddr.Max()
}
