// Package layout maps logical matrix coordinates to aligned addresses in the
// three-region PIM memory space.
package layout

import (
	"errors"
	"fmt"
	"sort"
)

// SIMDWidth is the number of elements processed per vector instruction.
const SIMDWidth = 4

// Default region bases.
const (
	BaseA = 0x00
	BaseB = 0x20
	BaseC = 0x40
)

// Align returns the aligned address of element (row, col) of a dim x dim
// matrix stored at base, using SIMDWidth.
func Align(base, row, col, dim int) int {
	return AlignWidth(base, row, col, dim, SIMDWidth)
}

// AlignWidth is Align with an explicit vector width. Every complete group of
// width elements pushes the address forward by one more group, spreading
// consecutive vectors across banks.
func AlignWidth(base, row, col, dim, width int) int {
	idx := row*dim + col
	pad := (idx / width) * width

	return base + idx + pad
}

// Region names one of the operand areas.
type Region int

const (
	RegionA Region = iota
	RegionB
	RegionC
)

// Regions lists every region in address order of the default layout.
var Regions = []Region{RegionA, RegionB, RegionC}

func (r Region) String() string {
	switch r {
	case RegionA:
		return "A"
	case RegionB:
		return "B"
	case RegionC:
		return "C"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// Layout describes where each region starts and the vector width used for
// alignment.
type Layout struct {
	BaseA     int
	BaseB     int
	BaseC     int
	SIMDWidth int
}

// Default returns the layout of the reference accelerator.
func Default() Layout {
	return Layout{
		BaseA:     BaseA,
		BaseB:     BaseB,
		BaseC:     BaseC,
		SIMDWidth: SIMDWidth,
	}
}

// Validate checks that the width is positive and the bases are distinct and
// non-negative.
func (l Layout) Validate() error {
	if l.SIMDWidth <= 0 {
		return fmt.Errorf("layout: SIMD width must be positive, got %d", l.SIMDWidth)
	}

	seen := make(map[int]Region)
	for _, r := range Regions {
		b := l.Base(r)
		if b < 0 {
			return fmt.Errorf("layout: base of region %s is negative (%d)", r, b)
		}
		if other, ok := seen[b]; ok {
			return fmt.Errorf("layout: regions %s and %s share base 0x%02X", other, r, b)
		}
		seen[b] = r
	}

	return nil
}

// Base returns the first address of a region.
func (l Layout) Base(r Region) int {
	switch r {
	case RegionA:
		return l.BaseA
	case RegionB:
		return l.BaseB
	case RegionC:
		return l.BaseC
	default:
		panic(fmt.Sprintf("invalid region %d", int(r)))
	}
}

// Address returns the aligned address of element (row, col) in region r.
func (l Layout) Address(r Region, row, col, dim int) int {
	return AlignWidth(l.Base(r), row, col, dim, l.SIMDWidth)
}

// Extent returns the first and last address the vector accesses of a
// dim x dim matrix touch in region r. The last vector of the last row covers
// SIMDWidth elements even when dim is not a multiple of the width.
func (l Layout) Extent(r Region, dim int) (first, last int) {
	first = l.Base(r)
	if dim <= 0 {
		return first, first
	}

	lastStart := ((dim - 1) / l.SIMDWidth) * l.SIMDWidth
	last = l.Address(r, dim-1, lastStart+l.SIMDWidth-1, dim)

	return first, last
}

// ErrOverlap is returned when two region extents intersect.
var ErrOverlap = errors.New("layout: regions overlap")

// CheckOverlap reports the first pair of regions whose extents intersect for
// the given dimension.
func (l Layout) CheckOverlap(dim int) error {
	regions := append([]Region(nil), Regions...)
	sort.Slice(regions, func(i, j int) bool {
		return l.Base(regions[i]) < l.Base(regions[j])
	})

	for i := 0; i+1 < len(regions); i++ {
		_, last := l.Extent(regions[i], dim)
		next := l.Base(regions[i+1])
		if last >= next {
			return fmt.Errorf("%w: %s ends at 0x%02X, %s starts at 0x%02X (dim %d)",
				ErrOverlap, regions[i], last, regions[i+1], next, dim)
		}
	}

	return nil
}

// MaxAddress returns the highest address any region touches for dim.
func (l Layout) MaxAddress(dim int) int {
	highest := 0
	for _, r := range Regions {
		if _, last := l.Extent(r, dim); last > highest {
			highest = last
		}
	}

	return highest
}
