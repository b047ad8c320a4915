package layout_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pimgen/layout"
)

var _ = Describe("Align", func() {
	It("should pad each complete vector group", func() {
		Expect(layout.Align(layout.BaseA, 1, 0, 4)).To(Equal(8))
		Expect(layout.Align(layout.BaseA, 0, 3, 4)).To(Equal(3))
		Expect(layout.Align(layout.BaseB, 0, 0, 4)).To(Equal(0x20))
		Expect(layout.Align(layout.BaseC, 3, 3, 4)).To(Equal(0x40 + 15 + 12))
	})

	It("should be strictly increasing in the linear index", func() {
		for _, dim := range []int{1, 3, 4, 5, 8} {
			for _, base := range []int{layout.BaseA, layout.BaseB, layout.BaseC} {
				prev := -1
				seen := map[int]bool{}
				for row := 0; row < dim; row++ {
					for col := 0; col < dim; col++ {
						addr := layout.Align(base, row, col, dim)
						Expect(addr).To(BeNumerically(">", prev))
						Expect(seen).NotTo(HaveKey(addr))
						seen[addr] = true
						prev = addr
					}
				}
			}
		}
	})

	It("should honour a custom width", func() {
		Expect(layout.AlignWidth(0, 0, 5, 8, 2)).To(Equal(5 + 4))
	})
})

var _ = Describe("Layout", func() {
	var l layout.Layout

	BeforeEach(func() {
		l = layout.Default()
	})

	It("should expose the default bases", func() {
		Expect(l.Base(layout.RegionA)).To(Equal(0x00))
		Expect(l.Base(layout.RegionB)).To(Equal(0x20))
		Expect(l.Base(layout.RegionC)).To(Equal(0x40))
		Expect(l.Validate()).To(Succeed())
	})

	It("should compute addresses like Align", func() {
		Expect(l.Address(layout.RegionB, 2, 1, 4)).
			To(Equal(layout.Align(layout.BaseB, 2, 1, 4)))
	})

	It("should report the extent of a region", func() {
		first, last := l.Extent(layout.RegionA, 4)
		Expect(first).To(Equal(0))
		Expect(last).To(Equal(27))

		first, last = l.Extent(layout.RegionC, 3)
		Expect(first).To(Equal(0x40))
		Expect(last).To(Equal(0x40 + 9 + 8))
	})

	It("should accept the default layout for a 4x4 matrix", func() {
		Expect(l.CheckOverlap(4)).To(Succeed())
		Expect(l.MaxAddress(4)).To(Equal(0x40 + 27))
	})

	It("should detect overlapping regions", func() {
		err := l.CheckOverlap(8)
		Expect(errors.Is(err, layout.ErrOverlap)).To(BeTrue())
	})

	It("should reject invalid layouts", func() {
		l.SIMDWidth = 0
		Expect(l.Validate()).NotTo(Succeed())

		l = layout.Default()
		l.BaseB = l.BaseA
		Expect(l.Validate()).NotTo(Succeed())

		l = layout.Default()
		l.BaseC = -1
		Expect(l.Validate()).NotTo(Succeed())
	})

	It("should name regions", func() {
		Expect(layout.RegionA.String()).To(Equal("A"))
		Expect(layout.Region(7).String()).To(Equal("Region(7)"))
	})
})
