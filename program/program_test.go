package program_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pimgen/instr"
	"github.com/sarchlab/pimgen/program"
)

var _ = Describe("Program", func() {
	var p *program.Program

	BeforeEach(func() {
		p = program.New()
	})

	It("should number entries in append order", func() {
		_, err := p.Append(program.PhaseLUT, instr.MustEncode(instr.Prog, 1, 0, 1, 0), "a")
		Expect(err).NotTo(HaveOccurred())
		e, err := p.Append(program.PhaseLoad, instr.MustEncode(instr.Prog, 0, 0, 1, 4), "b")
		Expect(err).NotTo(HaveOccurred())

		Expect(e.Index).To(Equal(1))
		Expect(p.Len()).To(Equal(2))
		Expect(p.At(1).Comment).To(Equal("b"))
		Expect(p.Words()).To(Equal([]uint32{0x020A00, 0x020204}))
	})

	It("should terminate exactly once", func() {
		e, err := p.Terminate()
		Expect(err).NotTo(HaveOccurred())
		Expect(e.Phase).To(Equal(program.PhaseEnd))
		Expect(e.Comment).To(Equal("END PROGRAM"))

		_, err = p.Terminate()
		Expect(errors.Is(err, program.ErrTerminated)).To(BeTrue())

		_, err = p.Append(program.PhaseCompute, instr.MustEncode(instr.Exe, 1, 1, 0, 0), "late")
		Expect(errors.Is(err, program.ErrTerminated)).To(BeTrue())
		Expect(p.Len()).To(Equal(1))
	})

	It("should only accept END through Terminate", func() {
		_, err := p.Append(program.PhaseCompute, instr.MustEncode(instr.End, 0, 0, 0, 0), "")

		Expect(err).To(HaveOccurred())
		Expect(p.Terminated()).To(BeFalse())
	})

	It("should hand out copies of its entries", func() {
		_, _ = p.Append(program.PhaseLUT, instr.MustEncode(instr.Prog, 1, 0, 1, 0), "a")

		entries := p.Entries()
		entries[0].Comment = "changed"

		Expect(p.At(0).Comment).To(Equal("a"))
	})

	It("should name phases", func() {
		Expect(program.PhaseLUT.String()).To(Equal("LUT"))
		Expect(program.PhaseCompute.String()).To(Equal("COMPUTE"))
		Expect(program.Phase(42).String()).To(Equal("UNKNOWN"))
	})
})

var _ = Describe("ExpectedLength", func() {
	It("should count a single 4x4 tile", func() {
		Expect(program.ExpectedLength(4, 4, true)).To(Equal(17))
		Expect(program.ExpectedLength(4, 4, false)).To(Equal(35))
	})

	It("should round partial tiles up", func() {
		Expect(program.ExpectedLength(5, 4, true)).To(Equal(2 + 2*5*2 + 2*2*(2+8) + 1))
	})
})
