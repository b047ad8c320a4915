package instr_test

import (
	"errors"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pimgen/instr"
)

var _ = Describe("Encode", func() {
	It("should place each field at its offset", func() {
		i, err := instr.Encode(instr.Prog, 1, 0, 1, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(i.Word()).To(Equal(uint32(1<<17 | 1<<11 | 1<<9)))
		Expect(i.Hex()).To(Equal("0x020A00"))
		Expect(i.Binary()).To(Equal("000000100000101000000000"))
	})

	It("should encode END with all operands cleared", func() {
		i := instr.MustEncode(instr.End, 0, 0, 0, 0)

		Expect(i.Hex()).To(Equal("0x060000"))
		Expect(i.Opcode()).To(Equal(instr.End))
	})

	It("should round trip every field combination", func() {
		ops := []instr.Opcode{instr.NoOp, instr.Prog, instr.Exe, instr.End}
		for _, op := range ops {
			for core := 0; core <= 63; core += 7 {
				for rd := 0; rd <= 1; rd++ {
					for wr := 0; wr <= 1; wr++ {
						for row := 0; row <= 511; row += 37 {
							i, err := instr.Encode(op, core, rd, wr, row)
							Expect(err).NotTo(HaveOccurred())

							d, err := instr.Decode(i.Word())
							Expect(err).NotTo(HaveOccurred())
							Expect(d.Opcode()).To(Equal(op))
							Expect(d.CorePtr()).To(Equal(core))
							Expect(d.Rd()).To(Equal(rd))
							Expect(d.Wr()).To(Equal(wr))
							Expect(d.RowAddr()).To(Equal(row))
						}
					}
				}
			}
		}
	})

	It("should keep the top five rendered bits clear", func() {
		i := instr.MustEncode(instr.End, 63, 1, 1, 511)

		Expect(i.Word()).To(Equal(uint32(1<<19 - 1)))
		Expect(strings.HasPrefix(i.Binary(), "00000")).To(BeTrue())
	})

	DescribeTable("should reject values wider than their field",
		func(op instr.Opcode, core, rd, wr, row int, field string) {
			_, err := instr.Encode(op, core, rd, wr, row)

			var overflow *instr.OverflowError
			Expect(errors.As(err, &overflow)).To(BeTrue())
			Expect(overflow.Field).To(Equal(field))
		},
		Entry("opcode", instr.Opcode(4), 0, 0, 0, 0, "opcode"),
		Entry("core pointer", instr.Prog, 64, 0, 0, 0, "core_ptr"),
		Entry("negative core pointer", instr.Prog, -1, 0, 0, 0, "core_ptr"),
		Entry("rd", instr.Prog, 0, 2, 0, 0, "rd"),
		Entry("wr", instr.Prog, 0, 0, 2, 0, "wr"),
		Entry("row address", instr.Prog, 0, 0, 1, 512, "row_addr"),
	)

	It("should panic in MustEncode on overflow", func() {
		Expect(func() { instr.MustEncode(instr.Prog, 0, 0, 1, 600) }).To(Panic())
	})
})

var _ = Describe("Renderings", func() {
	It("should agree with the packed value", func() {
		for row := 0; row <= 511; row += 13 {
			i := instr.MustEncode(instr.Exe, 2, 1, 0, row)

			h, err := strconv.ParseUint(strings.TrimPrefix(i.Hex(), "0x"), 16, 32)
			Expect(err).NotTo(HaveOccurred())
			b, err := strconv.ParseUint(i.Binary(), 2, 32)
			Expect(err).NotTo(HaveOccurred())

			Expect(i.Hex()).To(HaveLen(8))
			Expect(i.Binary()).To(HaveLen(24))
			Expect(uint32(h)).To(Equal(i.Word()))
			Expect(uint32(b)).To(Equal(i.Word()))
		}
	})

	It("should parse its own renderings", func() {
		i := instr.MustEncode(instr.Prog, 0, 1, 0, 0x48)

		fromHex, err := instr.ParseHex(i.Hex())
		Expect(err).NotTo(HaveOccurred())
		fromBin, err := instr.ParseBinary(i.Binary())
		Expect(err).NotTo(HaveOccurred())

		Expect(fromHex).To(Equal(i))
		Expect(fromBin).To(Equal(i))
	})

	It("should reject words with reserved bits", func() {
		_, err := instr.Decode(1 << 20)
		Expect(errors.Is(err, instr.ErrReservedBits)).To(BeTrue())

		_, err = instr.ParseHex("0x100000")
		Expect(errors.Is(err, instr.ErrReservedBits)).To(BeTrue())
	})

	It("should reject malformed text", func() {
		_, err := instr.ParseHex("0xZZ")
		Expect(err).To(HaveOccurred())

		_, err = instr.ParseBinary("0102")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Opcode", func() {
	It("should name every opcode", func() {
		Expect(instr.NoOp.String()).To(Equal("NO_OP"))
		Expect(instr.Prog.String()).To(Equal("PROG"))
		Expect(instr.Exe.String()).To(Equal("EXE"))
		Expect(instr.End.String()).To(Equal("END"))
		Expect(instr.Opcode(9).String()).To(Equal("UNKNOWN"))
	})

	It("should parse mnemonics", func() {
		op, err := instr.ParseOpcode("exe")
		Expect(err).NotTo(HaveOccurred())
		Expect(op).To(Equal(instr.Exe))

		op, err = instr.ParseOpcode("NOP")
		Expect(err).NotTo(HaveOccurred())
		Expect(op).To(Equal(instr.NoOp))

		_, err = instr.ParseOpcode("JMP")
		Expect(err).To(HaveOccurred())
	})

	It("should expose the ISA name", func() {
		Expect(instr.DefaultISA.Name()).To(Equal("SIMD pPIM ISA"))
	})
})
