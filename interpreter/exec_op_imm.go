package interpreter

import "github.com/embive/embive-sub000/format"

// OP-IMM funct3 codes. This is the RISC-V standard encoding, unchanged by
// transpilation: OP-IMM owns its own opcode and all eight funct3 values are
// already distinct.
const (
	funct3ADDI = iota
	funct3SLLI
	funct3SLTI
	funct3SLTIU
	funct3XORI
	funct3SRLISRAI
	funct3ORI
	funct3ANDI
)

// srlSraSignBit marks SRAI within the shared SRLI/SRAI funct3, mirroring
// RISC-V's use of bit 10 of the immediate (which doubles as the top bit of
// the shift-type field on this shape).
const srlSraSignBit = 1 << 10

func execOpImm(i *Interpreter, word uint32) (State, error) {
	in := format.IFromEmbive(word)

	if in.RdRs2 != 0 {
		rs1, err := i.CPU.Get(in.Rs1)
		if err != nil {
			return Running, err
		}
		imm := in.Imm

		var result int32
		switch in.Funct3 {
		case funct3ADDI:
			result = rs1 + imm
		case funct3SLLI:
			result = int32(uint32(rs1) << (uint32(imm) & 0b11111))
		case funct3SLTI:
			result = boolToI32(rs1 < imm)
		case funct3SLTIU:
			result = boolToI32(uint32(rs1) < uint32(imm))
		case funct3XORI:
			result = rs1 ^ imm
		case funct3SRLISRAI:
			shift := uint32(imm) & 0b11111
			if imm&srlSraSignBit != 0 {
				result = rs1 >> shift
			} else {
				result = int32(uint32(rs1) >> shift)
			}
		case funct3ORI:
			result = rs1 | imm
		case funct3ANDI:
			result = rs1 & imm
		default:
			return Running, &ErrIllegalInstruction{Word: word}
		}

		if err := i.CPU.Set(in.RdRs2, result); err != nil {
			return Running, err
		}
	}

	i.PC += uint32(OpOpImm.Size())
	return Running, nil
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
