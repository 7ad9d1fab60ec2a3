package interpreter

import "github.com/embive/embive-sub000/format"

// Branch condition codes. These are the RISC-V BRANCH opcode's standard
// funct3 values, carried through transpilation unchanged since Branch owns
// its own opcode and the 3-bit space never collides.
const (
	funct3BEQ  = 0b000
	funct3BNE  = 0b001
	funct3BLT  = 0b100
	funct3BGE  = 0b101
	funct3BLTU = 0b110
	funct3BGEU = 0b111
)

func execBranch(i *Interpreter, word uint32) (State, error) {
	b := format.BFromEmbive(word)

	rs1, err := i.CPU.Get(b.Rs1)
	if err != nil {
		return Running, err
	}
	rs2, err := i.CPU.Get(b.Rs2)
	if err != nil {
		return Running, err
	}

	var taken bool
	switch b.Funct3 {
	case funct3BEQ:
		taken = rs1 == rs2
	case funct3BNE:
		taken = rs1 != rs2
	case funct3BLT:
		taken = rs1 < rs2
	case funct3BGE:
		taken = rs1 >= rs2
	case funct3BLTU:
		taken = uint32(rs1) < uint32(rs2)
	case funct3BGEU:
		taken = uint32(rs1) >= uint32(rs2)
	default:
		return Running, &ErrIllegalInstruction{Word: word}
	}

	if taken {
		i.PC = uint32(int32(i.PC) + b.Imm)
	} else {
		i.PC += uint32(OpBranch.Size())
	}
	return Running, nil
}
