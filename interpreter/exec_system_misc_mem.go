package interpreter

import "github.com/embive/embive-sub000/format"

// SystemMiscMem fuses RISC-V's SYSTEM and MISC-MEM opcodes (ECALL, EBREAK,
// FENCE.I, WFI, MRET, and the six CSR instructions) into one Embive opcode.
// funct3 0 is reserved for the imm-dispatched, no-register-operand group;
// the remaining six funct3 values are the CSR instructions' own standard
// RISC-V encoding (CSRRW=1, CSRRS=2, CSRRC=3, CSRRWI=5, CSRRSI=6, CSRRCI=7),
// which never collides with funct3 0 so it passes through unchanged.
const funct3SystemGroup = 0

// imm-dispatch codes within funct3SystemGroup. Non-colliding by
// construction; the transpiler must agree with this numbering.
const (
	immECALL = iota
	immEBREAK
	immFENCEI
	immWFI
	immMRET
)

const (
	funct3CSRRW = iota + 1
	funct3CSRRS
	funct3CSRRC
	_ // no funct3 4; mirrors the RISC-V gap between CSRRC and CSRRWI
	funct3CSRRWI
	funct3CSRRSI
	funct3CSRRCI
)

func execSystemMiscMem(i *Interpreter, word uint32) (State, error) {
	in := format.IFromEmbive(word)

	if in.Funct3 == funct3SystemGroup {
		switch in.Imm {
		case immECALL:
			i.PC += uint32(OpSystemMiscMem.Size())
			return Called, nil
		case immEBREAK:
			i.PC += uint32(OpSystemMiscMem.Size())
			return Halted, nil
		case immFENCEI:
			i.PC += uint32(OpSystemMiscMem.Size())
			return Running, nil
		case immWFI:
			i.PC += uint32(OpSystemMiscMem.Size())
			return Waiting, nil
		case immMRET:
			i.PC = i.CSR.TrapReturn()
			return Running, nil
		default:
			return Running, &ErrIllegalInstruction{Word: word}
		}
	}

	var op *CSOperation
	switch in.Funct3 {
	case funct3CSRRW:
		rs1, err := i.CPU.Get(in.Rs1)
		if err != nil {
			return Running, err
		}
		op = &CSOperation{Kind: CSWrite, Value: uint32(rs1)}
	case funct3CSRRS:
		if in.Rs1 != 0 {
			rs1, err := i.CPU.Get(in.Rs1)
			if err != nil {
				return Running, err
			}
			op = &CSOperation{Kind: CSSet, Value: uint32(rs1)}
		}
	case funct3CSRRC:
		if in.Rs1 != 0 {
			rs1, err := i.CPU.Get(in.Rs1)
			if err != nil {
				return Running, err
			}
			op = &CSOperation{Kind: CSClear, Value: uint32(rs1)}
		}
	case funct3CSRRWI:
		op = &CSOperation{Kind: CSWrite, Value: uint32(in.Rs1)}
	case funct3CSRRSI:
		if in.Rs1 != 0 {
			op = &CSOperation{Kind: CSSet, Value: uint32(in.Rs1)}
		}
	case funct3CSRRCI:
		if in.Rs1 != 0 {
			op = &CSOperation{Kind: CSClear, Value: uint32(in.Rs1)}
		}
	default:
		return Running, &ErrIllegalInstruction{Word: word}
	}

	result, err := i.CSR.Operation(op, uint16(in.Imm&0xFFF))
	if err != nil {
		return Running, err
	}
	if in.RdRs2 != 0 {
		if err := i.CPU.Set(in.RdRs2, int32(result)); err != nil {
			return Running, err
		}
	}

	i.PC += uint32(OpSystemMiscMem.Size())
	return Running, nil
}
