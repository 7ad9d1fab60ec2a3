package transpiler

import (
	"github.com/embive/embive-sub000/format"
	"github.com/embive/embive-sub000/interpreter"
)

// convertCompressed recodes one 16-bit RISC-V C-extension instruction
// (passed as the low 16 bits of word) into its Embive equivalent, opcode
// included in the low 5 bits.
func convertCompressed(word uint16) (uint32, error) {
	w := uint32(word)
	quadrant := word & 0x3
	funct3 := (word >> 13) & 0x7

	switch quadrant {
	case 0b00:
		switch funct3 {
		case 0b000:
			return uint32(interpreter.OpCAddi4spn) | format.CIWFromRISCV(w).ToEmbive(), nil
		case 0b010:
			return uint32(interpreter.OpCLw) | format.CLFromRISCV(w).ToEmbive(), nil
		case 0b110:
			return uint32(interpreter.OpCSw) | format.CLFromRISCV(w).ToEmbive(), nil
		default:
			return 0, &ErrIllegalInstruction{Word: w}
		}

	case 0b01:
		switch funct3 {
		case 0b000:
			return uint32(interpreter.OpCAddi) | format.CI1FromRISCV(w).ToEmbive(), nil
		case 0b001:
			return uint32(interpreter.OpCJal) | format.CJFromRISCV(w).ToEmbive(), nil
		case 0b010:
			return uint32(interpreter.OpCLi) | format.CI1FromRISCV(w).ToEmbive(), nil
		case 0b011:
			rd := (word >> 7) & 0x1F
			if rd == 2 {
				return uint32(interpreter.OpCAddi16sp) | format.CI2FromRISCV(w).ToEmbive(), nil
			}
			return uint32(interpreter.OpCLui) | format.CI3FromRISCV(w).ToEmbive(), nil
		case 0b100:
			return convertCompressedAluMisc(word)
		case 0b101:
			return uint32(interpreter.OpCJ) | format.CJFromRISCV(w).ToEmbive(), nil
		case 0b110:
			return uint32(interpreter.OpCBeqz) | format.CB4FromRISCV(w).ToEmbive(), nil
		case 0b111:
			return uint32(interpreter.OpCBnez) | format.CB4FromRISCV(w).ToEmbive(), nil
		default:
			return 0, &ErrIllegalInstruction{Word: w}
		}

	case 0b10:
		switch funct3 {
		case 0b000:
			return uint32(interpreter.OpCSlli) | format.CI4FromRISCV(w).ToEmbive(), nil
		case 0b010:
			return uint32(interpreter.OpCLwsp) | format.CI5FromRISCV(w).ToEmbive(), nil
		case 0b100:
			return convertCompressedJrMvAdd(word)
		case 0b110:
			return uint32(interpreter.OpCSwsp) | format.CSSFromRISCV(w).ToEmbive(), nil
		default:
			return 0, &ErrIllegalInstruction{Word: w}
		}
	}

	return 0, &ErrIllegalInstruction{Word: w}
}

// convertCompressedAluMisc handles quadrant 1, funct3 100: the
// SRLI/SRAI/ANDI/SUB/XOR/OR/AND family, split by bits [11:10] and, for the
// register-register group, bits [6:5].
func convertCompressedAluMisc(word uint16) (uint32, error) {
	w := uint32(word)
	switch (word >> 10) & 0x3 {
	case 0b00:
		return uint32(interpreter.OpCSrli) | format.CB1FromRISCV(w).ToEmbive(), nil
	case 0b01:
		return uint32(interpreter.OpCSrai) | format.CB1FromRISCV(w).ToEmbive(), nil
	case 0b10:
		return uint32(interpreter.OpCAndi) | format.CB2FromRISCV(w).ToEmbive(), nil
	case 0b11:
		switch (word >> 5) & 0x3 {
		case 0b00:
			return uint32(interpreter.OpCSub) | format.CSFromRISCV(w).ToEmbive(), nil
		case 0b01:
			return uint32(interpreter.OpCXor) | format.CSFromRISCV(w).ToEmbive(), nil
		case 0b10:
			return uint32(interpreter.OpCOr) | format.CSFromRISCV(w).ToEmbive(), nil
		default:
			return uint32(interpreter.OpCAnd) | format.CSFromRISCV(w).ToEmbive(), nil
		}
	}
	return 0, &ErrIllegalInstruction{Word: w}
}

// convertCompressedJrMvAdd handles quadrant 2, funct3 100: C.JR/C.MV share
// an opcode distinguished by rs2==0, and C.EBREAK/C.JALR/C.ADD share
// another distinguished the same way, with bit 12 picking between the two
// families.
func convertCompressedJrMvAdd(word uint16) (uint32, error) {
	w := uint32(word)
	cr := format.CRFromRISCV(w)
	bit12 := (word >> 12) & 0x1

	if bit12 == 0 {
		return uint32(interpreter.OpCJrMv) | cr.ToEmbive(), nil
	}
	return uint32(interpreter.OpCEbreakJalrAdd) | cr.ToEmbive(), nil
}
