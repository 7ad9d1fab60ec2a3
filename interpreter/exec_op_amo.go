package interpreter

import (
	"encoding/binary"

	"github.com/embive/embive-sub000/format"
)

// OpAmo fuses RISC-V's OP, M-extension, and AMO opcodes into a single
// Embive opcode, distinguished entirely by a 10-bit funct10 field. None of
// the three source opcodes' native funct7/funct3 (or funct5/aq/rl) bit
// layouts can coexist without collision once merged, so this repository
// assigns its own flat, non-colliding funct10 numbering; the transpiler's
// RISC-V-to-Embive conversion (see the transpiler package, which keeps its
// own mirror of this table) must agree with it bit for bit.
const (
	funct10ADD = iota
	funct10SUB
	funct10SLL
	funct10SLT
	funct10SLTU
	funct10XOR
	funct10SRL
	funct10SRA
	funct10OR
	funct10AND
	funct10MUL
	funct10MULH
	funct10MULHSU
	funct10MULHU
	funct10DIV
	funct10DIVU
	funct10REM
	funct10REMU
	funct10LR
	funct10SC
	funct10AMOSWAP
	funct10AMOADD
	funct10AMOXOR
	funct10AMOAND
	funct10AMOOR
	funct10AMOMIN
	funct10AMOMAX
	funct10AMOMINU
	funct10AMOMAXU
)

func execOpAmo(i *Interpreter, word uint32) (State, error) {
	r := format.RFromEmbive(word)

	rs1, err := i.CPU.Get(r.Rs1)
	if err != nil {
		return Running, err
	}
	rs2, err := i.CPU.Get(r.Rs2)
	if err != nil {
		return Running, err
	}

	var result int32
	switch r.Funct10 {
	case funct10ADD:
		result = rs1 + rs2
	case funct10SUB:
		result = rs1 - rs2
	case funct10SLL:
		result = int32(uint32(rs1) << (uint32(rs2) & 0b11111))
	case funct10SLT:
		result = boolToI32(rs1 < rs2)
	case funct10SLTU:
		result = boolToI32(uint32(rs1) < uint32(rs2))
	case funct10XOR:
		result = rs1 ^ rs2
	case funct10SRL:
		result = int32(uint32(rs1) >> (uint32(rs2) & 0b11111))
	case funct10SRA:
		result = rs1 >> (uint32(rs2) & 0b11111)
	case funct10OR:
		result = rs1 | rs2
	case funct10AND:
		result = rs1 & rs2
	case funct10MUL:
		result = rs1 * rs2
	case funct10MULH:
		result = int32((int64(rs1) * int64(rs2)) >> 32)
	case funct10MULHSU:
		result = int32((int64(rs1) * int64(uint32(rs2))) >> 32)
	case funct10MULHU:
		result = int32((uint64(uint32(rs1)) * uint64(uint32(rs2))) >> 32)
	case funct10DIV:
		if rs2 == 0 {
			result = -1
		} else {
			result = rs1 / rs2
		}
	case funct10DIVU:
		if rs2 == 0 {
			result = -1
		} else {
			result = int32(uint32(rs1) / uint32(rs2))
		}
	case funct10REM:
		if rs2 == 0 {
			result = rs1
		} else {
			result = rs1 % rs2
		}
	case funct10REMU:
		if rs2 == 0 {
			result = rs1
		} else {
			result = int32(uint32(rs1) % uint32(rs2))
		}
	default:
		result, err = i.execAtomic(r, rs1, rs2, word)
		if err != nil {
			return Running, err
		}
	}

	if r.Rd != 0 {
		if err := i.CPU.Set(r.Rd, result); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpOpAmo.Size())
	return Running, nil
}

// execAtomic handles the memory-touching LR/SC/AMO* half of funct10 space.
func (i *Interpreter) execAtomic(r format.TypeR, rs1, rs2 int32, word uint32) (int32, error) {
	addr := uint32(rs1)
	loaded, err := i.Memory.Load(addr, 4)
	if err != nil {
		return 0, err
	}
	value := int32(binary.LittleEndian.Uint32(loaded))

	store := func(v int32) error {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		return i.Memory.Store(addr, buf[:])
	}

	switch r.Funct10 {
	case funct10LR:
		i.reservation = &reservation{addr: addr, value: value}
		return value, nil
	case funct10SC:
		if i.reservation == nil || i.reservation.addr != addr || i.reservation.value != value {
			i.reservation = nil
			return 1, nil
		}
		i.reservation = nil
		if err := store(rs2); err != nil {
			return 0, err
		}
		return 0, nil
	case funct10AMOSWAP:
		return value, store(rs2)
	case funct10AMOADD:
		return value, store(value + rs2)
	case funct10AMOXOR:
		return value, store(value ^ rs2)
	case funct10AMOAND:
		return value, store(value & rs2)
	case funct10AMOOR:
		return value, store(value | rs2)
	case funct10AMOMIN:
		return value, store(minI32(value, rs2))
	case funct10AMOMAX:
		return value, store(maxI32(value, rs2))
	case funct10AMOMINU:
		return value, store(int32(minU32(uint32(value), uint32(rs2))))
	case funct10AMOMAXU:
		return value, store(int32(maxU32(uint32(value), uint32(rs2))))
	default:
		return 0, &ErrIllegalInstruction{Word: word}
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
