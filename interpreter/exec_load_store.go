package interpreter

import (
	"encoding/binary"

	"github.com/embive/embive-sub000/format"
)

// LoadStore funct3 codes. The Embive opcode fuses RISC-V's LOAD and STORE
// opcodes into one, so their natural funct3 values (which collide — LB and
// SB are both 0) are remapped to a single non-colliding 0..7 space during
// transpilation.
const (
	funct3LB = iota
	funct3LH
	funct3LW
	funct3LBU
	funct3LHU
	funct3SB
	funct3SH
	funct3SW
)

func execLoadStore(i *Interpreter, word uint32) (State, error) {
	ls := format.IFromEmbive(word)

	rs1, err := i.CPU.Get(ls.Rs1)
	if err != nil {
		return Running, err
	}
	address := uint32(int32(rs1) + ls.Imm)

	switch ls.Funct3 {
	case funct3LB:
		data, err := i.Memory.Load(address, 1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(ls.RdRs2, int32(int8(data[0]))); err != nil {
			return Running, err
		}
	case funct3LH:
		data, err := i.Memory.Load(address, 2)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(ls.RdRs2, int32(int16(binary.LittleEndian.Uint16(data)))); err != nil {
			return Running, err
		}
	case funct3LW:
		data, err := i.Memory.Load(address, 4)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(ls.RdRs2, int32(binary.LittleEndian.Uint32(data))); err != nil {
			return Running, err
		}
	case funct3LBU:
		data, err := i.Memory.Load(address, 1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(ls.RdRs2, int32(data[0])); err != nil {
			return Running, err
		}
	case funct3LHU:
		data, err := i.Memory.Load(address, 2)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(ls.RdRs2, int32(binary.LittleEndian.Uint16(data))); err != nil {
			return Running, err
		}
	case funct3SB:
		rs2, err := i.CPU.Get(ls.RdRs2)
		if err != nil {
			return Running, err
		}
		if err := i.Memory.Store(address, []byte{byte(rs2)}); err != nil {
			return Running, err
		}
	case funct3SH:
		rs2, err := i.CPU.Get(ls.RdRs2)
		if err != nil {
			return Running, err
		}
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(rs2))
		if err := i.Memory.Store(address, buf[:]); err != nil {
			return Running, err
		}
	case funct3SW:
		rs2, err := i.CPU.Get(ls.RdRs2)
		if err != nil {
			return Running, err
		}
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(rs2))
		if err := i.Memory.Store(address, buf[:]); err != nil {
			return Running, err
		}
	default:
		return Running, &ErrIllegalInstruction{Word: word}
	}

	i.PC += uint32(OpLoadStore.Size())
	return Running, nil
}
