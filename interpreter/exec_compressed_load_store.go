package interpreter

import (
	"encoding/binary"

	"github.com/embive/embive-sub000/format"
)

// execCLw: c.lw rd, imm(rs1).
func execCLw(i *Interpreter, word uint32) (State, error) {
	in := format.CLFromEmbive(word)

	rs1, err := i.CPU.Get(in.Rs1)
	if err != nil {
		return Running, err
	}
	addr := uint32(rs1) + uint32(in.Imm)

	data, err := i.Memory.Load(addr, 4)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(in.RdRs2, int32(binary.LittleEndian.Uint32(data))); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCLw.Size())
	return Running, nil
}

// execCSw: c.sw rs2, imm(rs1). Shares TypeCL with c.lw; rd_rs2 names the
// store's source register instead of a load destination.
func execCSw(i *Interpreter, word uint32) (State, error) {
	in := format.CLFromEmbive(word)

	rs1, err := i.CPU.Get(in.Rs1)
	if err != nil {
		return Running, err
	}
	addr := uint32(rs1) + uint32(in.Imm)

	rs2, err := i.CPU.Get(in.RdRs2)
	if err != nil {
		return Running, err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(rs2))
	if err := i.Memory.Store(addr, buf[:]); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCSw.Size())
	return Running, nil
}
