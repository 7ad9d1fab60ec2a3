package interpreter

import (
	"encoding/binary"

	"github.com/embive/embive-sub000/format"
)

// execCAddi4spn: c.addi4spn rd, sp+uimm. A zero immediate is reserved and
// decodes as illegal rather than a silent no-op.
func execCAddi4spn(i *Interpreter, word uint32) (State, error) {
	in := format.CIWFromEmbive(word)
	if in.Imm == 0 {
		return Running, &ErrIllegalInstruction{Word: word}
	}

	sp, err := i.CPU.Get(RegSP)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(in.Rd, sp+in.Imm); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCAddi4spn.Size())
	return Running, nil
}

// execCAddi16sp: c.addi16sp, adjusts the stack pointer by a scaled signed
// immediate. Unlike most compressed ALU ops this one has no HINT form; sp
// is always written.
func execCAddi16sp(i *Interpreter, word uint32) (State, error) {
	in := format.CI2FromEmbive(word)

	sp, err := i.CPU.Get(RegSP)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(RegSP, sp+in.Imm); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCAddi16sp.Size())
	return Running, nil
}

// execCLwsp: c.lwsp, loads a word from sp+uimm into rd.
func execCLwsp(i *Interpreter, word uint32) (State, error) {
	in := format.CI5FromEmbive(word)

	sp, err := i.CPU.Get(RegSP)
	if err != nil {
		return Running, err
	}
	addr := uint32(sp) + uint32(in.Imm)

	data, err := i.Memory.Load(addr, 4)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(in.RdRs1, int32(binary.LittleEndian.Uint32(data))); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCLwsp.Size())
	return Running, nil
}

// execCSwsp: c.swsp, stores rs2 to sp+uimm.
func execCSwsp(i *Interpreter, word uint32) (State, error) {
	in := format.CSSFromEmbive(word)

	sp, err := i.CPU.Get(RegSP)
	if err != nil {
		return Running, err
	}
	addr := uint32(sp) + uint32(in.Imm)

	rs2, err := i.CPU.Get(in.Rs2)
	if err != nil {
		return Running, err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(rs2))
	if err := i.Memory.Store(addr, buf[:]); err != nil {
		return Running, err
	}

	i.PC += uint32(OpCSwsp.Size())
	return Running, nil
}
