package interpreter

import "github.com/embive/embive-sub000/format"

// execCAddi: c.addi rd_rs1, imm. A zero destination is a HINT; only the
// program counter advances.
func execCAddi(i *Interpreter, word uint32) (State, error) {
	in := format.CI1FromEmbive(word)
	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, rs1+in.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCAddi.Size())
	return Running, nil
}

// execCLi: c.li rd_rs1, imm.
func execCLi(i *Interpreter, word uint32) (State, error) {
	in := format.CI1FromEmbive(word)
	if in.RdRs1 != 0 {
		if err := i.CPU.Set(in.RdRs1, in.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCLi.Size())
	return Running, nil
}

// execCLui: c.lui rd_rs1, imm.
func execCLui(i *Interpreter, word uint32) (State, error) {
	in := format.CI3FromEmbive(word)
	if in.RdRs1 != 0 {
		if err := i.CPU.Set(in.RdRs1, in.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCLui.Size())
	return Running, nil
}

// execCAndi: c.andi rd_rs1, imm on a compressed register.
func execCAndi(i *Interpreter, word uint32) (State, error) {
	in := format.CB2FromEmbive(word)
	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, rs1&in.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCAndi.Size())
	return Running, nil
}

// execCSlli: c.slli rd_rs1, uimm.
func execCSlli(i *Interpreter, word uint32) (State, error) {
	in := format.CI4FromEmbive(word)
	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, int32(uint32(rs1)<<uint32(in.Imm))); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCSlli.Size())
	return Running, nil
}

// execCSrli: c.srli rd_rs1, uimm on a compressed register; zero-extended shift.
func execCSrli(i *Interpreter, word uint32) (State, error) {
	in := format.CB1FromEmbive(word)
	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, int32(uint32(rs1)>>uint32(in.Imm))); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCSrli.Size())
	return Running, nil
}

// execCSrai: c.srai rd_rs1, uimm on a compressed register; sign-preserving shift.
func execCSrai(i *Interpreter, word uint32) (State, error) {
	in := format.CB1FromEmbive(word)
	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, rs1>>uint32(in.Imm)); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpCSrai.Size())
	return Running, nil
}
