package interpreter

import "github.com/embive/embive-sub000/format"

// execCJal: c.jal imm, links ra and jumps relative to pc.
func execCJal(i *Interpreter, word uint32) (State, error) {
	in := format.CJFromEmbive(word)
	if err := i.CPU.Set(RegRA, int32(i.PC+uint32(OpCJal.Size()))); err != nil {
		return Running, err
	}
	i.PC = uint32(int32(i.PC) + in.Imm)
	return Running, nil
}

// execCJ: c.j imm, jumps relative to pc without linking.
func execCJ(i *Interpreter, word uint32) (State, error) {
	in := format.CJFromEmbive(word)
	i.PC = uint32(int32(i.PC) + in.Imm)
	return Running, nil
}

// execCBeqz: c.beqz rs1, imm.
func execCBeqz(i *Interpreter, word uint32) (State, error) {
	return execCBranchZero(i, word, OpCBeqz.Size(), func(v int32) bool { return v == 0 })
}

// execCBnez: c.bnez rs1, imm.
func execCBnez(i *Interpreter, word uint32) (State, error) {
	return execCBranchZero(i, word, OpCBnez.Size(), func(v int32) bool { return v != 0 })
}

func execCBranchZero(i *Interpreter, word uint32, size format.Size, taken func(int32) bool) (State, error) {
	in := format.CB4FromEmbive(word)
	rs1, err := i.CPU.Get(in.Rs1)
	if err != nil {
		return Running, err
	}
	if taken(rs1) {
		i.PC = uint32(int32(i.PC) + in.Imm)
	} else {
		i.PC += uint32(size)
	}
	return Running, nil
}

// execCJrMv: rs2==0 is c.jr rd_rs1 (jump register, no link); rs2!=0 is
// c.mv rd_rs1, rs2 (move, not a jump at all despite sharing the opcode).
func execCJrMv(i *Interpreter, word uint32) (State, error) {
	in := format.CRFromEmbive(word)

	if in.Rs2 == 0 {
		rdRs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		i.PC = uint32(rdRs1)
		return Running, nil
	}

	rs2, err := i.CPU.Get(in.Rs2)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(in.RdRs1, rs2); err != nil {
		return Running, err
	}
	i.PC += uint32(OpCJrMv.Size())
	return Running, nil
}

// execCEbreakJalrAdd: rs2==0 and rd_rs1==0 is c.ebreak (halt); rs2==0 and
// rd_rs1!=0 is c.jalr (jump register, links ra); rs2!=0 is c.add.
func execCEbreakJalrAdd(i *Interpreter, word uint32) (State, error) {
	in := format.CRFromEmbive(word)

	if in.Rs2 == 0 {
		if in.RdRs1 == 0 {
			i.PC += uint32(OpCEbreakJalrAdd.Size())
			return Halted, nil
		}

		rdRs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(RegRA, int32(i.PC+uint32(OpCEbreakJalrAdd.Size()))); err != nil {
			return Running, err
		}
		i.PC = uint32(rdRs1)
		return Running, nil
	}

	rs2, err := i.CPU.Get(in.Rs2)
	if err != nil {
		return Running, err
	}
	rdRs1, err := i.CPU.Get(in.RdRs1)
	if err != nil {
		return Running, err
	}
	if err := i.CPU.Set(in.RdRs1, rdRs1+rs2); err != nil {
		return Running, err
	}
	i.PC += uint32(OpCEbreakJalrAdd.Size())
	return Running, nil
}
