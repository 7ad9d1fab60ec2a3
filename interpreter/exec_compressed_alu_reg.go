package interpreter

import "github.com/embive/embive-sub000/format"

func execCSub(i *Interpreter, word uint32) (State, error) {
	return execCAluReg(i, word, OpCSub.Size(), func(a, b int32) int32 { return a - b })
}

func execCXor(i *Interpreter, word uint32) (State, error) {
	return execCAluReg(i, word, OpCXor.Size(), func(a, b int32) int32 { return a ^ b })
}

func execCOr(i *Interpreter, word uint32) (State, error) {
	return execCAluReg(i, word, OpCOr.Size(), func(a, b int32) int32 { return a | b })
}

func execCAnd(i *Interpreter, word uint32) (State, error) {
	return execCAluReg(i, word, OpCAnd.Size(), func(a, b int32) int32 { return a & b })
}

func execCAluReg(i *Interpreter, word uint32, size format.Size, op func(a, b int32) int32) (State, error) {
	in := format.CSFromEmbive(word)

	if in.RdRs1 != 0 {
		rs1, err := i.CPU.Get(in.RdRs1)
		if err != nil {
			return Running, err
		}
		rs2, err := i.CPU.Get(in.Rs2)
		if err != nil {
			return Running, err
		}
		if err := i.CPU.Set(in.RdRs1, op(rs1, rs2)); err != nil {
			return Running, err
		}
	}

	i.PC += uint32(size)
	return Running, nil
}
