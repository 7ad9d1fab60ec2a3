package interpreter

import "github.com/embive/embive-sub000/format"

func execJalr(i *Interpreter, word uint32) (State, error) {
	in := format.IFromEmbive(word)

	rs1, err := i.CPU.Get(in.Rs1)
	if err != nil {
		return Running, err
	}

	if in.RdRs2 != 0 {
		if err := i.CPU.Set(in.RdRs2, int32(i.PC+uint32(OpJalr.Size()))); err != nil {
			return Running, err
		}
	}
	i.PC = uint32(rs1 + in.Imm)
	return Running, nil
}
