package interpreter

import "github.com/embive/embive-sub000/format"

func execJal(i *Interpreter, word uint32) (State, error) {
	j := format.JFromEmbive(word)

	if j.Rd != 0 {
		if err := i.CPU.Set(j.Rd, int32(i.PC+uint32(OpJal.Size()))); err != nil {
			return Running, err
		}
	}
	i.PC = uint32(int32(i.PC) + j.Imm)
	return Running, nil
}
