package interpreter

import "github.com/embive/embive-sub000/format"

func execLui(i *Interpreter, word uint32) (State, error) {
	u := format.UFromEmbive(word)
	if u.Rd != 0 {
		if err := i.CPU.Set(u.Rd, u.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpLui.Size())
	return Running, nil
}
