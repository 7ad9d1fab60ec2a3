package interpreter

import "github.com/embive/embive-sub000/format"

func execAuipc(i *Interpreter, word uint32) (State, error) {
	u := format.UFromEmbive(word)
	if u.Rd != 0 {
		if err := i.CPU.Set(u.Rd, int32(i.PC)+u.Imm); err != nil {
			return Running, err
		}
	}
	i.PC += uint32(OpAuipc.Size())
	return Running, nil
}
