package interpreter

import "github.com/embive/embive-sub000/format"

// Opcode is the 5-bit value carried in bits 0..4 of every Embive
// instruction word. There are 32 opcodes (23 compressed, 9 base); the
// numbering below is this repository's own assignment — the distilled spec
// only requires internal consistency between the transpiler and the
// interpreter, not any particular numeric value.
type Opcode uint8

const (
	OpCAddi4spn Opcode = iota
	OpCLw
	OpCSw
	OpCAddi
	OpCJal
	OpCLi
	OpCAddi16sp
	OpCLui
	OpCSrli
	OpCSrai
	OpCAndi
	OpCSub
	OpCXor
	OpCOr
	OpCAnd
	OpCJ
	OpCBeqz
	OpCBnez
	OpCSlli
	OpCLwsp
	OpCJrMv
	OpCEbreakJalrAdd
	OpCSwsp
	OpAuipc
	OpBranch
	OpJal
	OpJalr
	OpLoadStore
	OpLui
	OpOpImm
	OpOpAmo
	OpSystemMiscMem
)

// Size returns the instruction word's byte length for a given opcode: all
// compressed shapes are 2 bytes, all base shapes are 4.
func (o Opcode) Size() format.Size {
	if o <= OpCSwsp {
		return format.SizeCompressed
	}
	return format.SizeBase
}
