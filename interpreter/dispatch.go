package interpreter

// handlerFunc executes one already-fetched instruction word and returns the
// resulting state. Every handler is responsible for advancing PC itself
// (including on the "no-op" paths, e.g. FENCE.I) so that MRET's early
// return without the usual advance is the only exception, not a special
// case threaded through Step.
type handlerFunc func(i *Interpreter, word uint32) (State, error)

var dispatch = map[Opcode]handlerFunc{
	OpAuipc:         execAuipc,
	OpBranch:        execBranch,
	OpJal:           execJal,
	OpJalr:          execJalr,
	OpLoadStore:     execLoadStore,
	OpLui:           execLui,
	OpOpImm:         execOpImm,
	OpOpAmo:         execOpAmo,
	OpSystemMiscMem: execSystemMiscMem,

	OpCAddi4spn:      execCAddi4spn,
	OpCLw:            execCLw,
	OpCSw:            execCSw,
	OpCAddi:          execCAddi,
	OpCJal:           execCJal,
	OpCLi:            execCLi,
	OpCAddi16sp:      execCAddi16sp,
	OpCLui:           execCLui,
	OpCSrli:          execCSrli,
	OpCSrai:          execCSrai,
	OpCAndi:          execCAndi,
	OpCSub:           execCSub,
	OpCXor:           execCXor,
	OpCOr:            execCOr,
	OpCAnd:           execCAnd,
	OpCJ:             execCJ,
	OpCBeqz:          execCBeqz,
	OpCBnez:          execCBnez,
	OpCSlli:          execCSlli,
	OpCLwsp:          execCLwsp,
	OpCJrMv:          execCJrMv,
	OpCEbreakJalrAdd: execCEbreakJalrAdd,
	OpCSwsp:          execCSwsp,
}
