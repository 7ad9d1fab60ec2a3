// Package interpreter implements the Embive dispatch-and-execute core: a
// 32-register CPU file, a machine-mode CSR subset, a program counter, and a
// cooperative step/run loop over a memory.Memory view.
package interpreter

import (
	"encoding/binary"

	"github.com/embive/embive-sub000/memory"
)

// reservation is the LR/SC memory reservation: at most one outstanding
// (address, witnessed word) pair.
type reservation struct {
	addr  uint32
	value int32
}

// Interpreter is the cooperative RISC-V/Embive core. It holds no goroutines
// and performs no I/O other than through the Memory view and the
// caller-supplied syscall handler, so it is safe to embed in any host loop.
type Interpreter struct {
	PC     uint32
	CPU    CPURegisters
	CSR    ControlStatus
	Memory memory.Memory
	Config Config

	// Trace, when non-nil, records one TraceEvent per executed
	// instruction. It is the interpreter's only side channel; nothing
	// about dispatch depends on whether it is set.
	Trace *Trace

	reservation *reservation
}

// New creates an interpreter over mem, with PC, registers, and CSRs zeroed.
func New(mem memory.Memory, cfg Config) *Interpreter {
	i := &Interpreter{Memory: mem, Config: cfg}
	return i
}

// Reset returns the interpreter to its power-on state: PC = 0, all general
// registers and CSRs zeroed, and the memory reservation cleared. The memory
// view itself is untouched.
func (i *Interpreter) Reset() {
	i.PC = 0
	i.CPU.Reset()
	i.CSR.Reset()
	i.reservation = nil
}

// Fetch reads the 4-byte word starting at PC. Compressed instructions are
// still fetched as 4 bytes; the handler only ever consumes the low 16 bits
// and advances PC by 2, so the upper half being garbage (or absent, at the
// very end of the image) is harmless as long as the image carries the
// trailing zero pad the transpiler produces.
func (i *Interpreter) Fetch() (uint32, error) {
	data, err := i.Memory.Load(i.PC, 4)
	if err != nil {
		return 0, &ErrInvalidProgramCounter{PC: i.PC}
	}
	return binary.LittleEndian.Uint32(data), nil
}

// Step decodes and executes exactly one instruction, returning the
// resulting state. On error, PC is left unchanged.
func (i *Interpreter) Step() (State, error) {
	word, err := i.Fetch()
	if err != nil {
		return Running, err
	}

	op := Opcode(word & format_OpcodeMask)
	handler, ok := dispatch[op]
	if !ok {
		return Running, &ErrInvalidInstruction{Word: word}
	}

	pc := i.PC
	state, err := handler(i, word)
	if i.Trace != nil && err == nil {
		i.Trace.Record(pc, word, state)
	}
	return state, err
}

// format_OpcodeMask mirrors format.OpcodeMask without importing the format
// package just for a constant used once; kept here so opcodes.go/exec
// files stay the single place that imports format for shape decoding.
const format_OpcodeMask = 0x1F

// Run steps the interpreter until it leaves the Running state, or until
// Config.InstructionLimit steps have executed (if nonzero), in which case
// it returns Running to signal a budget yield.
func (i *Interpreter) Run() (State, error) {
	var executed uint32
	for {
		state, err := i.Step()
		if err != nil {
			return state, err
		}
		if state != Running {
			return state, nil
		}
		executed++
		if i.Config.InstructionLimit != 0 && executed >= i.Config.InstructionLimit {
			return Running, nil
		}
	}
}

// Interrupt delivers the single external "embive interrupt" (code 16). It
// fails with ErrInterruptNotEnabled unless both the global machine interrupt
// enable (mstatus.MIE) and the interrupt's own enable bit (mie[16]) are set;
// otherwise it marks the interrupt pending and performs trap entry,
// redirecting PC to mtvec.
func (i *Interpreter) Interrupt() error {
	if !i.CSR.InterruptEnabled() {
		return ErrInterruptNotEnabled
	}
	i.CSR.SetPending()
	i.CSR.TrapEntry(&i.PC, 0)
	return nil
}

// SyscallHandler services an ECALL. It receives the syscall number (A7)
// and the seven argument registers (A0..A6), and returns either a success
// value or a nonzero error code, mirroring the embive ABI's
// Result<i32, NonZeroI32>.
type SyscallHandler func(number int32, args [7]int32, mem memory.Memory) (value int32, errCode int32)

// Syscall drives handler against the current register file. It is only
// meaningful immediately after a Called state: the SYSTEM handler has
// already advanced PC past the ECALL by the time this runs, so Syscall
// itself never touches PC.
func (i *Interpreter) Syscall(handler SyscallHandler) error {
	number, err := i.CPU.Get(RegA7)
	if err != nil {
		return err
	}

	var args [7]int32
	for idx := 0; idx < 7; idx++ {
		v, err := i.CPU.Get(uint8(RegA0 + idx))
		if err != nil {
			return err
		}
		args[idx] = v
	}

	value, errCode := handler(number, args, i.Memory)
	if errCode != 0 {
		if err := i.CPU.Set(RegA0, errCode); err != nil {
			return err
		}
		return i.CPU.Set(RegA1, 0)
	}
	if err := i.CPU.Set(RegA0, 0); err != nil {
		return err
	}
	return i.CPU.Set(RegA1, value)
}
