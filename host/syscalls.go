// Package host supplies a reference syscall handler table: the minimal
// hosted-libc-lite ABI (exit, write, read) that a sandboxed program can
// reach through ECALL. Nothing in interpreter or transpiler depends on
// this package; it exists to give the engine something to run against.
package host

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/embive/embive-sub000/memory"
)

// Syscall numbers, chosen by this repository; the guest ABI document is
// the contract, not a fixed upstream numbering.
const (
	SysExit  = 0x00
	SysWrite = 0x01
	SysRead  = 0x02
)

const (
	errGeneral    = 1
	maxIOTransfer = 1 << 20
)

// ExitError is recorded out-of-band by Handlers.Handle in the Exited field
// on a SysExit call, rather than through the syscall's own error-code
// register, since a process exit isn't a recoverable syscall failure.
type ExitError struct {
	Code int32
}

func (e *ExitError) Error() string { return "program exited" }

// Handlers bundles the console streams a syscall table reads and writes.
// The zero value uses os.Stdout/os.Stdin.
type Handlers struct {
	Stdout io.Writer
	Stdin  *bufio.Reader

	// Exited is set by a SysExit call; the host loop should check it
	// after every Syscall and stop running once it is non-nil.
	Exited *ExitError
}

// NewHandlers builds a Handlers wired to the process's own stdout/stdin.
func NewHandlers() *Handlers {
	return &Handlers{Stdout: os.Stdout, Stdin: bufio.NewReader(os.Stdin)}
}

// Handle is an interpreter.SyscallHandler closure bound to h. Wire it in
// as:
//
//	i.Syscall(h.Handle)
func (h *Handlers) Handle(number int32, args [7]int32, mem memory.Memory) (int32, int32) {
	switch number {
	case SysExit:
		h.Exited = &ExitError{Code: args[0]}
		return 0, 0
	case SysWrite:
		return h.write(args[0], args[1], mem)
	case SysRead:
		return h.read(args[0], args[1], mem)
	default:
		return 0, errGeneral
	}
}

func (h *Handlers) write(addr, length int32, mem memory.Memory) (int32, int32) {
	if length < 0 || length > maxIOTransfer {
		return 0, errGeneral
	}
	data, err := mem.Load(uint32(addr), uint32(length))
	if err != nil {
		return 0, errGeneral
	}
	out := h.Stdout
	if out == nil {
		out = os.Stdout
	}
	n, err := out.Write(data)
	if err != nil {
		return 0, errGeneral
	}
	return int32(n), 0
}

func (h *Handlers) read(addr, length int32, mem memory.Memory) (int32, int32) {
	if length < 0 || length > maxIOTransfer {
		return 0, errGeneral
	}
	in := h.Stdin
	if in == nil {
		in = bufio.NewReader(os.Stdin)
		h.Stdin = in
	}
	buf := make([]byte, length)
	n, err := in.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, errGeneral
	}
	if n > 0 {
		if err := mem.Store(uint32(addr), buf[:n]); err != nil {
			return 0, errGeneral
		}
	}
	return int32(n), 0
}
