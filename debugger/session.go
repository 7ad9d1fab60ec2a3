// Package debugger wraps the interpreter core in a single-step/breakpoint
// event loop, and gives a GDB remote client enough of the RSP wire
// protocol to drive it.
package debugger

import (
	"github.com/embive/embive-sub000/interpreter"
)

// maxBreakpoints bounds the breakpoint table to a fixed array, mirroring
// the interpreter core's own avoidance of unbounded allocation.
const maxBreakpoints = 32

// StopReason classifies why a Session's run loop returned control.
type StopReason uint8

const (
	// SwBreak means execution stopped at a configured breakpoint address.
	SwBreak StopReason = iota
	// DoneStep means a single requested step completed.
	DoneStep
	// Terminated means the interpreter halted (EBREAK).
	Terminated
)

func (r StopReason) String() string {
	switch r {
	case SwBreak:
		return "SwBreak"
	case DoneStep:
		return "DoneStep"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// ExecMode selects whether Resume stops after one instruction or keeps
// running until a breakpoint or halt.
type ExecMode uint8

const (
	ModeRun ExecMode = iota
	ModeStep
)

// Session drives an *interpreter.Interpreter through single steps,
// dispatching ECALL/WFI transparently and stopping at breakpoints, a
// requested single step, or a halt.
type Session struct {
	Interp      *interpreter.Interpreter
	Syscall     interpreter.SyscallHandler
	breakpoints [maxBreakpoints]uint32
	numBreaks   int
}

// NewSession wraps interp, dispatching ECALLs to syscall.
func NewSession(interp *interpreter.Interpreter, syscall interpreter.SyscallHandler) *Session {
	return &Session{Interp: interp, Syscall: syscall}
}

// SetBreakpoint adds addr to the breakpoint table. Reports false if the
// table is full or addr is already present.
func (s *Session) SetBreakpoint(addr uint32) bool {
	for i := 0; i < s.numBreaks; i++ {
		if s.breakpoints[i] == addr {
			return false
		}
	}
	if s.numBreaks >= len(s.breakpoints) {
		return false
	}
	s.breakpoints[s.numBreaks] = addr
	s.numBreaks++
	return true
}

// ClearBreakpoint removes addr from the breakpoint table.
func (s *Session) ClearBreakpoint(addr uint32) bool {
	for i := 0; i < s.numBreaks; i++ {
		if s.breakpoints[i] == addr {
			s.numBreaks--
			s.breakpoints[i] = s.breakpoints[s.numBreaks]
			return true
		}
	}
	return false
}

func (s *Session) hasBreakpoint(addr uint32) bool {
	for i := 0; i < s.numBreaks; i++ {
		if s.breakpoints[i] == addr {
			return true
		}
	}
	return false
}

// Resume runs the interpreter until it stops: a breakpoint is hit, a
// single step completes (mode == ModeStep), or the interpreter halts.
// ECALL and WFI are serviced inline, exactly as a free-running Run call
// would, but one instruction at a time so breakpoints can be checked
// after each one.
func (s *Session) Resume(mode ExecMode) (StopReason, error) {
	for {
		state, err := s.Interp.Step()
		if err != nil {
			return 0, err
		}

		switch state {
		case interpreter.Halted:
			return Terminated, nil
		case interpreter.Called:
			if err := s.Interp.Syscall(s.Syscall); err != nil {
				return 0, err
			}
		case interpreter.Waiting:
			if err := s.Interp.Interrupt(); err != nil {
				return 0, err
			}
		}

		if s.hasBreakpoint(s.Interp.PC) {
			return SwBreak, nil
		}
		if mode == ModeStep {
			return DoneStep, nil
		}
	}
}
