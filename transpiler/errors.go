// Package transpiler converts a RISC-V32 ELF image into the Embive
// instruction encoding the interpreter package dispatches on.
package transpiler

import "fmt"

// ErrInvalidPlatform reports an ELF whose machine/class isn't 32-bit RISC-V.
type ErrInvalidPlatform struct {
	Reason string
}

func (e *ErrInvalidPlatform) Error() string {
	return fmt.Sprintf("invalid platform: %s", e.Reason)
}

// ErrNoProgramHeader reports an ELF with no program headers (segments).
type ErrNoProgramHeader struct{}

func (e *ErrNoProgramHeader) Error() string { return "elf has no program headers" }

// ErrNoSectionHeader reports an ELF with no section headers.
type ErrNoSectionHeader struct{}

func (e *ErrNoSectionHeader) Error() string { return "elf has no section headers" }

// ErrNoSegmentForSection reports an allocatable PROGBITS section whose
// virtual range isn't covered by any loadable segment.
type ErrNoSegmentForSection struct {
	Index int
}

func (e *ErrNoSegmentForSection) Error() string {
	return fmt.Sprintf("no segment covers section %d", e.Index)
}

// ErrBufferTooSmall reports an output buffer too small to hold the
// transpiled image.
type ErrBufferTooSmall struct {
	Needed int
}

func (e *ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("output buffer too small: need at least %d bytes", e.Needed)
}

// ErrIllegalInstruction reports a 16- or 32-bit word the recoding walk
// could not map to any known opcode.
type ErrIllegalInstruction struct {
	Word uint32
}

func (e *ErrIllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction during transpilation: 0x%08x", e.Word)
}

// ErrTruncatedInstruction reports a trailing 16-bit quantity at the end of
// an executable section that isn't a compressed instruction, so it can't
// be the final half of anything.
type ErrTruncatedInstruction struct{}

func (e *ErrTruncatedInstruction) Error() string {
	return "truncated instruction at end of executable section"
}
