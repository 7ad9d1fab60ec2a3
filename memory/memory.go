// Package memory defines the abstract view of addressable space the
// interpreter executes against: a read-only code region based at address 0
// and a mutable RAM region based at RAMBase.
package memory

import "fmt"

// RAMBase is the fixed virtual address where RAM begins. Any address below
// it addresses the code image instead.
const RAMBase uint32 = 0x8000_0000

// ErrInvalidAddress reports an access outside the bounds of its region.
type ErrInvalidAddress struct {
	Address uint32
}

func (e *ErrInvalidAddress) Error() string {
	return fmt.Sprintf("invalid memory address: 0x%08x", e.Address)
}

// ErrInvalidLength reports a request whose end address (addr + length)
// overflows 32-bit address arithmetic. A request that merely overruns its
// region is reported as ErrInvalidAddress.
type ErrInvalidLength struct {
	Length uint32
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("invalid memory access length: %d", e.Length)
}

// Memory is the interface the interpreter executes against. Implementations
// need not be thread-safe: the interpreter holds exclusive access to it for
// the duration of each Step/Run call.
type Memory interface {
	// Load reads len bytes starting at addr. Addresses below RAMBase read
	// from the code region; addresses at or above it read from RAM.
	Load(addr uint32, length uint32) ([]byte, error)
	// Store writes data into RAM starting at addr. Writes below RAMBase
	// always fail: the code region is read-only.
	Store(addr uint32, data []byte) error
	// MutBytes returns a mutable view into RAM for in-place atomic
	// read-modify-write sequences (AMO*, SC.W).
	MutBytes(addr uint32, length uint32) ([]byte, error)
}

// SliceMemory is the default Memory implementation: two borrowed byte
// slices, one for code and one for RAM.
type SliceMemory struct {
	Code []byte
	RAM  []byte
}

// NewSliceMemory wraps a code image and a RAM buffer.
func NewSliceMemory(code, ram []byte) *SliceMemory {
	return &SliceMemory{Code: code, RAM: ram}
}

func checkedRange(bufLen int, addr, length uint32) (uint32, uint32, error) {
	end := addr + length
	if end < addr {
		return 0, 0, &ErrInvalidLength{Length: length}
	}
	if end > uint32(bufLen) {
		return 0, 0, &ErrInvalidAddress{Address: addr}
	}
	return addr, end, nil
}

func (m *SliceMemory) Load(addr uint32, length uint32) ([]byte, error) {
	if addr+length < addr {
		return nil, &ErrInvalidLength{Length: length}
	}
	if addr < RAMBase {
		start, end, err := checkedRange(len(m.Code), addr, length)
		if err != nil {
			return nil, err
		}
		return m.Code[start:end], nil
	}
	start, end, err := checkedRange(len(m.RAM), addr-RAMBase, length)
	if err != nil {
		return nil, err
	}
	return m.RAM[start:end], nil
}

func (m *SliceMemory) Store(addr uint32, data []byte) error {
	if addr < RAMBase {
		return &ErrInvalidAddress{Address: addr}
	}
	start, end, err := checkedRange(len(m.RAM), addr-RAMBase, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(m.RAM[start:end], data)
	return nil
}

func (m *SliceMemory) MutBytes(addr uint32, length uint32) ([]byte, error) {
	if addr < RAMBase {
		return nil, &ErrInvalidAddress{Address: addr}
	}
	start, end, err := checkedRange(len(m.RAM), addr-RAMBase, length)
	if err != nil {
		return nil, err
	}
	return m.RAM[start:end], nil
}
