package interpreter

import (
	"encoding/binary"
	"testing"

	"github.com/embive/embive-sub000/format"
	"github.com/embive/embive-sub000/memory"
	"github.com/stretchr/testify/require"
)

func wordSystem(funct3 uint8, rdRs2, rs1 uint8, imm int32) uint32 {
	in := format.TypeI{RdRs2: rdRs2, Rs1: rs1, Imm: imm, Funct3: funct3}
	return in.ToEmbive() | uint32(OpSystemMiscMem)
}

func wordOpImm(funct3 uint8, rd, rs1 uint8, imm int32) uint32 {
	in := format.TypeI{RdRs2: rd, Rs1: rs1, Imm: imm, Funct3: funct3}
	return in.ToEmbive() | uint32(OpOpImm)
}

func newTestInterpreter(code []byte) *Interpreter {
	padded := make([]byte, len(code)+4)
	copy(padded, code)
	mem := memory.NewSliceMemory(padded, make([]byte, 256))
	return New(mem, Config{})
}

func TestRunHaltsOnEbreak(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immEBREAK))

	interp := newTestInterpreter(code[:])
	state, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, Halted, state)
}

func TestRunYieldsOnEcall(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immECALL))

	interp := newTestInterpreter(code[:])
	state, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, Called, state)
	require.Equal(t, uint32(4), interp.PC)
}

func TestRunYieldsOnWfi(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immWFI))

	interp := newTestInterpreter(code[:])
	state, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, Waiting, state)
}

func TestRunRespectsInstructionLimit(t *testing.T) {
	// Two ADDI instructions that never reach a terminal state.
	code := make([]byte, 8)
	binary.LittleEndian.PutUint32(code[0:4], wordOpImm(0, RegT0, RegZero, 1))
	binary.LittleEndian.PutUint32(code[4:8], wordOpImm(0, RegT0, RegT0, 1))

	mem := memory.NewSliceMemory(append(code, 0, 0, 0, 0), make([]byte, 256))
	interp := New(mem, Config{InstructionLimit: 1})

	state, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, Running, state)
	require.Equal(t, uint32(4), interp.PC)

	v, err := interp.CPU.Get(RegT0)
	require.NoError(t, err)
	require.Equal(t, int32(1), v)
}

func TestSyscallRoundTrip(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immECALL))

	interp := newTestInterpreter(code[:])
	require.NoError(t, interp.CPU.Set(RegA7, 42))
	require.NoError(t, interp.CPU.Set(RegA0, 7))

	state, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, Called, state)

	err = interp.Syscall(func(number int32, args [7]int32, mem memory.Memory) (int32, int32) {
		require.Equal(t, int32(42), number)
		require.Equal(t, int32(7), args[0])
		return 99, 0
	})
	require.NoError(t, err)

	a0, err := interp.CPU.Get(RegA0)
	require.NoError(t, err)
	require.Equal(t, int32(0), a0)
	a1, err := interp.CPU.Get(RegA1)
	require.NoError(t, err)
	require.Equal(t, int32(99), a1)
}

func TestInterruptRequiresEnable(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immWFI))
	interp := newTestInterpreter(code[:])

	_, err := interp.Run()
	require.NoError(t, err)
	require.ErrorIs(t, interp.Interrupt(), ErrInterruptNotEnabled)
}

func TestTraceRecordsSteps(t *testing.T) {
	var code [4]byte
	binary.LittleEndian.PutUint32(code[:], wordSystem(0, 0, 0, immEBREAK))

	interp := newTestInterpreter(code[:])
	interp.Trace = NewTrace(4)

	_, err := interp.Run()
	require.NoError(t, err)
	require.Equal(t, 1, interp.Trace.Len())
	require.Equal(t, Halted, interp.Trace.Events()[0].State)
}
