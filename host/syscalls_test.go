package host

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/embive/embive-sub000/memory"
	"github.com/stretchr/testify/require"
)

func newMem(ram []byte) *memory.SliceMemory {
	return memory.NewSliceMemory(make([]byte, 4), ram)
}

func TestHandleExit(t *testing.T) {
	h := &Handlers{}
	value, errCode := h.Handle(SysExit, [7]int32{42}, newMem(make([]byte, 8)))
	require.Equal(t, int32(0), value)
	require.Equal(t, int32(0), errCode)
	require.NotNil(t, h.Exited)
	require.Equal(t, int32(42), h.Exited.Code)
}

func TestHandleWrite(t *testing.T) {
	ram := make([]byte, 16)
	copy(ram, []byte("hello world"))

	var out bytes.Buffer
	h := &Handlers{Stdout: &out}

	addr := int32(memory.RAMBase)
	n, errCode := h.Handle(SysWrite, [7]int32{addr, 5}, newMem(ram))
	require.Equal(t, int32(0), errCode)
	require.Equal(t, int32(5), n)
	require.Equal(t, "hello", out.String())
}

func TestHandleWriteRejectsOversizeLength(t *testing.T) {
	h := &Handlers{Stdout: &bytes.Buffer{}}
	_, errCode := h.Handle(SysWrite, [7]int32{int32(memory.RAMBase), maxIOTransfer + 1}, newMem(make([]byte, 8)))
	require.Equal(t, int32(errGeneral), errCode)
}

func TestHandleWriteRejectsNegativeLength(t *testing.T) {
	h := &Handlers{Stdout: &bytes.Buffer{}}
	_, errCode := h.Handle(SysWrite, [7]int32{int32(memory.RAMBase), -1}, newMem(make([]byte, 8)))
	require.Equal(t, int32(errGeneral), errCode)
}

func TestHandleRead(t *testing.T) {
	ram := make([]byte, 16)
	h := &Handlers{Stdin: bufio.NewReader(strings.NewReader("abc"))}

	addr := int32(memory.RAMBase)
	n, errCode := h.Handle(SysRead, [7]int32{addr, 3}, newMem(ram))
	require.Equal(t, int32(0), errCode)
	require.Equal(t, int32(3), n)
	require.Equal(t, []byte("abc"), ram[:3])
}

func TestHandleReadEOFIsNotAnError(t *testing.T) {
	h := &Handlers{Stdin: bufio.NewReader(strings.NewReader(""))}
	n, errCode := h.Handle(SysRead, [7]int32{int32(memory.RAMBase), 8}, newMem(make([]byte, 8)))
	require.Equal(t, int32(0), errCode)
	require.Equal(t, int32(0), n)
}

func TestHandleUnknownSyscall(t *testing.T) {
	h := &Handlers{}
	_, errCode := h.Handle(0x7F, [7]int32{}, newMem(make([]byte, 8)))
	require.Equal(t, int32(errGeneral), errCode)
}
