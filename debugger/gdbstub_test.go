package debugger

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/embive/embive-sub000/interpreter"
	"github.com/embive/embive-sub000/memory"
	"github.com/stretchr/testify/require"
)

func TestLeHex32RoundTrip(t *testing.T) {
	v, err := parseLEHex32(leHex32(0x78563412))
	require.NoError(t, err)
	require.Equal(t, uint32(0x78563412), v)
}

func TestParseLEHex32RejectsBadLength(t *testing.T) {
	_, err := parseLEHex32("1234")
	require.Error(t, err)
}

func TestParseAddrLength(t *testing.T) {
	addr, length, err := parseAddrLength("80000000,4")
	require.NoError(t, err)
	require.Equal(t, uint32(0x80000000), addr)
	require.Equal(t, uint32(4), length)
}

func TestParseAddrLengthMalformed(t *testing.T) {
	_, _, err := parseAddrLength("80000000")
	require.Error(t, err)
}

func TestParseBreakpointAddr(t *testing.T) {
	addr, err := parseBreakpointAddr("0,80000004,4")
	require.NoError(t, err)
	require.Equal(t, uint32(0x80000004), addr)
}

func newGDBTestStub() (*GDBStub, *bytes.Buffer) {
	mem := memory.NewSliceMemory(make([]byte, 4), make([]byte, 256))
	interp := interpreter.New(mem, interpreter.Config{})
	session := NewSession(interp, func(number int32, args [7]int32, mem memory.Memory) (int32, int32) {
		return 0, 0
	})
	conn := &bytes.Buffer{}
	return NewGDBStub(session, conn), conn
}

func TestSendPacket(t *testing.T) {
	stub, conn := newGDBTestStub()
	require.NoError(t, stub.sendPacket("OK"))
	require.Equal(t, "$OK#9a", conn.String())
}

func TestReadPacketStripsFraming(t *testing.T) {
	stub, conn := newGDBTestStub()
	conn.WriteString("$g#00")

	packet, err := stub.readPacket()
	require.NoError(t, err)
	require.Equal(t, "g", packet)
	require.Equal(t, "+", conn.String())
}

func TestDispatchReadRegisters(t *testing.T) {
	stub, conn := newGDBTestStub()
	require.NoError(t, stub.session.Interp.CPU.Set(1, 0x78563412))

	done, err := stub.dispatch("g")
	require.NoError(t, err)
	require.False(t, done)

	var want strings.Builder
	want.WriteString(leHex32(0))
	want.WriteString(leHex32(0x78563412))
	for i := 2; i < interpreter.CPURegisterCount; i++ {
		want.WriteString(leHex32(0))
	}
	want.WriteString(leHex32(0)) // PC

	reply := conn.String()
	require.True(t, strings.HasPrefix(reply, "$"+want.String()+"#"))
}

func TestDispatchWriteAndReadMemory(t *testing.T) {
	stub, conn := newGDBTestStub()

	addr := memory.RAMBase
	done, err := stub.dispatch(fmt.Sprintf("M%x,4:12345678", addr))
	require.NoError(t, err)
	require.False(t, done)
	require.Contains(t, conn.String(), "OK")
	conn.Reset()

	done, err = stub.dispatch(fmt.Sprintf("m%x,4", addr))
	require.NoError(t, err)
	require.False(t, done)
	require.True(t, strings.HasPrefix(conn.String(), "$12345678#"))
}

func TestDispatchBreakpointSetAndClear(t *testing.T) {
	stub, conn := newGDBTestStub()

	done, err := stub.dispatch("Z0,100,4")
	require.NoError(t, err)
	require.False(t, done)
	require.Contains(t, conn.String(), "OK")
	conn.Reset()

	done, err = stub.dispatch("z0,100,4")
	require.NoError(t, err)
	require.False(t, done)
	require.Contains(t, conn.String(), "OK")
}

func TestDispatchKill(t *testing.T) {
	stub, _ := newGDBTestStub()
	done, err := stub.dispatch("k")
	require.NoError(t, err)
	require.True(t, done)
}

func TestDispatchUnknownPacket(t *testing.T) {
	stub, conn := newGDBTestStub()
	done, err := stub.dispatch("Q")
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, "$#00", conn.String())
}
