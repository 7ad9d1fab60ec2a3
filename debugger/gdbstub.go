package debugger

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/embive/embive-sub000/interpreter"
)

// GDBStub implements just enough of the GDB remote serial protocol to
// drive a Session: register and memory read/write, breakpoint set/clear,
// single-step, and continue. It is a minimal reference transport, not a
// full target description; unsupported packets get an empty reply, which
// is the RSP convention for "not implemented".
type GDBStub struct {
	session *Session
	conn    io.ReadWriter
	r       *bufio.Reader
}

// NewGDBStub wraps session for RSP traffic over conn.
func NewGDBStub(session *Session, conn io.ReadWriter) *GDBStub {
	return &GDBStub{session: session, conn: conn, r: bufio.NewReader(conn)}
}

// Serve reads and answers packets until conn is closed or an
// unrecoverable I/O error occurs. A 'k' (kill) packet or a Terminated
// stop reason ends the loop.
func (g *GDBStub) Serve() error {
	for {
		packet, err := g.readPacket()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		done, err := g.dispatch(packet)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (g *GDBStub) dispatch(packet string) (done bool, err error) {
	if packet == "" {
		return false, nil
	}

	switch packet[0] {
	case 'g':
		return false, g.readRegisters()
	case 'G':
		return false, g.writeRegisters(packet[1:])
	case 'm':
		return false, g.readMemory(packet[1:])
	case 'M':
		return false, g.writeMemory(packet[1:])
	case 'Z':
		return false, g.setBreakpoint(packet[1:])
	case 'z':
		return false, g.clearBreakpoint(packet[1:])
	case 'c':
		return g.resume(ModeRun)
	case 's':
		return g.resume(ModeStep)
	case 'k':
		return true, nil
	case '?':
		return false, g.sendPacket("S05")
	default:
		return false, g.sendPacket("")
	}
}

func (g *GDBStub) resume(mode ExecMode) (bool, error) {
	reason, err := g.session.Resume(mode)
	if err != nil {
		return false, g.sendPacket("E01")
	}
	if reason == Terminated {
		if err := g.sendPacket("W00"); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, g.sendPacket("S05")
}

// readRegisters replies with x0..x31 followed by pc, each as 4
// little-endian hex bytes, matching the RISC-V 32-bit g-packet layout.
func (g *GDBStub) readRegisters() error {
	var sb strings.Builder
	for idx := 0; idx < interpreter.CPURegisterCount; idx++ {
		v, err := g.session.Interp.CPU.Get(uint8(idx))
		if err != nil {
			return g.sendPacket("E02")
		}
		sb.WriteString(leHex32(uint32(v)))
	}
	sb.WriteString(leHex32(g.session.Interp.PC))
	return g.sendPacket(sb.String())
}

func (g *GDBStub) writeRegisters(payload string) error {
	want := (interpreter.CPURegisterCount + 1) * 8
	if len(payload) < want {
		return g.sendPacket("E02")
	}
	for idx := 0; idx < interpreter.CPURegisterCount; idx++ {
		v, err := parseLEHex32(payload[idx*8 : idx*8+8])
		if err != nil {
			return g.sendPacket("E02")
		}
		if err := g.session.Interp.CPU.Set(uint8(idx), int32(v)); err != nil {
			return g.sendPacket("E02")
		}
	}
	pc, err := parseLEHex32(payload[interpreter.CPURegisterCount*8:])
	if err != nil {
		return g.sendPacket("E02")
	}
	g.session.Interp.PC = pc
	return g.sendPacket("OK")
}

// readMemory handles "addr,length" and replies with the raw bytes
// hex-encoded, or E01 if the range is not addressable.
func (g *GDBStub) readMemory(args string) error {
	addr, length, err := parseAddrLength(args)
	if err != nil {
		return g.sendPacket("E01")
	}
	data, err := g.session.Interp.Memory.Load(addr, length)
	if err != nil {
		return g.sendPacket("E01")
	}
	return g.sendPacket(hex.EncodeToString(data))
}

// writeMemory handles "addr,length:XX..." where XX.. is hex-encoded data.
func (g *GDBStub) writeMemory(args string) error {
	header, payload, ok := strings.Cut(args, ":")
	if !ok {
		return g.sendPacket("E01")
	}
	addr, length, err := parseAddrLength(header)
	if err != nil {
		return g.sendPacket("E01")
	}
	data, err := hex.DecodeString(payload)
	if err != nil || uint32(len(data)) != length {
		return g.sendPacket("E01")
	}
	if err := g.session.Interp.Memory.Store(addr, data); err != nil {
		return g.sendPacket("E01")
	}
	return g.sendPacket("OK")
}

// setBreakpoint/clearBreakpoint handle "type,addr,kind"; type is ignored
// since this stub only supports software breakpoints.
func (g *GDBStub) setBreakpoint(args string) error {
	addr, err := parseBreakpointAddr(args)
	if err != nil {
		return g.sendPacket("E01")
	}
	if !g.session.SetBreakpoint(addr) {
		return g.sendPacket("E01")
	}
	return g.sendPacket("OK")
}

func (g *GDBStub) clearBreakpoint(args string) error {
	addr, err := parseBreakpointAddr(args)
	if err != nil {
		return g.sendPacket("E01")
	}
	g.session.ClearBreakpoint(addr)
	return g.sendPacket("OK")
}

func parseBreakpointAddr(args string) (uint32, error) {
	parts := strings.Split(args, ",")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed breakpoint packet")
	}
	addr, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(addr), nil
}

func parseAddrLength(args string) (addr uint32, length uint32, err error) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed memory packet")
	}
	a, err := strconv.ParseUint(parts[0], 16, 32)
	if err != nil {
		return 0, 0, err
	}
	l, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return 0, 0, err
	}
	return uint32(a), uint32(l), nil
}

func leHex32(v uint32) string {
	var buf [4]byte
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	return hex.EncodeToString(buf[:])
}

func parseLEHex32(s string) (uint32, error) {
	buf, err := hex.DecodeString(s)
	if err != nil || len(buf) != 4 {
		return 0, fmt.Errorf("malformed register value")
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// readPacket strips the leading '$' and trailing "#checksum", acking with
// '+' as RSP requires. It skips over stray interrupt/ack bytes that
// precede a real packet.
func (g *GDBStub) readPacket() (string, error) {
	for {
		b, err := g.r.ReadByte()
		if err != nil {
			return "", err
		}
		if b != '$' {
			continue
		}

		var sb strings.Builder
		for {
			c, err := g.r.ReadByte()
			if err != nil {
				return "", err
			}
			if c == '#' {
				break
			}
			sb.WriteByte(c)
		}

		// Consume the two-byte checksum; this stub trusts the transport
		// rather than verifying it.
		if _, err := g.r.Discard(2); err != nil {
			return "", err
		}

		if _, err := io.WriteString(g.conn, "+"); err != nil {
			return "", err
		}
		return sb.String(), nil
	}
}

func (g *GDBStub) sendPacket(payload string) error {
	checksum := 0
	for i := 0; i < len(payload); i++ {
		checksum += int(payload[i])
	}
	_, err := fmt.Fprintf(g.conn, "$%s#%02x", payload, checksum&0xff)
	return err
}
