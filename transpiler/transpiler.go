package transpiler

import "encoding/binary"

// Result is the product of a successful transpilation: a code image ready
// to back a memory.Memory's code region. The entry section is always laid
// out at offset 0 of Code (offset is rounded from paddr-ie.entry, which is
// zero for the section containing the ELF's own entry point), so a fresh
// interpreter's PC == 0 default already points at the first instruction to
// run; there is no separate entry value to carry.
type Result struct {
	Code []byte
}

// Transpile converts a 32-bit little-endian RISC-V ELF image into Embive
// form. output must be large enough to hold the relocated, recoded
// sections; Transpile never grows it.
//
// The walk is one pass: copy each allocatable PROGBITS section to its
// entry-relative offset, then recode the bytes of any section that is
// also marked executable, instruction by instruction, in place.
func Transpile(elfBytes []byte, output []byte) (*Result, error) {
	ie, err := ingestELF(elfBytes)
	if err != nil {
		return nil, err
	}

	var binarySize uint32
	var needsPad bool

	for i, sec := range ie.sections {
		seg, ok := ie.segmentFor(sec.addr, uint32(len(sec.data)))
		if !ok {
			return nil, &ErrNoSegmentForSection{Index: sec.index}
		}

		paddr := sec.addr - seg.vaddr + seg.paddr
		offset := ceilDiv(paddr-ie.entry, sec.align) * sec.align

		end := offset + uint32(len(sec.data))
		if end > uint32(len(output)) {
			return nil, &ErrBufferTooSmall{Needed: int(end)}
		}
		copy(output[offset:end], sec.data)
		if end > binarySize {
			binarySize = end
		}

		if sec.exec {
			pad, err := recodeSection(output[offset:end])
			if err != nil {
				return nil, err
			}
			if pad {
				needsPad = true
			}
		}

		_ = i
	}

	if needsPad {
		if int(binarySize)+2 > len(output) {
			return nil, &ErrBufferTooSmall{Needed: int(binarySize) + 2}
		}
		output[binarySize] = 0
		output[binarySize+1] = 0
		binarySize += 2
	}

	return &Result{Code: output[:binarySize]}, nil
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	return (a + b - 1) / b
}

// recodeSection walks an executable section's bytes 16 bits at a time,
// replacing each RISC-V instruction with its Embive encoding in place.
// Reports whether the section needs a trailing 2-byte pad (a lone
// compressed instruction ending less than 4 bytes from the section end).
func recodeSection(data []byte) (bool, error) {
	end := len(data)
	i := 0
	for i < end {
		if i+4 <= end {
			word := binary.LittleEndian.Uint32(data[i:])
			if word&0x3 == 0x3 {
				encoded, err := convertBase(word)
				if err != nil {
					return false, err
				}
				binary.LittleEndian.PutUint32(data[i:i+4], encoded)
				i += 4
				continue
			}

			low16 := uint16(word)
			encoded, err := convertCompressed(low16)
			if err != nil {
				return false, err
			}
			binary.LittleEndian.PutUint16(data[i:i+2], uint16(encoded))
			i += 2
			continue
		}

		// Fewer than 4 bytes remain: only a compressed instruction fits.
		if i+2 > end {
			return false, &ErrTruncatedInstruction{}
		}
		low16 := binary.LittleEndian.Uint16(data[i:])
		if low16&0x3 == 0x3 {
			return false, &ErrTruncatedInstruction{}
		}
		encoded, err := convertCompressed(low16)
		if err != nil {
			return false, err
		}
		binary.LittleEndian.PutUint16(data[i:i+2], uint16(encoded))
		i += 2
		return true, nil
	}
	return false, nil
}
