package transpiler

import (
	"bytes"
	"debug/elf"
)

// segment is the subset of an ELF program header the layout step needs.
type segment struct {
	vaddr uint32
	paddr uint32
	size  uint32
}

// progbitsSection is an allocatable, loadable section found in the input
// ELF: either pure data or, when exec is true, code that also needs its
// instructions recoded.
type progbitsSection struct {
	index int
	addr  uint32
	align uint32
	data  []byte
	exec  bool
}

// ingestedELF is the transpiler's internal view of the input binary: just
// the entry point, segment table, and allocatable PROGBITS sections,
// translated down from the standard library's richer elf.File.
type ingestedELF struct {
	entry    uint32
	segments []segment
	sections []progbitsSection
}

func ingestELF(raw []byte) (*ingestedELF, error) {
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, &ErrInvalidPlatform{Reason: err.Error()}
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return nil, &ErrInvalidPlatform{Reason: "not a 32-bit ELF"}
	}
	if f.Machine != elf.EM_RISCV {
		return nil, &ErrInvalidPlatform{Reason: "not a RISC-V ELF"}
	}

	if len(f.Progs) == 0 {
		return nil, &ErrNoProgramHeader{}
	}
	if len(f.Sections) == 0 {
		return nil, &ErrNoSectionHeader{}
	}

	ie := &ingestedELF{entry: uint32(f.Entry)}

	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		ie.segments = append(ie.segments, segment{
			vaddr: uint32(p.Vaddr),
			paddr: uint32(p.Paddr),
			size:  uint32(p.Memsz),
		})
	}

	for i, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		align := uint32(s.Addralign)
		if align == 0 {
			align = 1
		}
		ie.sections = append(ie.sections, progbitsSection{
			index: i,
			addr:  uint32(s.Addr),
			align: align,
			data:  data,
			exec:  s.Flags&elf.SHF_EXECINSTR != 0,
		})
	}

	return ie, nil
}

// segmentFor returns the loadable segment covering [addr, addr+size), or
// false if none does.
func (ie *ingestedELF) segmentFor(addr, size uint32) (segment, bool) {
	for _, seg := range ie.segments {
		if addr >= seg.vaddr && addr+size <= seg.vaddr+seg.size {
			return seg, true
		}
	}
	return segment{}, false
}
