package linker

import (
	"bytes"
	"debug/elf"
	"unsafe"

	"github.com/pkg/errors"

	"sbld/pkg/utils"
)

// Reloc is one relocation entry against a section. The container format
// carries no addend field; the addend lives in the operand bytes of the
// instruction the entry points at.
type Reloc struct {
	Off uint64
	// Index into ObjectFile.Symbols, -1 if the entry has no symbol target.
	Sym int
}

type ObjectFile struct {
	File     *File
	Sections []*InputSection
	Symbols  []Symbol

	relocs map[int][]Reloc // keyed by target section index
}

const RelocSize = int(unsafe.Sizeof(elf.Rel64{}))

// NewObjectFile parses the ELF container into a flat view of sections,
// symbols and relocation tables. Every malformed input is reported as an
// error naming the offending part of the file, never as a crash.
func NewObjectFile(file *File) (*ObjectFile, error) {
	ef, err := elf.NewFile(bytes.NewReader(file.Contents))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: not a valid object file", file.Name)
	}

	if ef.Class != elf.ELFCLASS64 || ef.Data != elf.ELFDATA2LSB {
		return nil, errors.Errorf("%s: expected little-endian ELF64, got %s/%s",
			file.Name, ef.Class, ef.Data)
	}
	if ef.Machine != elf.EM_BPF {
		return nil, errors.Errorf("%s: machine type is %s, not BPF", file.Name, ef.Machine)
	}

	obj := &ObjectFile{
		File:   file,
		relocs: map[int][]Reloc{},
	}

	syms, err := ef.Symbols()
	if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
		return nil, errors.Wrapf(err, "%s: reading symbol table", file.Name)
	}
	for _, sym := range syms {
		shndx := -1
		if sym.Section > elf.SHN_UNDEF && sym.Section < elf.SHN_LORESERVE {
			shndx = int(sym.Section)
		}
		obj.Symbols = append(obj.Symbols, Symbol{
			Name:    sym.Name,
			Value:   sym.Value,
			Size:    sym.Size,
			Section: shndx,
		})
	}

	for i, sec := range ef.Sections {
		isec := &InputSection{Name: sec.Name, Index: i}
		obj.Sections = append(obj.Sections, isec)

		switch sec.Type {
		case elf.SHT_NULL, elf.SHT_NOBITS:
			// No file contents to read.
		case elf.SHT_REL:
			data, err := sec.Data()
			if err != nil {
				return nil, errors.Wrapf(err, "%s: reading section %s", file.Name, sec.Name)
			}
			rels, err := parseRelocs(data, len(obj.Symbols))
			if err != nil {
				return nil, errors.Wrapf(err, "%s: relocation table %s", file.Name, sec.Name)
			}
			obj.relocs[int(sec.Info)] = rels
			isec.Data = data
		default:
			data, err := sec.Data()
			if err != nil {
				return nil, errors.Wrapf(err, "%s: reading section %s", file.Name, sec.Name)
			}
			isec.Data = data
		}
	}

	return obj, nil
}

func parseRelocs(data []byte, symCount int) ([]Reloc, error) {
	if len(data)%RelocSize != 0 {
		return nil, errors.Errorf("size %d is not a multiple of %d", len(data), RelocSize)
	}

	rels := make([]Reloc, 0, len(data)/RelocSize)
	for len(data) > 0 {
		rel, err := utils.Read[elf.Rel64](data)
		if err != nil {
			return nil, err
		}
		data = data[RelocSize:]

		sym := -1
		if num := elf.R_SYM64(rel.Info); num != 0 {
			if int(num) > symCount {
				return nil, errors.Errorf("symbol index %d out of range", num)
			}
			// Symbols() drops the leading null entry, so raw index n is
			// Symbols[n-1].
			sym = int(num) - 1
		}
		rels = append(rels, Reloc{Off: rel.Off, Sym: sym})
	}

	return rels, nil
}

// Relocations returns the relocation entries targeting sec, in table order.
func (o *ObjectFile) Relocations(sec *InputSection) []Reloc {
	return o.relocs[sec.Index]
}
