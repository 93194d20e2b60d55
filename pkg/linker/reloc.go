package linker

import (
	"github.com/pkg/errors"

	"sbld/pkg/sbpf"
)

var ErrDanglingRelocation = errors.New("relocations found but no read-only data section")

// ApplyRelocations rewrites the trailing operand of every relocated
// instruction from a raw rodata address to a symbolic label.
//
// The relocation entries carry no addend; the addend is recovered from the
// immediate already decoded into the target instruction, which is why this
// pass must run after DecodeText. Entries without a symbol target, and
// entries whose symbol lives outside the rodata section, are skipped.
func ApplyRelocations(
	obj *ObjectFile,
	secs ProgramSections,
	index instructionIndex,
	table SymbolTable,
) error {
	rels := obj.Relocations(secs.Text)
	if len(rels) == 0 {
		return nil
	}
	if secs.Rodata == nil {
		return errors.Wrap(ErrDanglingRelocation, secs.Text.Name)
	}

	for _, rel := range rels {
		if rel.Sym < 0 {
			continue
		}
		if obj.Symbols[rel.Sym].Section != secs.Rodata.Index {
			continue
		}

		node, ok := index[rel.Off]
		if !ok {
			return errors.Errorf("relocation at %#x: no instruction at this offset", rel.Off)
		}

		var addend int64
		if imm, ok := node.Inst.Imm.(sbpf.Imm); ok {
			addend = int64(imm)
		}

		label, ok := table[uint64(addend)]
		if !ok {
			return errors.Errorf(
				"relocation at %#x: no read-only data label for addend %#x", rel.Off, addend)
		}

		node.Inst.Imm = sbpf.LabelRef(label)
	}

	return nil
}
