package linker

import (
	"github.com/pkg/errors"
)

// BuildRodataTable emits one RODataNode per sized symbol of the rodata
// section and registers its address in the symbol table. Symbols are taken in
// object declaration order, not address order, and node offsets accumulate in
// that same order; the returned total is the rodata segment size.
func BuildRodataTable(rodata *InputSection, symbols []Symbol) ([]*RODataNode, SymbolTable, uint64, error) {
	if rodata == nil {
		return nil, nil, 0, nil
	}

	table := SymbolTable{}
	var nodes []*RODataNode
	var total uint64

	for _, sym := range symbols {
		// Zero-size symbols are section markers, not data.
		if sym.Section != rodata.Index || sym.Size == 0 {
			continue
		}

		end := sym.Value + sym.Size
		if end < sym.Value || end > uint64(len(rodata.Data)) {
			return nil, nil, 0, errors.Errorf(
				"%s: symbol %s spans [%#x, %#x), outside the section data",
				rodata.Name, sym.Name, sym.Value, end)
		}

		nodes = append(nodes, &RODataNode{
			Label:  sym.Name,
			Data:   rodata.Data[sym.Value:end],
			Offset: total,
		})
		table[sym.Value] = sym.Name
		total += sym.Size
	}

	return nodes, table, total, nil
}
