package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRodataTable(t *testing.T) {
	rodata := &InputSection{
		Name:  ".rodata",
		Index: 2,
		Data:  []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	symbols := []Symbol{
		// Deliberately not in address order: offsets follow enumeration
		// order, not addresses.
		{Name: "A", Value: 4, Size: 2, Section: 2},
		{Name: "marker", Value: 0, Size: 0, Section: 2},
		{Name: "B", Value: 0, Size: 4, Section: 2},
		{Name: "other", Value: 0, Size: 3, Section: 1},
	}

	nodes, table, total, err := BuildRodataTable(rodata, symbols)
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "A", nodes[0].Label)
	assert.Equal(t, uint64(0), nodes[0].Offset)
	assert.Equal(t, []byte{4, 5}, nodes[0].Data)
	assert.Equal(t, "B", nodes[1].Label)
	assert.Equal(t, uint64(2), nodes[1].Offset)
	assert.Equal(t, []byte{0, 1, 2, 3}, nodes[1].Data)

	assert.Equal(t, uint64(6), total)
	assert.Equal(t, SymbolTable{4: "A", 0: "B"}, table)

	var sum uint64
	for _, node := range nodes {
		sum += uint64(len(node.Data))
	}
	assert.Equal(t, total, sum)
}

func TestBuildRodataTableOutOfRangeSymbol(t *testing.T) {
	rodata := &InputSection{Name: ".rodata", Index: 2, Data: make([]byte, 10)}
	symbols := []Symbol{{Name: "BAD", Value: 8, Size: 4, Section: 2}}

	_, _, _, err := BuildRodataTable(rodata, symbols)
	require.ErrorContains(t, err, "outside the section data")
	require.ErrorContains(t, err, "BAD")
}

func TestBuildRodataTableNoSection(t *testing.T) {
	nodes, table, total, err := BuildRodataTable(nil, []Symbol{{Name: "X", Size: 4}})
	require.NoError(t, err)
	assert.Nil(t, nodes)
	assert.Nil(t, table)
	assert.Zero(t, total)
}
