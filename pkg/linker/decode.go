package linker

import (
	"github.com/pkg/errors"

	"sbld/pkg/sbpf"
)

// instructionIndex finds an already-decoded node by its byte offset.
type instructionIndex map[uint64]*InstructionNode

// DecodeText decodes the entire text section into instruction nodes. A byte
// sequence that does not decode aborts the pass; the decoder never skips
// ahead to resynchronize.
func DecodeText(text *InputSection) ([]*InstructionNode, instructionIndex, error) {
	var nodes []*InstructionNode
	index := instructionIndex{}

	offset := 0
	for offset < len(text.Data) {
		ins, width, err := sbpf.Decode(text.Data[offset:])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s: offset %#x", text.Name, offset)
		}

		node := &InstructionNode{Inst: ins, Offset: uint64(offset)}
		nodes = append(nodes, node)
		index[node.Offset] = node
		offset += width
	}

	return nodes, index, nil
}
