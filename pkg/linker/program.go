package linker

import (
	"github.com/pattyshack/gt/parseutil"

	"sbld/pkg/sbpf"
)

// Node is one entry of the reconstructed program: a decoded instruction or a
// named read-only data blob.
type Node interface {
	isNode()
}

// InstructionNode is a decoded instruction tagged with its byte offset in the
// original text section. It is mutable until relocation resolution rewrites
// its trailing operand, and immutable afterwards.
type InstructionNode struct {
	Inst   sbpf.Instruction
	Offset uint64
}

func (*InstructionNode) isNode() {}

// RODataNode is a named constant tagged with its cumulative offset in the
// read-only data segment.
type RODataNode struct {
	Label  string
	Data   []byte
	Offset uint64
}

func (*RODataNode) isNode() {}

// DebugBlob is a debug section carried through unmodified. Its output offset
// is the emitter's concern, not ours.
type DebugBlob struct {
	Name string
	Data []byte
}

// Program is the fully decoded, relocation-resolved representation handed to
// the downstream assembler.
type Program struct {
	Nodes         []Node // instruction nodes in text order, then rodata nodes
	TextSize      uint64
	RodataSize    uint64
	DebugSections []DebugBlob
}

// BuildProgram validates the decoded nodes and packages them into a Program.
// Structural problems (duplicate labels, references to labels that no rodata
// node defines) are accumulated and returned together; node content is never
// mutated here.
func BuildProgram(
	insts []*InstructionNode,
	rodata []*RODataNode,
	textSize uint64,
	rodataSize uint64,
	debug []DebugBlob,
) (*Program, []error) {
	emitter := &parseutil.Emitter{}

	labels := map[string]struct{}{}
	for _, node := range rodata {
		if _, dup := labels[node.Label]; dup {
			emitter.Emit(parseutil.Location{},
				"duplicate read-only data label %q", node.Label)
			continue
		}
		labels[node.Label] = struct{}{}
	}

	for _, node := range insts {
		ref, ok := node.Inst.Imm.(sbpf.LabelRef)
		if !ok {
			continue
		}
		if _, defined := labels[string(ref)]; !defined {
			emitter.Emit(parseutil.Location{},
				"instruction at offset %#x references undefined label %q",
				node.Offset, string(ref))
		}
	}

	if errs := emitter.Errors(); len(errs) > 0 {
		return nil, errs
	}

	prog := &Program{
		Nodes:         make([]Node, 0, len(insts)+len(rodata)),
		TextSize:      textSize,
		RodataSize:    rodataSize,
		DebugSections: debug,
	}
	for _, node := range insts {
		prog.Nodes = append(prog.Nodes, node)
	}
	for _, node := range rodata {
		prog.Nodes = append(prog.Nodes, node)
	}

	return prog, nil
}
