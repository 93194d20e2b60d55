package linker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Render writes the program back out as assembly source, ready for
// re-assembly. Debug sections are binary and are not rendered.
func (p *Program) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var insts, rodata []Node
	for _, node := range p.Nodes {
		switch node.(type) {
		case *InstructionNode:
			insts = append(insts, node)
		case *RODataNode:
			rodata = append(rodata, node)
		}
	}

	if len(insts) > 0 {
		fmt.Fprintln(bw, ".text")
		for _, node := range insts {
			fmt.Fprintf(bw, "  %s\n", node.(*InstructionNode).Inst)
		}
	}

	if len(rodata) > 0 {
		if len(insts) > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, ".rodata")
		for _, node := range rodata {
			ro := node.(*RODataNode)
			fmt.Fprintf(bw, "%s: .byte %s\n", ro.Label, byteList(ro.Data))
		}
	}

	return bw.Flush()
}

func byteList(data []byte) string {
	var b strings.Builder
	for i, v := range data {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%#04x", v)
	}
	return b.String()
}
