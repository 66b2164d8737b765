package cfg

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raymyers/littlec/pkg/ir"
)

// Printer outputs a graph as block headers followed by the block's lines
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new CFG printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintGraph prints every block of g in order
func (p *Printer) PrintGraph(g *Graph) {
	for _, b := range g.Blocks {
		p.PrintBlock(b)
	}
}

// PrintBlock prints
//
//	====== BasicBlock 2 -> (3, 5) ======
//	<lines>
func (p *Printer) PrintBlock(b *Block) {
	idx := make([]string, len(b.Succs))
	for i, s := range b.Succs {
		idx[i] = strconv.Itoa(s.Index)
	}
	fmt.Fprintf(p.w, "====== BasicBlock %d -> (%s) ======\n", b.Index, strings.Join(idx, ", "))
	for _, instr := range b.Instrs {
		fmt.Fprintln(p.w, ir.FormatLine(instr))
	}
}

// Text renders the whole graph.
func (g *Graph) Text() string {
	var sb strings.Builder
	NewPrinter(&sb).PrintGraph(g)
	return sb.String()
}
