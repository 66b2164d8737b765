// Package cfg partitions a generated program into basic blocks and links
// them into a control flow graph for the back end.
package cfg

import (
	"fmt"
	"slices"

	"github.com/raymyers/littlec/pkg/ir"
)

// Block is a maximal run of lines entered only at its first line.
type Block struct {
	Index  int
	Instrs []ir.Instruction
	Succs  []*Block
}

// Leader returns the first line of the block.
func (b *Block) Leader() ir.Instruction {
	return b.Instrs[0]
}

// Last returns the line whose kind decides the block's successors.
func (b *Block) Last() ir.Instruction {
	return b.Instrs[len(b.Instrs)-1]
}

// Graph is the control flow graph of a whole program, blocks in program order.
type Graph struct {
	Blocks []*Block
}

// Build splits prog into basic blocks and computes their successors.
// Every branch in prog must resolve; Build panics otherwise.
func Build(prog *ir.Program) *Graph {
	if err := ir.CheckLabels(prog); err != nil {
		panic(fmt.Sprintf("cfg: malformed program: %v", err))
	}

	lines := prog.All()
	targets := ir.UsedLabels(prog)
	g := &Graph{}
	var cur *Block
	for i, instr := range lines {
		if cur == nil || isLeader(instr, i, lines, targets) {
			cur = &Block{Index: len(g.Blocks)}
			g.Blocks = append(g.Blocks, cur)
		}
		cur.Instrs = append(cur.Instrs, instr)
	}

	byLabel := make(map[ir.Label]*Block)
	for _, b := range g.Blocks {
		if lbl := b.Leader().Label(); lbl != "" {
			byLabel[lbl] = b
		}
	}
	for _, b := range g.Blocks {
		b.Succs = g.successors(b, byLabel)
	}
	return g
}

func isLeader(instr ir.Instruction, i int, lines []ir.Instruction, targets map[ir.Label]bool) bool {
	if i == 0 {
		return true
	}
	if _, ok := instr.(*ir.FuncStart); ok {
		return true
	}
	if lbl := instr.Label(); lbl != "" && targets[lbl] {
		return true
	}
	switch lines[i-1].(type) {
	case ir.Branch, *ir.Call:
		return true
	}
	if _, ok := instr.(*ir.Data); ok && instr.Label() != "" {
		return true
	}
	return false
}

func (g *Graph) successors(b *Block, byLabel map[ir.Label]*Block) []*Block {
	var next *Block
	if b.Index+1 < len(g.Blocks) {
		next = g.Blocks[b.Index+1]
	}

	var succs []*Block
	add := func(s *Block) {
		if s != nil && !slices.Contains(succs, s) {
			succs = append(succs, s)
		}
	}
	switch last := b.Last().(type) {
	case ir.Branch:
		if last.Conditional() {
			add(next)
		}
		add(byLabel[last.Target()])
	case *ir.Call:
		// Only callees defined in this program have an entry block.
		add(byLabel[ir.Label(last.Func.Name())])
	case *ir.FuncEnd, *ir.Data:
	default:
		add(next)
	}
	return succs
}

// Preds returns the blocks that list b as a successor, in block order.
func (g *Graph) Preds(b *Block) []*Block {
	var preds []*Block
	for _, p := range g.Blocks {
		for _, s := range p.Succs {
			if s == b {
				preds = append(preds, p)
				break
			}
		}
	}
	return preds
}

// Len returns the number of blocks.
func (g *Graph) Len() int {
	return len(g.Blocks)
}
