package irgen

import (
	"github.com/raymyers/littlec/pkg/ir"
	"github.com/raymyers/littlec/pkg/lcast"
)

func (g *Generator) genStmt(n *lcast.Node) error {
	if n == nil {
		return g.errorf(n, ErrMalformedAST, "missing statement")
	}
	switch n.Kind {
	case lcast.Seq:
		return g.genBlock(n)
	case lcast.FuncDef:
		return g.genFunc(n)
	case lcast.VarDecl:
		return g.genVarDecl(n)
	case lcast.While:
		return g.genWhile(n)
	case lcast.If:
		return g.genIf(n)
	case lcast.Break:
		return g.genBreak(n)
	case lcast.Return:
		return g.genReturn(n)
	case lcast.ParamDecl:
		return g.errorf(n, ErrMalformedAST, "parameter declaration outside a parameter list")
	}
	_, err := g.genExpr(n)
	return err
}

// genBlock generates a nested block in its own name scope.
func (g *Generator) genBlock(n *lcast.Node) error {
	g.names.PushScope()
	defer g.names.PopScope()
	for _, s := range n.Children {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// genWhile emits
//
//	top:
//		<exit jump to bottom when the condition is false>
//		<body>
//		goto top
//	bottom:
func (g *Generator) genWhile(n *lcast.Node) error {
	if err := g.arity(n, 2, 2); err != nil {
		return err
	}
	top := g.alloc.NewLabel()
	g.emit(ir.NewNop(top))
	exit, err := g.genCondJump(n.Children[0])
	if err != nil {
		return err
	}

	g.loops.Push()
	err = g.genStmt(n.Children[1])
	breaks := g.loops.Pop()
	if err != nil {
		return err
	}

	g.emit(ir.NewJump(top))
	bottom := g.alloc.NewLabel()
	g.emit(ir.NewNop(bottom))
	exit.SetTarget(bottom)
	for _, b := range breaks {
		b.SetTarget(bottom)
	}
	g.log.Debug("generated loop", "top", top, "bottom", bottom, "breaks", len(breaks), "depth", g.loops.Depth()+1)
	return nil
}

// genIf emits
//
//	<jump to skip when the condition is false>
//	<then>
//	goto after        (only with an else branch)
//	skip:
//	<else>
//	after:
func (g *Generator) genIf(n *lcast.Node) error {
	if err := g.arity(n, 2, 3); err != nil {
		return err
	}
	skipJump, err := g.genCondJump(n.Children[0])
	if err != nil {
		return err
	}
	skip := g.alloc.NewLabel()
	skipJump.SetTarget(skip)

	if err := g.genStmt(n.Children[1]); err != nil {
		return err
	}
	if len(n.Children) == 2 {
		g.emit(ir.NewNop(skip))
		return nil
	}

	after := g.alloc.NewLabel()
	g.emit(ir.NewJump(after))
	g.emit(ir.NewNop(skip))
	if err := g.genStmt(n.Children[2]); err != nil {
		return err
	}
	g.emit(ir.NewNop(after))
	return nil
}

// genCondJump emits a jump taken when cond is false and returns it with its
// target unset. Comparisons branch on the negated operator; any other value
// is materialized and tested with ifFalse.
func (g *Generator) genCondJump(cond *lcast.Node) (ir.Branch, error) {
	if cond.IsRelational() {
		if err := g.arity(cond, 2, 2); err != nil {
			return nil, err
		}
		l, err := g.value(cond.Children[0])
		if err != nil {
			return nil, err
		}
		r, err := g.value(cond.Children[1])
		if err != nil {
			return nil, err
		}
		op, _ := ir.ParseBinaryOp(cond.Op)
		rel, _ := op.Rel()
		j := ir.NewRelJump(l, rel.Negate(), r, "")
		g.emit(j)
		return j, nil
	}
	v, err := g.value(cond)
	if err != nil {
		return nil, err
	}
	j := ir.NewBoolJump(v, true, "")
	g.emit(j)
	return j, nil
}

// genBreak emits a jump to the bottom of the innermost loop. Outside a loop
// the jump keeps an empty target and the final label check rejects it.
func (g *Generator) genBreak(n *lcast.Node) error {
	if err := g.arity(n, 0, 0); err != nil {
		return err
	}
	j := ir.NewJump("")
	g.emit(j)
	if !g.loops.AddBreak(j) {
		g.log.Debug("break outside loop", "function", g.fn)
	}
	return nil
}

func (g *Generator) genReturn(n *lcast.Node) error {
	if err := g.arity(n, 0, 1); err != nil {
		return err
	}
	if len(n.Children) == 0 {
		g.emit(ir.NewReturn(0, nil))
		return nil
	}
	x := n.Children[0]
	v, err := g.value(x)
	if err != nil {
		return err
	}
	g.emit(ir.NewReturn(widthOf(x.Type), v))
	return nil
}
