package symtab

import "github.com/raymyers/littlec/pkg/lcast"

// Build replays the scope discipline of the front end over a finished tree
// and returns the resulting table with every non-global scope popped.
//
// A function definition opens one scope holding its parameters and the
// top-level declarations of its body. Each nested sequence opens its own
// scope. Functions themselves are declared in the global scope.
func Build(root *lcast.Node) *Table {
	t := New()
	b := &builder{table: t}
	for _, n := range root.Children {
		b.visit(n)
	}
	return t
}

type builder struct {
	table *Table
	fn    string
}

func (b *builder) visit(n *lcast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case lcast.FuncDef:
		b.table.Declare(Symbol{Name: n.Name, Type: n.Type})
		b.fn = n.Name
		b.table.Push(n.Name)
		if params := n.Child(0); params != nil {
			for _, p := range params.Children {
				b.visit(p)
			}
		}
		if body := n.Child(1); body != nil {
			for _, s := range body.Children {
				b.visit(s)
			}
		}
		b.table.Pop()
		b.fn = ""
		return
	case lcast.Seq:
		b.table.Push(b.fn)
		for _, s := range n.Children {
			b.visit(s)
		}
		b.table.Pop()
		return
	case lcast.VarDecl, lcast.ParamDecl:
		for _, c := range n.Children {
			b.visit(c)
		}
		b.table.Declare(Symbol{Name: n.Name, Type: n.Type, Size: n.Size})
		return
	}
	for _, c := range n.Children {
		b.visit(c)
	}
}
