package lcast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer outputs a syntax tree as an indented S-expression
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintTree prints n and its descendants, one node per line
func (p *Printer) PrintTree(n *Node) {
	p.writeIndent()
	fmt.Fprintf(p.w, "(%s", n.Kind)
	if n.Type != Void {
		fmt.Fprintf(p.w, " :%s", n.Type)
	}
	if n.Static {
		fmt.Fprint(p.w, " static")
	}
	p.printAttrs(n)
	if len(n.Children) == 0 {
		fmt.Fprintln(p.w, ")")
		return
	}
	fmt.Fprintln(p.w)
	p.indent++
	for _, c := range n.Children {
		p.PrintTree(c)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, ")")
}

func (p *Printer) printAttrs(n *Node) {
	switch n.Kind {
	case Lit:
		switch n.Type {
		case CharArray:
			fmt.Fprintf(p.w, " %s", strconv.Quote(n.Text))
		case Char:
			fmt.Fprintf(p.w, " %s", strconv.QuoteRune(rune(n.Value)))
		default:
			fmt.Fprintf(p.w, " %d", n.Value)
		}
	case Binary, Unary, IncDec:
		fmt.Fprintf(p.w, " %s", n.Op)
	case VarDecl:
		fmt.Fprintf(p.w, " %s", n.Name)
		if n.Type.IsArray() {
			fmt.Fprintf(p.w, "[%d]", n.Size)
		}
	case Ident, FuncDef, ParamDecl, Call:
		fmt.Fprintf(p.w, " %s", n.Name)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}
