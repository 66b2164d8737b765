package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Printer outputs IR in the line-oriented text form used by golden tests
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new IR printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints every line of prog, code first, then deferred data
func (p *Printer) PrintProgram(prog *Program) {
	for _, instr := range prog.All() {
		p.PrintLine(instr)
		fmt.Fprintln(p.w)
	}
}

// PrintLine prints one instruction without a trailing newline
func (p *Printer) PrintLine(instr Instruction) {
	fmt.Fprint(p.w, FormatLine(instr))
}

// FormatLine renders "label: terms", "label:" or "\tterms".
func FormatLine(instr Instruction) string {
	terms := Format(instr)
	lbl := instr.Label()
	switch {
	case lbl == "":
		return "\t" + terms
	case terms == "":
		return string(lbl) + ":"
	default:
		return string(lbl) + ": " + terms
	}
}

// Format renders the operator and operand terms of instr, without its label.
func Format(instr Instruction) string {
	switch i := instr.(type) {
	case *Copy:
		return name(i.Dst) + " = " + name(i.Src)
	case *BinOp:
		return fmt.Sprintf("%s = %s %s %s", name(i.Dst), name(i.Left), i.Op, name(i.Right))
	case *UnOp:
		return fmt.Sprintf("%s = %s %s", name(i.Dst), i.Op, name(i.Src))
	case *AddrOf:
		return name(i.Dst) + " = & " + name(i.Src)
	case *Load:
		return name(i.Dst) + " = * " + name(i.Ptr)
	case *Store:
		return "* " + name(i.Ptr) + " = " + name(i.Src)
	case *IndexRead:
		return fmt.Sprintf("%s = %s ldidx%s %s", name(i.Dst), name(i.Base), i.W.Tag(), name(i.Index))
	case *IndexWrite:
		return fmt.Sprintf("%s = %s stidx%s %s", name(i.Base), name(i.Index), i.W.Tag(), name(i.Src))
	case *Cast:
		return fmt.Sprintf("%s = %s %s", name(i.Dst), i.Kind, name(i.Src))
	case *Jump:
		return "goto " + string(i.To)
	case *BoolJump:
		kw := "if"
		if i.IfFalse {
			kw = "ifFalse"
		}
		return fmt.Sprintf("%s %s goto %s", kw, name(i.Cond), i.To)
	case *RelJump:
		return fmt.Sprintf("if %s %s %s goto %s", name(i.Left), i.Op, name(i.Right), i.To)
	case *Call:
		call := fmt.Sprintf("call %s, %d", name(i.Func), i.NArgs)
		if i.Dst != nil {
			return name(i.Dst) + " = " + call
		}
		return call
	case *PassParam:
		return "param" + i.W.Tag() + " " + name(i.Src)
	case *Return:
		if i.Src == nil {
			return "return"
		}
		return "return" + i.W.Tag() + " " + name(i.Src)
	case *FuncStart:
		return ".fnStart " + strconv.Itoa(i.FrameSize)
	case *FuncEnd:
		return ".fnEnd"
	case *Data:
		return i.Kind.String() + " " + formatValues(i.Values)
	case *Reserve:
		return fmt.Sprintf("%s setsize %d", name(i.Dst), i.Count)
	case *Nop:
		return ""
	}
	return fmt.Sprintf("??? %T", instr)
}

func formatValues(vs []DataValue) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v.Value, 10)
		if v.Repeat > 1 {
			parts[i] += "#" + strconv.Itoa(v.Repeat)
		}
	}
	return strings.Join(parts, ", ")
}

func name(a Address) string {
	if a == nil {
		return "?"
	}
	return a.Name()
}
