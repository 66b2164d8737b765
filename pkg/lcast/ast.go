// Package lcast defines the typed abstract syntax tree handed to the middle
// tier by the front end. Every node carries a kind tag, a result type tag and
// an ordered child list whose arity is fixed per kind.
package lcast

import "fmt"

// Type is the result type tag attached to every node.
type Type int

const (
	Void Type = iota
	Int
	Char
	CharArray
	IntArray
)

var typeNames = []string{"void", "int", "char", "char[]", "int[]"}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a type name as printed by String back to a Type.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return Void, false
}

// Width returns the operand size in bytes: 4 for int, 1 for char and 0 for
// arrays and void.
func (t Type) Width() int {
	switch t {
	case Int:
		return 4
	case Char:
		return 1
	}
	return 0
}

// IsArray reports whether t is one of the array types.
func (t Type) IsArray() bool {
	return t == CharArray || t == IntArray
}

// Elem returns the element type of an array type, or t itself otherwise.
func (t Type) Elem() Type {
	switch t {
	case CharArray:
		return Char
	case IntArray:
		return Int
	}
	return t
}

// Kind is the structural tag of a node.
type Kind int

const (
	Seq Kind = iota
	If
	While
	Assign
	Index
	Binary
	Unary
	Cast
	IncDec
	Break
	Return
	Ident
	Lit
	FuncDef
	ParamDecl
	VarDecl
	Call
)

var kindNames = []string{
	"seq", "if", "while", "assign", "index", "binop", "unop", "cast",
	"incdec", "break", "return", "id", "lit", "fndef", "pdecl", "vdecl", "call",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name as printed by String back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return Seq, false
}

// Increment/decrement directions stored in Node.Op.
const (
	PreInc  = "pre++"
	PostInc = "post++"
	PreDec  = "pre--"
	PostDec = "post--"
)

// Unary operator characters stored in Node.Op.
const (
	OpNeg    = "-"
	OpNot    = "!"
	OpLength = "#"
)

// Node is one syntax tree node. Which attribute fields are meaningful
// depends on Kind; unused ones stay zero.
type Node struct {
	Kind     Kind
	Type     Type
	Op       string // binary operator, unary operator, inc/dec direction
	Name     string // identifier, function or declared name
	Value    int64  // int and char literal value
	Text     string // string literal contents
	Size     int    // declared array length
	Static   bool   // module-local declaration
	Children []*Node
}

// Child returns the i-th child, or nil when there is none.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsStringLit reports whether n is a string literal.
func (n *Node) IsStringLit() bool {
	return n.Kind == Lit && n.Type == CharArray
}

// IsRelational reports whether n is a binary comparison.
func (n *Node) IsRelational() bool {
	if n.Kind != Binary {
		return false
	}
	switch n.Op {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	}
	return false
}

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s %q", n.Kind, n.Name)
	}
	if n.Op != "" {
		return fmt.Sprintf("%s %q", n.Kind, n.Op)
	}
	return n.Kind.String()
}
