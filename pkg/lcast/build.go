package lcast

// Constructors for hand-built trees.

func NewSeq(children ...*Node) *Node {
	return &Node{Kind: Seq, Children: children}
}

func NewIf(cond, then, els *Node) *Node {
	n := &Node{Kind: If, Children: []*Node{cond, then}}
	if els != nil {
		n.Children = append(n.Children, els)
	}
	return n
}

func NewWhile(cond, body *Node) *Node {
	return &Node{Kind: While, Children: []*Node{cond, body}}
}

func NewAssign(lhs, rhs *Node) *Node {
	return &Node{Kind: Assign, Type: lhs.Type, Children: []*Node{lhs, rhs}}
}

func NewIndex(arr, idx *Node) *Node {
	return &Node{Kind: Index, Type: arr.Type.Elem(), Children: []*Node{arr, idx}}
}

// NewBinary builds a binary operation. Comparisons and logical operators
// yield int; arithmetic yields char only when both operands are char.
func NewBinary(op string, l, r *Node) *Node {
	t := Int
	switch op {
	case "+", "-", "*", "/", "%":
		if l.Type == Char && r.Type == Char {
			t = Char
		}
	}
	return &Node{Kind: Binary, Type: t, Op: op, Children: []*Node{l, r}}
}

func NewUnary(op string, x *Node) *Node {
	t := x.Type
	if op == OpLength || op == OpNot {
		t = Int
	}
	return &Node{Kind: Unary, Type: t, Op: op, Children: []*Node{x}}
}

func NewCast(t Type, x *Node) *Node {
	return &Node{Kind: Cast, Type: t, Children: []*Node{x}}
}

func NewIncDec(dir string, x *Node) *Node {
	return &Node{Kind: IncDec, Type: x.Type, Op: dir, Children: []*Node{x}}
}

func NewBreak() *Node {
	return &Node{Kind: Break}
}

// NewReturn builds a return statement; x may be nil.
func NewReturn(x *Node) *Node {
	if x == nil {
		return &Node{Kind: Return}
	}
	return &Node{Kind: Return, Type: x.Type, Children: []*Node{x}}
}

func NewIdent(name string, t Type) *Node {
	return &Node{Kind: Ident, Type: t, Name: name}
}

func NewIntLit(v int64) *Node {
	return &Node{Kind: Lit, Type: Int, Value: v}
}

func NewCharLit(c byte) *Node {
	return &Node{Kind: Lit, Type: Char, Value: int64(c)}
}

func NewStringLit(s string) *Node {
	return &Node{Kind: Lit, Type: CharArray, Text: s}
}

// NewFuncDef builds a function definition with a parameter list and body.
func NewFuncDef(name string, ret Type, params []*Node, body ...*Node) *Node {
	return &Node{
		Kind:     FuncDef,
		Type:     ret,
		Name:     name,
		Children: []*Node{NewSeq(params...), NewSeq(body...)},
	}
}

func NewParam(name string, t Type) *Node {
	return &Node{Kind: ParamDecl, Type: t, Name: name}
}

// NewVar declares a scalar variable; init may be nil.
func NewVar(name string, t Type, init *Node) *Node {
	n := &Node{Kind: VarDecl, Type: t, Name: name}
	if init != nil {
		n.Children = []*Node{init}
	}
	return n
}

// NewArray declares an array of size elements; init may be nil.
func NewArray(name string, t Type, size int, init *Node) *Node {
	n := NewVar(name, t, init)
	n.Size = size
	return n
}

func NewCall(name string, ret Type, args ...*Node) *Node {
	return &Node{Kind: Call, Type: ret, Name: name, Children: args}
}
