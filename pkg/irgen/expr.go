package irgen

import (
	"github.com/raymyers/littlec/pkg/ir"
	"github.com/raymyers/littlec/pkg/lcast"
)

// genExpr emits the code of an expression and returns the address holding
// its value, or nil for a call to a void function.
func (g *Generator) genExpr(n *lcast.Node) (ir.Address, error) {
	if n == nil {
		return nil, g.errorf(n, ErrMalformedAST, "missing expression")
	}
	switch n.Kind {
	case lcast.Ident:
		return g.genIdent(n)
	case lcast.Lit:
		return g.genLit(n)
	case lcast.Binary:
		return g.genBinary(n)
	case lcast.Unary:
		return g.genUnary(n)
	case lcast.Cast:
		return g.genCast(n)
	case lcast.IncDec:
		return g.genIncDec(n)
	case lcast.Assign:
		return g.genAssign(n)
	case lcast.Index:
		return g.genIndexRead(n)
	case lcast.Call:
		return g.genCall(n)
	}
	return nil, g.errorf(n, ErrMalformedAST, "unexpected %s in expression", n.Kind)
}

// value is genExpr for operands, which must produce a value.
func (g *Generator) value(n *lcast.Node) (ir.Address, error) {
	v, err := g.genExpr(n)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, g.errorf(n, ErrMalformedAST, "void value used as operand")
	}
	return v, nil
}

func (g *Generator) lookup(n *lcast.Node) (ir.Address, error) {
	addr, ok := g.names.Lookup(n.Name)
	if !ok {
		return nil, g.errorf(n, ErrMalformedAST, "undeclared identifier %s", n.Name)
	}
	return addr, nil
}

// lookupScalar resolves an identifier that is read or written directly.
func (g *Generator) lookupScalar(n *lcast.Node) (ir.Address, error) {
	if n.Kind != lcast.Ident {
		return nil, g.errorf(n, ErrMalformedAST, "expected identifier")
	}
	addr, err := g.lookup(n)
	if err != nil {
		return nil, err
	}
	if addr.Width() == ir.WAggregate || ir.IsFunc(addr) {
		return nil, g.errorf(n, ErrMalformedAST, "%s is not a scalar variable", n.Name)
	}
	return addr, nil
}

// genIdent returns a scalar's own address. For arrays it returns a temporary
// holding the base pointer; the address-of is emitted once per function, at
// its entry, and reused by every later reference.
func (g *Generator) genIdent(n *lcast.Node) (ir.Address, error) {
	addr, err := g.lookup(n)
	if err != nil {
		return nil, err
	}
	if ir.IsFunc(addr) {
		return nil, g.errorf(n, ErrMalformedAST, "function %s used as a value", n.Name)
	}
	if addr.Width() != ir.WAggregate {
		return addr, nil
	}
	if addr.Kind() == ir.KindParam {
		// Array parameters already hold a base pointer.
		return addr, nil
	}
	if ptr, ok := g.alloc.ArrayPointer(addr.Name()); ok {
		return ptr, nil
	}
	ptr := g.alloc.NewTemp(ir.WInt)
	g.emitAddrOf(ir.NewAddrOf(ptr, addr))
	g.alloc.CacheArrayPointer(addr.Name(), ptr)
	return ptr, nil
}

// emitAddrOf places a base pointer computation right after the function entry
// so it precedes every use regardless of branching. Outside functions it is
// emitted in place.
func (g *Generator) emitAddrOf(instr *ir.AddrOf) {
	if g.start == nil {
		g.emit(instr)
		return
	}
	code := g.prog.Code
	at := len(code)
	for i, c := range code {
		if c == g.start {
			at = i + 1 + g.hoisted
			break
		}
	}
	code = append(code, nil)
	copy(code[at+1:], code[at:])
	code[at] = instr
	g.prog.Code = code
	g.hoisted++
}

func (g *Generator) genLit(n *lcast.Node) (ir.Address, error) {
	switch n.Type {
	case lcast.Int, lcast.Char:
		return g.alloc.NewIntLit(n.Value), nil
	case lcast.CharArray:
		s := g.alloc.NewStringLit()
		codes := stringCodes(n.Text)
		g.prog.Defer(ir.NewData(ir.Label(s.Name()), ir.DataWord, ir.Values(int64(len(codes)))...))
		g.deferBytes(codes)
		return s, nil
	}
	return nil, g.errorf(n, ErrMalformedAST, "literal of type %s", n.Type)
}

func (g *Generator) genBinary(n *lcast.Node) (ir.Address, error) {
	if err := g.arity(n, 2, 2); err != nil {
		return nil, err
	}
	op, ok := ir.ParseBinaryOp(n.Op)
	if !ok {
		return nil, g.errorf(n, ErrMalformedAST, "unknown binary operator %q", n.Op)
	}
	l, err := g.value(n.Children[0])
	if err != nil {
		return nil, err
	}
	r, err := g.value(n.Children[1])
	if err != nil {
		return nil, err
	}
	w := ir.WInt
	if n.Children[0].Type == lcast.Char && n.Children[1].Type == lcast.Char {
		w = ir.WChar
	}
	t := g.alloc.NewTemp(w)
	g.emit(ir.NewBinOp(t, op, l, r))
	return t, nil
}

func (g *Generator) genUnary(n *lcast.Node) (ir.Address, error) {
	if err := g.arity(n, 1, 1); err != nil {
		return nil, err
	}
	x := n.Children[0]
	var op ir.UnaryOp
	switch n.Op {
	case lcast.OpLength:
		if !x.Type.IsArray() {
			return nil, g.errorf(n, ErrMalformedAST, "length of non-array %s", x.Type)
		}
		ptr, err := g.value(x)
		if err != nil {
			return nil, err
		}
		t := g.alloc.NewTemp(ir.WInt)
		g.emit(ir.NewIndexRead(t, ptr, g.alloc.NewIntLit(0), ir.WInt))
		return t, nil
	case lcast.OpNeg:
		op = ir.OpNeg
	case lcast.OpNot:
		op = ir.OpNot
	default:
		return nil, g.errorf(n, ErrMalformedAST, "unknown unary operator %q", n.Op)
	}
	v, err := g.value(x)
	if err != nil {
		return nil, err
	}
	t := g.alloc.NewTemp(widthOf(x.Type))
	g.emit(ir.NewUnOp(t, op, v))
	return t, nil
}

func (g *Generator) genCast(n *lcast.Node) (ir.Address, error) {
	if err := g.arity(n, 1, 1); err != nil {
		return nil, err
	}
	var kind ir.CastKind
	switch n.Type {
	case lcast.Int:
		kind = ir.Widen
	case lcast.Char:
		kind = ir.Narrow
	default:
		return nil, g.errorf(n, ErrMalformedAST, "cast to %s", n.Type)
	}
	v, err := g.value(n.Children[0])
	if err != nil {
		return nil, err
	}
	t := g.alloc.NewTemp(widthOf(n.Type))
	g.emit(ir.NewCast(t, kind, v))
	return t, nil
}

// genIncDec copies the old value to a temporary and writes back the updated
// one. Prefix forms yield the variable, postfix forms the old value.
func (g *Generator) genIncDec(n *lcast.Node) (ir.Address, error) {
	if err := g.arity(n, 1, 1); err != nil {
		return nil, err
	}
	var op ir.BinaryOp
	var prefix bool
	switch n.Op {
	case lcast.PreInc:
		op, prefix = ir.OpAdd, true
	case lcast.PostInc:
		op = ir.OpAdd
	case lcast.PreDec:
		op, prefix = ir.OpSub, true
	case lcast.PostDec:
		op = ir.OpSub
	default:
		return nil, g.errorf(n, ErrMalformedAST, "unknown increment direction %q", n.Op)
	}
	one := g.alloc.NewIntLit(1)

	x := n.Children[0]
	if x.Kind == lcast.Index {
		base, index, w, err := g.genElement(x)
		if err != nil {
			return nil, err
		}
		old := g.alloc.NewTemp(w)
		g.emit(ir.NewIndexRead(old, base, index, w))
		updated := g.alloc.NewTemp(w)
		g.emit(ir.NewBinOp(updated, op, old, one))
		g.emit(ir.NewIndexWrite(base, index, updated, w))
		if prefix {
			return updated, nil
		}
		return old, nil
	}

	addr, err := g.lookupScalar(x)
	if err != nil {
		return nil, err
	}
	old := g.alloc.NewTemp(addr.Width())
	g.emit(ir.NewCopy(old, addr))
	g.emit(ir.NewBinOp(addr, op, old, one))
	if prefix {
		return addr, nil
	}
	return old, nil
}

// genAssign evaluates the target's base and index before the right-hand
// side. The result is the assigned location.
func (g *Generator) genAssign(n *lcast.Node) (ir.Address, error) {
	if err := g.arity(n, 2, 2); err != nil {
		return nil, err
	}
	lhs, rhs := n.Children[0], n.Children[1]
	if lhs.Kind == lcast.Index {
		base, index, w, err := g.genElement(lhs)
		if err != nil {
			return nil, err
		}
		v, err := g.value(rhs)
		if err != nil {
			return nil, err
		}
		g.emit(ir.NewIndexWrite(base, index, v, w))
		return g.alloc.NewIndexed(w, base, index), nil
	}

	addr, err := g.lookupScalar(lhs)
	if err != nil {
		return nil, err
	}
	v, err := g.value(rhs)
	if err != nil {
		return nil, err
	}
	g.emit(ir.NewCopy(addr, v))
	return addr, nil
}

// genElement evaluates the base pointer and index of an indexed node.
func (g *Generator) genElement(n *lcast.Node) (base, index ir.Address, w ir.Width, err error) {
	if err := g.arity(n, 2, 2); err != nil {
		return nil, nil, 0, err
	}
	arr := n.Children[0]
	if !arr.Type.IsArray() {
		return nil, nil, 0, g.errorf(n, ErrMalformedAST, "indexing a %s", arr.Type)
	}
	if base, err = g.value(arr); err != nil {
		return nil, nil, 0, err
	}
	if index, err = g.value(n.Children[1]); err != nil {
		return nil, nil, 0, err
	}
	return base, index, storageWidth(arr.Type.Elem()), nil
}

func (g *Generator) genIndexRead(n *lcast.Node) (ir.Address, error) {
	base, index, w, err := g.genElement(n)
	if err != nil {
		return nil, err
	}
	t := g.alloc.NewTemp(w)
	g.emit(ir.NewIndexRead(t, base, index, w))
	return t, nil
}

// genCall passes each argument right after evaluating it, left to right,
// then emits the call.
func (g *Generator) genCall(n *lcast.Node) (ir.Address, error) {
	fn, err := g.lookup(n)
	if err != nil {
		return nil, err
	}
	if !ir.IsFunc(fn) {
		return nil, g.errorf(n, ErrMalformedAST, "%s is not a function", n.Name)
	}
	for _, arg := range n.Children {
		v, err := g.value(arg)
		if err != nil {
			return nil, err
		}
		g.emit(ir.NewPassParam(widthOf(arg.Type), v))
	}
	var dst ir.Address
	if n.Type != lcast.Void {
		dst = g.alloc.NewTemp(widthOf(n.Type))
	}
	g.emit(ir.NewCall(dst, fn, len(n.Children)))
	return dst, nil
}
