package ir

// One constructor per instruction kind. Construction never fails; operand
// validity is the caller's responsibility.

func NewCopy(dst, src Address) *Copy {
	return &Copy{Dst: dst, Src: src}
}

func NewBinOp(dst Address, op BinaryOp, l, r Address) *BinOp {
	return &BinOp{Dst: dst, Op: op, Left: l, Right: r}
}

func NewUnOp(dst Address, op UnaryOp, src Address) *UnOp {
	return &UnOp{Dst: dst, Op: op, Src: src}
}

func NewAddrOf(dst, src Address) *AddrOf {
	return &AddrOf{Dst: dst, Src: src}
}

func NewLoad(dst, ptr Address) *Load {
	return &Load{Dst: dst, Ptr: ptr}
}

func NewStore(ptr, src Address) *Store {
	return &Store{Ptr: ptr, Src: src}
}

func NewIndexRead(dst, base, index Address, w Width) *IndexRead {
	return &IndexRead{Dst: dst, Base: base, Index: index, W: w}
}

func NewIndexWrite(base, index, src Address, w Width) *IndexWrite {
	return &IndexWrite{Base: base, Index: index, Src: src, W: w}
}

func NewCast(dst Address, kind CastKind, src Address) *Cast {
	return &Cast{Dst: dst, Kind: kind, Src: src}
}

// NewJump builds a goto; an empty target is filled in later.
func NewJump(to Label) *Jump {
	return &Jump{To: to}
}

func NewBoolJump(cond Address, ifFalse bool, to Label) *BoolJump {
	return &BoolJump{Cond: cond, IfFalse: ifFalse, To: to}
}

func NewRelJump(l Address, op RelOp, r Address, to Label) *RelJump {
	return &RelJump{Left: l, Op: op, Right: r, To: to}
}

// NewCall builds a call; dst is nil when the callee returns void.
func NewCall(dst, fn Address, nargs int) *Call {
	return &Call{Dst: dst, Func: fn, NArgs: nargs}
}

// NewPassParam passes src as a w-byte argument.
func NewPassParam(w Width, src Address) *PassParam {
	return &PassParam{W: w, Src: src}
}

// NewReturn builds a return of a w-byte value; src is nil for a void return.
func NewReturn(w Width, src Address) *Return {
	if src == nil {
		return &Return{}
	}
	return &Return{W: w, Src: src}
}

func NewFuncStart(fn Address) *FuncStart {
	f := &FuncStart{Func: fn}
	f.SetLabel(Label(fn.Name()))
	return f
}

func NewFuncEnd() *FuncEnd {
	return &FuncEnd{}
}

func NewData(lbl Label, kind DataKind, values ...DataValue) *Data {
	d := &Data{Kind: kind, Values: values}
	d.SetLabel(lbl)
	return d
}

func NewReserve(dst Address, count int) *Reserve {
	return &Reserve{Dst: dst, Count: count}
}

func NewNop(lbl Label) *Nop {
	n := &Nop{}
	n.SetLabel(lbl)
	return n
}

// Values wraps plain numbers as single data values.
func Values(vs ...int64) []DataValue {
	out := make([]DataValue, len(vs))
	for i, v := range vs {
		out[i] = DataValue{Value: v}
	}
	return out
}
