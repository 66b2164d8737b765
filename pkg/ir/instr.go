package ir

// Label names an instruction so jumps and calls can refer to it.
type Label string

// --- Operators ---

// BinaryOp is the operator of a BinOp instruction.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binaryOpNames = []string{"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=", "&&", "||"}

func (op BinaryOp) String() string {
	return binaryOpNames[op]
}

// ParseBinaryOp maps a source operator to a BinaryOp.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for i, name := range binaryOpNames {
		if name == s {
			return BinaryOp(i), true
		}
	}
	return OpAdd, false
}

// Rel returns the relational operator of a comparison.
func (op BinaryOp) Rel() (RelOp, bool) {
	if op < OpLt || op > OpNe {
		return 0, false
	}
	return RelOp(op - OpLt), true
}

// RelOp is the comparison of a RelJump.
type RelOp int

const (
	RelLt RelOp = iota
	RelLe
	RelGt
	RelGe
	RelEq
	RelNe
)

var relOpNames = []string{"<", "<=", ">", ">=", "==", "!="}

func (op RelOp) String() string {
	return relOpNames[op]
}

// Negate returns the comparison that holds exactly when op does not.
func (op RelOp) Negate() RelOp {
	switch op {
	case RelLt:
		return RelGe
	case RelLe:
		return RelGt
	case RelGt:
		return RelLe
	case RelGe:
		return RelLt
	case RelEq:
		return RelNe
	case RelNe:
		return RelEq
	}
	return op
}

// UnaryOp is the operator of a UnOp instruction.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "!"
	}
	return "-"
}

// CastKind distinguishes widening from narrowing conversions.
type CastKind int

const (
	Widen CastKind = iota
	Narrow
)

func (c CastKind) String() string {
	if c == Narrow {
		return "narrow"
	}
	return "widen"
}

// DataKind selects the element size of a data directive.
type DataKind int

const (
	DataWord DataKind = iota // .dw
	DataByte                 // .db
)

func (k DataKind) String() string {
	if k == DataByte {
		return ".db"
	}
	return ".dw"
}

// DataValue is one directive operand, Repeat copies of Value.
type DataValue struct {
	Value  int64
	Repeat int
}

// --- Instructions ---

// Instruction is one line of the linear program.
type Instruction interface {
	Label() Label
	SetLabel(Label)
	implInstruction()
}

// Branch is an instruction that transfers control to a label.
type Branch interface {
	Instruction
	Target() Label
	SetTarget(Label)
	// Conditional reports whether control may also fall through.
	Conditional() bool
}

// Labeled carries the optional label shared by every instruction.
type Labeled struct {
	Lbl Label
}

func (l *Labeled) Label() Label       { return l.Lbl }
func (l *Labeled) SetLabel(lbl Label) { l.Lbl = lbl }

// Copy: Dst = Src
type Copy struct {
	Labeled
	Dst Address
	Src Address
}

// BinOp: Dst = Left Op Right
type BinOp struct {
	Labeled
	Dst   Address
	Op    BinaryOp
	Left  Address
	Right Address
}

// UnOp: Dst = Op Src
type UnOp struct {
	Labeled
	Dst Address
	Op  UnaryOp
	Src Address
}

// AddrOf: Dst = & Src
type AddrOf struct {
	Labeled
	Dst Address
	Src Address
}

// Load: Dst = * Ptr
type Load struct {
	Labeled
	Dst Address
	Ptr Address
}

// Store: * Ptr = Src
type Store struct {
	Labeled
	Ptr Address
	Src Address
}

// IndexRead loads element Index of the array whose base pointer is Base.
type IndexRead struct {
	Labeled
	Dst   Address
	Base  Address
	Index Address
	W     Width
}

// IndexWrite stores Src into element Index of the array at Base.
type IndexWrite struct {
	Labeled
	Base  Address
	Index Address
	Src   Address
	W     Width
}

// Cast converts Src to the width of Dst.
type Cast struct {
	Labeled
	Dst  Address
	Kind CastKind
	Src  Address
}

// Jump is an unconditional goto.
type Jump struct {
	Labeled
	To Label
}

// BoolJump branches on a materialized 0/1 value; IfFalse inverts the test.
type BoolJump struct {
	Labeled
	Cond    Address
	IfFalse bool
	To      Label
}

// RelJump branches when Left Op Right holds.
type RelJump struct {
	Labeled
	Left  Address
	Op    RelOp
	Right Address
	To    Label
}

// Call invokes Func with the NArgs most recent PassParam values. Dst is nil for
// void callees.
type Call struct {
	Labeled
	Dst   Address
	Func  Address
	NArgs int
}

// PassParam passes one actual argument.
type PassParam struct {
	Labeled
	W   Width
	Src Address
}

// Return leaves the function; Src is nil for void returns.
type Return struct {
	Labeled
	W   Width
	Src Address
}

// FuncStart opens a function body. It is labeled with the function's name.
type FuncStart struct {
	Labeled
	Func      Address
	FrameSize int
}

// FuncEnd closes a function body.
type FuncEnd struct {
	Labeled
}

// Data defines initialized storage.
type Data struct {
	Labeled
	Kind   DataKind
	Values []DataValue
}

// Reserve sets aside Count elements for a local array.
type Reserve struct {
	Labeled
	Dst   Address
	Count int
}

// Nop is an empty line that only carries a label.
type Nop struct {
	Labeled
}

func (*Copy) implInstruction()       {}
func (*BinOp) implInstruction()      {}
func (*UnOp) implInstruction()       {}
func (*AddrOf) implInstruction()     {}
func (*Load) implInstruction()       {}
func (*Store) implInstruction()      {}
func (*IndexRead) implInstruction()  {}
func (*IndexWrite) implInstruction() {}
func (*Cast) implInstruction()       {}
func (*Jump) implInstruction()       {}
func (*BoolJump) implInstruction()   {}
func (*RelJump) implInstruction()    {}
func (*Call) implInstruction()       {}
func (*PassParam) implInstruction()  {}
func (*Return) implInstruction()     {}
func (*FuncStart) implInstruction()  {}
func (*FuncEnd) implInstruction()    {}
func (*Data) implInstruction()       {}
func (*Reserve) implInstruction()    {}
func (*Nop) implInstruction()        {}

func (j *Jump) Target() Label         { return j.To }
func (j *Jump) SetTarget(l Label)     { j.To = l }
func (j *Jump) Conditional() bool     { return false }
func (j *BoolJump) Target() Label     { return j.To }
func (j *BoolJump) SetTarget(l Label) { j.To = l }
func (j *BoolJump) Conditional() bool { return true }
func (j *RelJump) Target() Label      { return j.To }
func (j *RelJump) SetTarget(l Label)  { j.To = l }
func (j *RelJump) Conditional() bool  { return true }

// SetFrameSize records the local frame size once the body is complete.
func (f *FuncStart) SetFrameSize(n int) { f.FrameSize = n }
