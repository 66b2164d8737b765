// Package irgen lowers the typed syntax tree to linear three-address IR.
//
// Generation is a single recursive walk. Each structured construct is handled
// by its own function, which emits its code and patches its pending jumps
// before returning; enclosing loops are kept on an explicit stack so break
// statements bind to the innermost one. When the walk is complete, every jump
// is checked against the labels in the program.
package irgen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/raymyers/littlec/pkg/ir"
	"github.com/raymyers/littlec/pkg/lcast"
	"github.com/raymyers/littlec/pkg/logger"
	"github.com/raymyers/littlec/pkg/symtab"
)

// DefaultBuiltins are the runtime functions callable without a definition.
var DefaultBuiltins = []string{"prints", "printd", "read"}

// dataChunk is the number of values per data directive.
const dataChunk = 8

// Scopes answers the symbol table questions the generator cannot answer from
// the tree alone.
type Scopes interface {
	// Global returns the declaration of name in the global scope.
	Global(name string) (symtab.Symbol, bool)
	// Closed returns the declarations of name in the already closed scopes
	// of function fn.
	Closed(fn, name string) []symtab.Symbol
}

// Options configures a Generator.
type Options struct {
	// Builtins are registered as global functions before generation.
	// Nil means DefaultBuiltins.
	Builtins []string
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Generator holds the state of one generation run. It is not safe for
// concurrent use and generates a single program.
type Generator struct {
	scopes   Scopes
	alloc    *Allocator
	names    *NameTable
	loops    *LoopStack
	prog     *ir.Program
	log      *slog.Logger
	builtins []string

	// current function, reset at its end
	fn      string
	start   *ir.FuncStart
	hoisted int // address-of instructions placed after start
	used    bool
}

// New creates a generator that sizes arrays through scopes.
func New(scopes Scopes, opts Options) *Generator {
	builtins := opts.Builtins
	if builtins == nil {
		builtins = DefaultBuiltins
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Generator{
		scopes:   scopes,
		alloc:    NewAllocator(),
		names:    NewNameTable(),
		loops:    NewLoopStack(),
		prog:     &ir.Program{},
		log:      log,
		builtins: builtins,
	}
}

// Generate lowers a whole tree with a fresh generator.
func Generate(root *lcast.Node, scopes Scopes, opts Options) (*ir.Program, error) {
	return New(scopes, opts).Generate(root)
}

// Generate lowers root, which must be a sequence node, and returns the
// finished program. On error no program is returned.
func (g *Generator) Generate(root *lcast.Node) (*ir.Program, error) {
	if g.used {
		return nil, errors.New("irgen: generator already used")
	}
	g.used = true
	if root == nil || root.Kind != lcast.Seq {
		return nil, g.errorf(root, ErrMalformedAST, "root must be a sequence")
	}

	for _, name := range g.builtins {
		g.names.Bind(name, g.alloc.NewGlobal(ir.WFunc, name))
	}
	// Functions are callable before their definition.
	for _, n := range root.Children {
		if n != nil && n.Kind == lcast.FuncDef {
			g.names.Bind(n.Name, g.funcAddr(n))
		}
	}
	for _, n := range root.Children {
		if err := g.genStmt(n); err != nil {
			return nil, err
		}
	}
	if err := ir.CheckLabels(g.prog); err != nil {
		return nil, err
	}
	g.log.Debug("generated program", "code", len(g.prog.Code), "data", len(g.prog.Data))
	return g.prog, nil
}

func (g *Generator) emit(instr ir.Instruction) {
	g.prog.Emit(instr)
}

func (g *Generator) errorf(n *lcast.Node, err error, format string, args ...any) error {
	return &NodeError{Node: n, Func: g.fn, Err: err, Msg: fmt.Sprintf(format, args...)}
}

func (g *Generator) arity(n *lcast.Node, lo, hi int) error {
	if len(n.Children) < lo || len(n.Children) > hi {
		if lo == hi {
			return g.errorf(n, ErrMalformedAST, "has %d children, want %d", len(n.Children), lo)
		}
		return g.errorf(n, ErrMalformedAST, "has %d children, want %d to %d", len(n.Children), lo, hi)
	}
	return nil
}

// widthOf returns the operand width of a value of type t. Arrays are passed
// and returned as base pointers.
func widthOf(t lcast.Type) ir.Width {
	switch t {
	case lcast.Int, lcast.CharArray, lcast.IntArray:
		return ir.WInt
	case lcast.Char:
		return ir.WChar
	}
	return ir.WAggregate
}

// storageWidth returns the width tag of a variable of type t.
func storageWidth(t lcast.Type) ir.Width {
	return ir.Width(t.Width())
}

// --- Functions ---

func (g *Generator) funcAddr(n *lcast.Node) ir.Address {
	if n.Static {
		return g.alloc.NewModule(ir.WFunc, n.Name)
	}
	return g.alloc.NewGlobal(ir.WFunc, n.Name)
}

func (g *Generator) genFunc(n *lcast.Node) error {
	if g.fn != "" {
		return g.errorf(n, ErrMalformedAST, "nested function definition")
	}
	if err := g.arity(n, 2, 2); err != nil {
		return err
	}
	params, body := n.Children[0], n.Children[1]
	if params.Kind != lcast.Seq || body.Kind != lcast.Seq {
		return g.errorf(n, ErrMalformedAST, "parameters and body must be sequences")
	}

	fnAddr := g.funcAddr(n)
	g.names.Bind(n.Name, fnAddr)

	g.alloc.ResetFrame()
	g.fn = n.Name
	g.start = ir.NewFuncStart(fnAddr)
	g.hoisted = 0
	g.emit(g.start)
	g.names.PushScope()

	for _, p := range params.Children {
		if err := g.genParam(p); err != nil {
			return err
		}
	}
	for _, s := range body.Children {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	g.emit(ir.NewFuncEnd())
	g.start.SetFrameSize(g.alloc.FrameSize())
	g.log.Debug("generated function", "name", n.Name, "frame", g.alloc.FrameSize())

	g.alloc.ResetFrame()
	g.names.PopScope()
	g.fn = ""
	g.start = nil
	return nil
}

func (g *Generator) genParam(n *lcast.Node) error {
	if n.Kind != lcast.ParamDecl {
		return g.errorf(n, ErrMalformedAST, "expected parameter declaration")
	}
	var w ir.Width
	size := 4
	switch n.Type {
	case lcast.Int:
		w = ir.WInt
	case lcast.Char:
		w, size = ir.WChar, 1
	case lcast.CharArray, lcast.IntArray:
		w = ir.WAggregate // holds the caller's base pointer
	default:
		return g.errorf(n, ErrMalformedAST, "parameter of type %s", n.Type)
	}
	off := g.alloc.ReserveParam(size)
	g.names.Bind(n.Name, g.alloc.NewParam(w, off))
	return nil
}

// --- Declarations ---

func (g *Generator) genVarDecl(n *lcast.Node) error {
	if err := g.arity(n, 0, 1); err != nil {
		return err
	}
	if n.Type == lcast.Void {
		return g.errorf(n, ErrMalformedAST, "variable of type void")
	}
	if g.fn == "" {
		return g.genGlobal(n)
	}
	return g.genLocal(n)
}

func (g *Generator) genLocal(n *lcast.Node) error {
	if n.Type.IsArray() {
		if len(n.Children) > 0 {
			return g.errorf(n, ErrMalformedAST, "local array initializers are not supported")
		}
		sym, err := g.closedSymbol(n)
		if err != nil {
			return err
		}
		bytes := sym.Size + 4 // length word
		if n.Type == lcast.IntArray {
			bytes = sym.Size*4 + 4
		}
		off := g.alloc.ReserveLocal(4, bytes)
		addr := g.alloc.NewLocal(ir.WAggregate, off)
		g.names.Bind(n.Name, addr)
		g.emit(ir.NewReserve(addr, sym.Size))
		return nil
	}

	var init ir.Address = g.alloc.NewIntLit(0)
	if len(n.Children) == 1 {
		v, err := g.value(n.Children[0])
		if err != nil {
			return err
		}
		init = v
	}
	w := storageWidth(n.Type)
	off := g.alloc.ReserveLocal(int(w), int(w))
	addr := g.alloc.NewLocal(w, off)
	g.names.Bind(n.Name, addr)
	g.emit(ir.NewCopy(addr, init))
	return nil
}

// closedSymbol asks the symbol table for the declaration of a local array.
func (g *Generator) closedSymbol(n *lcast.Node) (symtab.Symbol, error) {
	syms := g.scopes.Closed(g.fn, n.Name)
	switch len(syms) {
	case 0:
		return symtab.Symbol{}, g.errorf(n, ErrUnknownIdentifier, "no closed scope declares %s", n.Name)
	case 1:
		return syms[0], nil
	}
	return symtab.Symbol{}, g.errorf(n, ErrAmbiguousIdentifier, "%d closed scopes declare %s", len(syms), n.Name)
}

func (g *Generator) genGlobal(n *lcast.Node) error {
	w := storageWidth(n.Type)
	var addr ir.Address
	if n.Static {
		addr = g.alloc.NewModule(w, n.Name)
	} else {
		addr = g.alloc.NewGlobal(w, n.Name)
	}
	g.names.Bind(n.Name, addr)
	lbl := ir.Label(addr.Name())

	switch n.Type {
	case lcast.Int:
		g.prog.Defer(ir.NewData(lbl, ir.DataWord, ir.Values(constInit(n))...))
		return nil
	case lcast.Char:
		g.prog.Defer(ir.NewData(lbl, ir.DataByte, ir.Values(constInit(n))...))
		return nil
	}

	sym, ok := g.scopes.Global(n.Name)
	if !ok {
		return g.errorf(n, ErrUnknownIdentifier, "global scope does not declare %s", n.Name)
	}
	size := sym.Size
	if n.Type == lcast.IntArray {
		g.prog.Defer(ir.NewData(lbl, ir.DataWord, ir.Values(int64(size))...))
		if size > 0 {
			g.prog.Defer(ir.NewData("", ir.DataWord, ir.DataValue{Value: 0, Repeat: size}))
		}
		return nil
	}

	init := n.Child(0)
	if init == nil || !init.IsStringLit() {
		g.prog.Defer(ir.NewData(lbl, ir.DataWord, ir.Values(int64(size))...))
		if size > 0 {
			g.prog.Defer(ir.NewData("", ir.DataByte, ir.DataValue{Value: 0, Repeat: size}))
		}
		return nil
	}
	codes := stringCodes(init.Text)
	if size < len(codes) {
		size = len(codes)
	}
	for len(codes) < size {
		codes = append(codes, 0)
	}
	g.prog.Defer(ir.NewData(lbl, ir.DataWord, ir.Values(int64(size))...))
	g.deferBytes(codes)
	return nil
}

// constInit returns the compile-time value of a scalar global's initializer,
// or 0 when it has none or it is not a literal.
func constInit(n *lcast.Node) int64 {
	init := n.Child(0)
	if init == nil {
		return 0
	}
	if init.Kind == lcast.Lit && !init.IsStringLit() {
		return init.Value
	}
	if init.Kind == lcast.Unary && init.Op == lcast.OpNeg {
		if c := init.Child(0); c != nil && c.Kind == lcast.Lit && !c.IsStringLit() {
			return -c.Value
		}
	}
	return 0
}

// stringCodes returns the character codes of s followed by a terminating 0.
func stringCodes(s string) []int64 {
	codes := make([]int64, 0, len(s)+1)
	for i := 0; i < len(s); i++ {
		codes = append(codes, int64(s[i]))
	}
	return append(codes, 0)
}

// deferBytes appends unlabeled .db directives holding codes.
func (g *Generator) deferBytes(codes []int64) {
	for i := 0; i < len(codes); i += dataChunk {
		end := min(i+dataChunk, len(codes))
		g.prog.Defer(ir.NewData("", ir.DataByte, ir.Values(codes[i:end]...)...))
	}
}
