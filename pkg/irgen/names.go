// Address and name allocation for IR generation.
// Hands out mangled addresses, tracks the running frame and parameter
// offsets of the current function, and remembers which temporary holds each
// array's base pointer.

package irgen

import (
	"strconv"

	"github.com/raymyers/littlec/pkg/ir"
)

// Allocator creates addresses and labels for one compilation unit.
// Counters are per instance; two allocators never interfere.
type Allocator struct {
	nextTemp   int // next temporary ID
	nextString int // next string literal ID
	nextLabel  int // next line label number
	localSize  int // running local frame size of the current function
	paramSize  int // running parameter area size of the current function
	arrayPtrs  map[string]ir.Address
}

// NewAllocator creates a new address allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		nextTemp:   1, // IDs start at 1
		nextString: 1,
		nextLabel:  1,
		arrayPtrs:  make(map[string]ir.Address),
	}
}

func (a *Allocator) NewGlobal(w ir.Width, name string) *ir.Global {
	return &ir.Global{W: w, Ident: name}
}

func (a *Allocator) NewModule(w ir.Width, name string) *ir.Module {
	return &ir.Module{W: w, Ident: name}
}

// NewLocal returns the local at offset, which the caller obtained from
// ReserveLocal.
func (a *Allocator) NewLocal(w ir.Width, offset int) *ir.Local {
	return &ir.Local{W: w, Offset: offset}
}

// NewParam returns the parameter at offset, which the caller obtained from
// ReserveParam.
func (a *Allocator) NewParam(w ir.Width, offset int) *ir.Param {
	return &ir.Param{W: w, Offset: offset}
}

// NewTemp allocates a fresh temporary.
func (a *Allocator) NewTemp(w ir.Width) *ir.Temp {
	t := &ir.Temp{W: w, ID: a.nextTemp}
	a.nextTemp++
	return t
}

func (a *Allocator) NewIntLit(v int64) *ir.IntLit {
	return &ir.IntLit{Value: v}
}

// NewStringLit allocates a fresh string literal label.
func (a *Allocator) NewStringLit() *ir.StringLit {
	s := &ir.StringLit{ID: a.nextString}
	a.nextString++
	return s
}

func (a *Allocator) NewIndexed(w ir.Width, base, index ir.Address) *ir.Indexed {
	return &ir.Indexed{W: w, Base: base, Index: index}
}

// NewLabel allocates a fresh line label.
func (a *Allocator) NewLabel() ir.Label {
	l := ir.Label("L" + strconv.Itoa(a.nextLabel))
	a.nextLabel++
	return l
}

// ReserveLocal pads the frame to a multiple of align, reserves size bytes and
// returns the offset of the reserved slot.
func (a *Allocator) ReserveLocal(align, size int) int {
	off := a.localSize
	if align > 1 && off%align != 0 {
		off += align - off%align
	}
	a.localSize = off + size
	return off
}

// ReserveParam reserves size bytes of parameter area and returns the offset
// of the reserved slot. Parameters are packed without padding.
func (a *Allocator) ReserveParam(size int) int {
	off := a.paramSize
	a.paramSize += size
	return off
}

// FrameSize returns the local frame size reserved so far.
func (a *Allocator) FrameSize() int {
	return a.localSize
}

// ResetFrame clears the offset counters and the array pointer cache when a
// function body starts or ends.
func (a *Allocator) ResetFrame() {
	a.localSize = 0
	a.paramSize = 0
	a.arrayPtrs = make(map[string]ir.Address)
}

// ArrayPointer returns the temporary caching the base pointer of the array
// whose generated name is array.
func (a *Allocator) ArrayPointer(array string) (ir.Address, bool) {
	p, ok := a.arrayPtrs[array]
	return p, ok
}

// CacheArrayPointer remembers ptr as the base pointer of array.
func (a *Allocator) CacheArrayPointer(array string, ptr ir.Address) {
	a.arrayPtrs[array] = ptr
}

// NameTable maps source identifiers to the address of the declaration
// currently in scope. Scopes nest; popping one evicts its names and brings
// back whatever they shadowed. The outermost scope holds globals and
// functions and is never popped.
type NameTable struct {
	bindings map[string][]ir.Address
	scopes   [][]string // identifiers bound in each open scope
}

// NewNameTable creates a name table with the global scope open.
func NewNameTable() *NameTable {
	return &NameTable{
		bindings: make(map[string][]ir.Address),
		scopes:   [][]string{nil},
	}
}

// Bind declares ident in the innermost scope.
func (t *NameTable) Bind(ident string, addr ir.Address) {
	t.bindings[ident] = append(t.bindings[ident], addr)
	top := len(t.scopes) - 1
	t.scopes[top] = append(t.scopes[top], ident)
}

// Lookup returns the innermost binding of ident.
func (t *NameTable) Lookup(ident string) (ir.Address, bool) {
	b := t.bindings[ident]
	if len(b) == 0 {
		return nil, false
	}
	return b[len(b)-1], true
}

// PushScope opens a nested scope.
func (t *NameTable) PushScope() {
	t.scopes = append(t.scopes, nil)
}

// PopScope evicts every identifier bound in the innermost scope.
func (t *NameTable) PopScope() {
	if len(t.scopes) <= 1 {
		return
	}
	top := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]
	for i := len(top) - 1; i >= 0; i-- {
		ident := top[i]
		b := t.bindings[ident]
		if len(b) == 1 {
			delete(t.bindings, ident)
		} else {
			t.bindings[ident] = b[:len(b)-1]
		}
	}
}

// Depth returns the number of open scopes, counting the global one.
func (t *NameTable) Depth() int {
	return len(t.scopes)
}
