// Package ir defines the linear three-address intermediate representation
// produced from the typed syntax tree and consumed by the basic-block builder.
//
// Operands are symbolic addresses whose serialized names encode kind, width
// and a discriminator, e.g. g4_x, l1@8, t4_3, S0_2. Instructions are one Go
// struct per operation behind the Instruction interface.
package ir

import (
	"fmt"
	"strconv"
)

// Width is an operand size in bytes.
type Width int

const (
	WAggregate Width = 0
	WChar      Width = 1
	WInt       Width = 4
	WFunc      Width = -1 // function symbols
)

// Tag returns the width component of a mangled name.
func (w Width) Tag() string {
	if w == WFunc {
		return "f"
	}
	return strconv.Itoa(int(w))
}

// AddrKind tags the variant of an Address.
type AddrKind int

const (
	KindGlobal AddrKind = iota
	KindModule
	KindLocal
	KindParam
	KindTemp
	KindIntLit
	KindStringLit
	KindIndexed
)

var addrKindNames = []string{"global", "module", "local", "param", "temp", "int", "string", "indexed"}

func (k AddrKind) String() string {
	return addrKindNames[k]
}

// Address is an instruction operand: a storage location or a literal.
type Address interface {
	Kind() AddrKind
	Width() Width
	// Name is the mangled name; distinct addresses never share one.
	Name() string
	implAddress()
}

// Global is a program-wide variable or function.
type Global struct {
	W     Width
	Ident string
}

// Module is a variable or function visible only in its compilation unit.
type Module struct {
	W     Width
	Ident string
}

// Local is a stack slot at a byte offset in the current frame.
type Local struct {
	W      Width
	Offset int
}

// Param is an incoming parameter slot at a byte offset.
type Param struct {
	W      Width
	Offset int
}

// Temp is a compiler temporary.
type Temp struct {
	W  Width
	ID int
}

// IntLit is an integer (or character code) constant.
type IntLit struct {
	Value int64
}

// StringLit is the label of a deferred string data definition.
type StringLit struct {
	ID int
}

// Indexed is base[index].
type Indexed struct {
	W     Width
	Base  Address
	Index Address
}

func (*Global) implAddress()    {}
func (*Module) implAddress()    {}
func (*Local) implAddress()     {}
func (*Param) implAddress()     {}
func (*Temp) implAddress()      {}
func (*IntLit) implAddress()    {}
func (*StringLit) implAddress() {}
func (*Indexed) implAddress()   {}

func (*Global) Kind() AddrKind    { return KindGlobal }
func (*Module) Kind() AddrKind    { return KindModule }
func (*Local) Kind() AddrKind     { return KindLocal }
func (*Param) Kind() AddrKind     { return KindParam }
func (*Temp) Kind() AddrKind      { return KindTemp }
func (*IntLit) Kind() AddrKind    { return KindIntLit }
func (*StringLit) Kind() AddrKind { return KindStringLit }
func (*Indexed) Kind() AddrKind   { return KindIndexed }

func (a *Global) Width() Width    { return a.W }
func (a *Module) Width() Width    { return a.W }
func (a *Local) Width() Width     { return a.W }
func (a *Param) Width() Width     { return a.W }
func (a *Temp) Width() Width      { return a.W }
func (a *IntLit) Width() Width    { return WInt }
func (a *StringLit) Width() Width { return WAggregate }
func (a *Indexed) Width() Width   { return a.W }

func (a *Global) Name() string    { return "g" + a.W.Tag() + "_" + a.Ident }
func (a *Module) Name() string    { return "m" + a.W.Tag() + "_" + a.Ident }
func (a *Local) Name() string     { return fmt.Sprintf("l%s@%d", a.W.Tag(), a.Offset) }
func (a *Param) Name() string     { return fmt.Sprintf("p%s@%d", a.W.Tag(), a.Offset) }
func (a *Temp) Name() string      { return fmt.Sprintf("t%s_%d", a.W.Tag(), a.ID) }
func (a *IntLit) Name() string    { return strconv.FormatInt(a.Value, 10) }
func (a *StringLit) Name() string { return fmt.Sprintf("S0_%d", a.ID) }
func (a *Indexed) Name() string   { return a.Base.Name() + "[" + a.Index.Name() + "]" }

// IsFunc reports whether a names a function.
func IsFunc(a Address) bool {
	return a != nil && a.Width() == WFunc
}
