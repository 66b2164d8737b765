// Package symtab records declarations per scope and answers lookups into
// scopes that have already been closed.
//
// The global scope stays open for the whole compilation unit. Function and
// block scopes are popped when their node ends; popped scopes are kept, tagged
// with the function that owned them, so later passes can still ask what an
// identifier was declared as.
package symtab

import "github.com/raymyers/littlec/pkg/lcast"

// Symbol is one declaration.
type Symbol struct {
	Name string
	Type lcast.Type
	Size int // array length, 0 for scalars
}

type scope struct {
	owner   string // enclosing function, "" for the global scope
	symbols map[string]Symbol
}

// Table is a stack of open scopes plus the list of popped ones.
type Table struct {
	open   []*scope
	closed []*scope
}

// New returns a table with the global scope open.
func New() *Table {
	return &Table{open: []*scope{{symbols: make(map[string]Symbol)}}}
}

// Push opens a scope owned by function fn.
func (t *Table) Push(fn string) {
	t.open = append(t.open, &scope{owner: fn, symbols: make(map[string]Symbol)})
}

// Pop closes the innermost scope. The global scope is never popped.
func (t *Table) Pop() {
	if len(t.open) <= 1 {
		return
	}
	top := t.open[len(t.open)-1]
	t.open = t.open[:len(t.open)-1]
	t.closed = append(t.closed, top)
}

// Declare adds sym to the innermost open scope, replacing any declaration
// with the same name in that scope.
func (t *Table) Declare(sym Symbol) {
	t.open[len(t.open)-1].symbols[sym.Name] = sym
}

// Lookup searches the open scopes from innermost outward.
func (t *Table) Lookup(name string) (Symbol, bool) {
	for i := len(t.open) - 1; i >= 0; i-- {
		if sym, ok := t.open[i].symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Global looks name up in the global scope only.
func (t *Table) Global(name string) (Symbol, bool) {
	sym, ok := t.open[0].symbols[name]
	return sym, ok
}

// Closed returns every declaration of name found in popped scopes owned by
// function fn, in the order the scopes were popped.
func (t *Table) Closed(fn, name string) []Symbol {
	var out []Symbol
	for _, s := range t.closed {
		if s.owner != fn {
			continue
		}
		if sym, ok := s.symbols[name]; ok {
			out = append(out, sym)
		}
	}
	return out
}

// Depth returns the number of open scopes, counting the global one.
func (t *Table) Depth() int {
	return len(t.open)
}
