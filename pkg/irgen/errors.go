package irgen

import (
	"errors"
	"fmt"

	"github.com/raymyers/littlec/pkg/ir"
	"github.com/raymyers/littlec/pkg/lcast"
)

var (
	// ErrMalformedAST reports a tree the generator has no rule for: an
	// unexpected node kind, a missing child or an undeclared name.
	ErrMalformedAST = errors.New("malformed syntax tree")
	// ErrUnresolvedLabel reports a jump left without a target, such as a
	// break outside any loop.
	ErrUnresolvedLabel = ir.ErrUnresolvedLabel
	// ErrUnknownIdentifier reports an array whose declaration the symbol
	// table could not find when sizing it.
	ErrUnknownIdentifier = errors.New("declaration not found in symbol table")
	// ErrAmbiguousIdentifier reports an array with several candidate
	// declarations in the closed scopes of its function.
	ErrAmbiguousIdentifier = errors.New("ambiguous declaration in symbol table")
)

// NodeError ties a generation error to the node that caused it.
type NodeError struct {
	Node *lcast.Node
	Func string // enclosing function, "" at global scope
	Err  error
	Msg  string
}

func (e *NodeError) Error() string {
	where := "global scope"
	if e.Func != "" {
		where = "function " + e.Func
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s: %v", where, e.Node, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v: %s", where, e.Node, e.Err, e.Msg)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
