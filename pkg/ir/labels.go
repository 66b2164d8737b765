package ir

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnresolvedLabel reports a jump whose target no instruction carries.
	ErrUnresolvedLabel = errors.New("unresolved label")
	// ErrDuplicateLabel reports a label carried by more than one instruction.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// DefinedLabels maps every label in prog to the index of its line in All().
func DefinedLabels(prog *Program) map[Label]int {
	defined := make(map[Label]int)
	for i, instr := range prog.All() {
		if lbl := instr.Label(); lbl != "" {
			if _, ok := defined[lbl]; !ok {
				defined[lbl] = i
			}
		}
	}
	return defined
}

// UsedLabels returns all labels that are targets of branches
func UsedLabels(prog *Program) map[Label]bool {
	used := make(map[Label]bool)
	for _, instr := range prog.All() {
		if br, ok := instr.(Branch); ok && br.Target() != "" {
			used[br.Target()] = true
		}
	}
	return used
}

// CheckLabels verifies that labels are unique and that every branch targets
// exactly one instruction. It reports the first problem found.
func CheckLabels(prog *Program) error {
	seen := make(map[Label]bool)
	for _, instr := range prog.All() {
		lbl := instr.Label()
		if lbl == "" {
			continue
		}
		if seen[lbl] {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, lbl)
		}
		seen[lbl] = true
	}
	for i, instr := range prog.All() {
		br, ok := instr.(Branch)
		if !ok {
			continue
		}
		if br.Target() == "" {
			return fmt.Errorf("%w: line %d %q has no target", ErrUnresolvedLabel, i+1, strings.TrimSpace(FormatLine(instr)))
		}
		if !seen[br.Target()] {
			return fmt.Errorf("%w: line %d jumps to %s", ErrUnresolvedLabel, i+1, br.Target())
		}
	}
	return nil
}

// IsLineLabel reports whether lbl is a generated line label of the form L<n>.
func IsLineLabel(lbl Label) bool {
	s := string(lbl)
	if len(s) < 2 || s[0] != 'L' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// RenumberLabels returns a copy of prog whose line labels are L1, L2, ... in
// order of definition. Branch targets follow their labels. Function and data
// labels are left alone and prog itself is not modified.
func RenumberLabels(prog *Program) *Program {
	mapping := make(map[Label]Label)
	next := 1
	for _, instr := range prog.All() {
		lbl := instr.Label()
		if !IsLineLabel(lbl) {
			continue
		}
		if _, ok := mapping[lbl]; !ok {
			mapping[lbl] = Label("L" + strconv.Itoa(next))
			next++
		}
	}

	rename := func(instr Instruction) Instruction {
		c := Clone(instr)
		if lbl, ok := mapping[c.Label()]; ok {
			c.SetLabel(lbl)
		}
		if br, ok := c.(Branch); ok {
			if to, ok := mapping[br.Target()]; ok {
				br.SetTarget(to)
			}
		}
		return c
	}

	out := &Program{
		Code: make([]Instruction, 0, len(prog.Code)),
		Data: make([]Instruction, 0, len(prog.Data)),
	}
	for _, instr := range prog.Code {
		out.Emit(rename(instr))
	}
	for _, instr := range prog.Data {
		out.Defer(rename(instr))
	}
	return out
}

// Clone returns a shallow copy of instr. Addresses are immutable and shared.
func Clone(instr Instruction) Instruction {
	switch i := instr.(type) {
	case *Copy:
		c := *i
		return &c
	case *BinOp:
		c := *i
		return &c
	case *UnOp:
		c := *i
		return &c
	case *AddrOf:
		c := *i
		return &c
	case *Load:
		c := *i
		return &c
	case *Store:
		c := *i
		return &c
	case *IndexRead:
		c := *i
		return &c
	case *IndexWrite:
		c := *i
		return &c
	case *Cast:
		c := *i
		return &c
	case *Jump:
		c := *i
		return &c
	case *BoolJump:
		c := *i
		return &c
	case *RelJump:
		c := *i
		return &c
	case *Call:
		c := *i
		return &c
	case *PassParam:
		c := *i
		return &c
	case *Return:
		c := *i
		return &c
	case *FuncStart:
		c := *i
		return &c
	case *FuncEnd:
		c := *i
		return &c
	case *Data:
		c := *i
		c.Values = append([]DataValue(nil), i.Values...)
		return &c
	case *Reserve:
		c := *i
		return &c
	case *Nop:
		c := *i
		return &c
	}
	panic(fmt.Sprintf("ir: cannot clone %T", instr))
}
