package ir

import "strings"

// Program is the output of IR generation: the ordered instruction stream
// followed by data definitions deferred to the end.
//
// A Program is not modified once returned by the generator; rewrites such as
// RenumberLabels build a new one.
type Program struct {
	Code []Instruction
	Data []Instruction
}

// Emit appends an instruction to the code stream.
func (p *Program) Emit(instr Instruction) {
	p.Code = append(p.Code, instr)
}

// Defer appends a data definition after all code.
func (p *Program) Defer(instr Instruction) {
	p.Data = append(p.Data, instr)
}

// All returns code followed by deferred data, as they appear in the text.
func (p *Program) All() []Instruction {
	all := make([]Instruction, 0, len(p.Code)+len(p.Data))
	all = append(all, p.Code...)
	return append(all, p.Data...)
}

// Len returns the total number of lines.
func (p *Program) Len() int {
	return len(p.Code) + len(p.Data)
}

// Lines renders every instruction, one string per line.
func (p *Program) Lines() []string {
	all := p.All()
	lines := make([]string, len(all))
	for i, instr := range all {
		lines[i] = FormatLine(instr)
	}
	return lines
}

// Text renders the whole program, lines separated by newlines.
func (p *Program) Text() string {
	return strings.Join(p.Lines(), "\n")
}
