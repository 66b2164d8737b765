package irgen

import "github.com/raymyers/littlec/pkg/ir"

// loopContext is the state of one enclosing while loop.
type loopContext struct {
	breaks []*ir.Jump // pending jumps to the bottom label
}

// LoopStack tracks the enclosing loops so break statements can find the
// innermost one.
type LoopStack struct {
	loops []*loopContext
}

// NewLoopStack creates an empty loop stack.
func NewLoopStack() *LoopStack {
	return &LoopStack{}
}

// Push enters a loop.
func (s *LoopStack) Push() {
	s.loops = append(s.loops, &loopContext{})
}

// Pop leaves the innermost loop and returns its breaks.
func (s *LoopStack) Pop() []*ir.Jump {
	if len(s.loops) == 0 {
		return nil
	}
	l := s.loops[len(s.loops)-1]
	s.loops = s.loops[:len(s.loops)-1]
	return l.breaks
}

// AddBreak records j as a break of the innermost loop. It reports false when
// no loop is open.
func (s *LoopStack) AddBreak(j *ir.Jump) bool {
	if len(s.loops) == 0 {
		return false
	}
	l := s.loops[len(s.loops)-1]
	l.breaks = append(l.breaks, j)
	return true
}

// Depth returns the current loop nesting depth.
func (s *LoopStack) Depth() int {
	return len(s.loops)
}
