// Package vm implements the three-stack machine that executes a loaded
// Toy program: an operand stack, an execution stack, and a dictionary
// stack, all LIFO but pushing/popping at the front so that pushing an
// entire procedure body in one operation preserves program order on pop.
package vm

import "github.com/SNSystems/toy-tools/internal/instruction"

// ErrStackUnderflow is returned by Pop/Peek on an empty stack.
type ErrStackUnderflow struct{}

func (e *ErrStackUnderflow) Error() string { return "stack underflow" }

// InstructionStack is a LIFO sequence of instructions (used for both the
// operand and execution stacks) whose push and pop operate at the
// front.
type InstructionStack struct {
	members []instruction.Instruction
}

// Push inserts v at the front.
func (s *InstructionStack) Push(v instruction.Instruction) {
	s.members = append([]instruction.Instruction{v}, s.members...)
}

// PushAll inserts every element of v at the front, in the same order as
// v, so that the first element of v is the next one popped.
func (s *InstructionStack) PushAll(v []instruction.Instruction) {
	merged := make([]instruction.Instruction, 0, len(v)+len(s.members))
	merged = append(merged, v...)
	merged = append(merged, s.members...)
	s.members = merged
}

// Pop removes and returns the front element.
func (s *InstructionStack) Pop() (instruction.Instruction, error) {
	if len(s.members) == 0 {
		return nil, &ErrStackUnderflow{}
	}
	v := s.members[0]
	s.members = s.members[1:]
	return v, nil
}

// Peek returns the element at depth (0 = front) without removing it.
func (s *InstructionStack) Peek(depth int) (instruction.Instruction, error) {
	if len(s.members) < depth+1 {
		return nil, &ErrStackUnderflow{}
	}
	return s.members[depth], nil
}

func (s *InstructionStack) Empty() bool { return len(s.members) == 0 }
func (s *InstructionStack) Len() int    { return len(s.members) }

// Dictionary maps a name to something callable: either a built-in, or a
// top-level procedure.
type Dictionary map[string]Callable

// DictStack is a LIFO stack of Dictionary, searched front-to-back by
// FindOperator so that a dictionary pushed later shadows one pushed
// earlier.
type DictStack struct {
	members []Dictionary
}

func (s *DictStack) Push(d Dictionary) {
	s.members = append([]Dictionary{d}, s.members...)
}

func (s *DictStack) Pop() (Dictionary, error) {
	if len(s.members) == 0 {
		return nil, &ErrStackUnderflow{}
	}
	d := s.members[0]
	s.members = s.members[1:]
	return d, nil
}

func (s *DictStack) Len() int { return len(s.members) }

// Find searches every dictionary on the stack, front to back, for name.
func (s *DictStack) Find(name string) Callable {
	for _, d := range s.members {
		if c, ok := d[name]; ok {
			return c
		}
	}
	return nil
}
