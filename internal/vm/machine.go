package vm

import "github.com/SNSystems/toy-tools/internal/instruction"

// Callable is anything a dictionary entry can bind a name to: a
// built-in (BuiltinFunc) or a user-defined procedure
// (*instruction.Procedure, whose Call pushes its body).
type Callable interface {
	Call(m instruction.Machine) error
}

// BuiltinFunc adapts a Go function to Callable.
type BuiltinFunc func(m instruction.Machine) error

func (f BuiltinFunc) Call(m instruction.Machine) error { return f(m) }

// Machine is the three-stack VM. It implements instruction.Machine so
// that instructions can execute themselves against it without the
// instruction package importing vm.
type Machine struct {
	operand   InstructionStack
	execution InstructionStack
	dict      DictStack
	running   bool
	traceOn   bool
}

// New returns a Machine with the system dictionary already pushed.
func New() *Machine {
	m := &Machine{running: true}
	m.dict.Push(SystemDict())
	return m
}

// Reset restores the machine to its just-constructed state, discarding
// all stack contents except a fresh system dictionary.
func (m *Machine) Reset() {
	m.operand = InstructionStack{}
	m.execution = InstructionStack{}
	m.dict = DictStack{}
	m.running = true
	m.dict.Push(SystemDict())
}

func (m *Machine) OperandPush(inst instruction.Instruction) {
	m.operand.Push(inst)
}

func (m *Machine) OperandPop() (instruction.Instruction, error) {
	return m.operand.Pop()
}

func (m *Machine) OperandPeek(depth int) (instruction.Instruction, error) {
	return m.operand.Peek(depth)
}

func (m *Machine) ExecutionPushProc(body []instruction.Instruction) {
	m.execution.PushAll(body)
}

func (m *Machine) ExecutionPush(inst instruction.Instruction) {
	m.execution.Push(inst)
}

// ExecutionPop removes and returns the front instruction on the
// execution stack. Exposed for the debugger's step/next commands,
// which must inspect the next instruction before deciding how to run
// it.
func (m *Machine) ExecutionPop() (instruction.Instruction, error) {
	return m.execution.Pop()
}

// FindOperator searches the dictionary stack, front to back, for name.
// Returns nil if not found.
func (m *Machine) FindOperator(name string) Callable {
	return m.dict.Find(name)
}

// ExecuteOperator looks name up and invokes it, or returns
// ErrNameNotFound.
func (m *Machine) ExecuteOperator(name string) error {
	c := m.FindOperator(name)
	if c == nil {
		return &ErrNameNotFound{Name: name}
	}
	return c.Call(m)
}

// PushDictionary pushes d onto the dictionary stack (used by the loader
// to make a program's top-level procedures callable by name).
func (m *Machine) PushDictionary(d Dictionary) {
	m.dict.Push(d)
}

// PopDictionary pops the top dictionary.
func (m *Machine) PopDictionary() (Dictionary, error) {
	return m.dict.Pop()
}

// OperandStack returns a snapshot of the operand stack, front (next
// popped) first. Exposed for the debugger's opstack command.
func (m *Machine) OperandStack() []instruction.Instruction {
	return append([]instruction.Instruction(nil), m.operand.members...)
}

// ExecutionStack returns a snapshot of the execution stack, front
// (next popped) first. Exposed for the debugger's execstack command.
func (m *Machine) ExecutionStack() []instruction.Instruction {
	return append([]instruction.Instruction(nil), m.execution.members...)
}

// DictionaryDepth reports how many dictionaries are on the dictionary
// stack. Exposed for the debugger's dictstack command.
func (m *Machine) DictionaryDepth() int {
	return m.dict.Len()
}

// Interrupt halts the current RunAll call. RunAll resets the flag to
// running as it returns, so interrupt only ever stops the in-progress
// run — exactly the single-shot signal the debugger's step-into/step-over
// traps rely on. An interrupt raised outside RunAll makes the next RunAll
// return without executing anything.
func (m *Machine) Interrupt() {
	m.running = false
}

func (m *Machine) Interrupted() bool { return !m.running }

// Trace sets whether RunAll prints each instruction before executing
// it, and returns the previous value.
func (m *Machine) Trace(enabled bool) bool {
	prev := m.traceOn
	m.traceOn = enabled
	return prev
}

// RunAll pops and executes instructions from the execution stack until
// it is empty or Interrupt is called.
func (m *Machine) RunAll() error {
	for m.running && !m.execution.Empty() {
		op, err := m.execution.Pop()
		if err != nil {
			return err
		}
		if m.traceOn {
			println(traceString(op))
		}
		if err := op.Execute(m); err != nil {
			return err
		}
	}
	m.running = true
	return nil
}

// Run executes program's "main" procedure to completion: it pushes
// program as a dictionary, invokes "main", runs the execution stack
// dry, then pops the dictionary back off.
func (m *Machine) Run(program Dictionary) error {
	m.PushDictionary(program)
	defer m.PopDictionary()

	if err := m.ExecuteOperator("main"); err != nil {
		return err
	}
	return m.RunAll()
}

func traceString(inst instruction.Instruction) string {
	if s, ok := inst.(interface{ String() string }); ok {
		return s.String()
	}
	return "<instruction>"
}
