package vm

import (
	"fmt"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

// builtins is the fixed set of operators every Toy program can call
// without defining them itself. Control flow (if/ifelse/for/exec) works
// by pushing Procedure bodies onto the execution stack rather than by
// recursing into Go, so a deeply nested Toy program cannot overflow the
// Go call stack.
var builtins = map[string]BuiltinFunc{
	"add": arith("add", func(a, b float64) float64 { return a + b }),
	"sub": arith("sub", func(a, b float64) float64 { return a - b }),
	"mul": arith("mul", func(a, b float64) float64 { return a * b }),
	"div": arith("div", func(a, b float64) float64 { return a / b }),
	"mod": arith("mod", func(a, b float64) float64 {
		return float64(int64(a) % int64(b))
	}),

	"eq": compare("eq", func(a, b float64) bool { return a == b }),
	"ne": compare("ne", func(a, b float64) bool { return a != b }),
	"lt": compare("lt", func(a, b float64) bool { return a < b }),
	"le": compare("le", func(a, b float64) bool { return a <= b }),
	"gt": compare("gt", func(a, b float64) bool { return a > b }),
	"ge": compare("ge", func(a, b float64) bool { return a >= b }),

	"and": logical("and", func(a, b bool) bool { return a && b }),
	"or":  logical("or", func(a, b bool) bool { return a || b }),
	"not": opNot,

	"dup":  opDup,
	"pop":  opPop,
	"exch": opExch,

	"exec":   opExec,
	"if":     opIf,
	"ifelse": opIfElse,
	"for":    opFor,

	"print": opPrint,
}

func popNumber(m instruction.Machine, builtin string) (float64, error) {
	v, err := m.OperandPop()
	if err != nil {
		return 0, err
	}
	n, ok := v.(*instruction.Number)
	if !ok {
		return 0, &ErrTypeCheck{Builtin: builtin, Reason: "expected a Number"}
	}
	return n.V, nil
}

func popBoolean(m instruction.Machine, builtin string) (bool, error) {
	v, err := m.OperandPop()
	if err != nil {
		return false, err
	}
	b, ok := v.(*instruction.Boolean)
	if !ok {
		return false, &ErrTypeCheck{Builtin: builtin, Reason: "expected a Boolean"}
	}
	return b.V, nil
}

func popProcedure(m instruction.Machine, builtin string) (*instruction.Procedure, error) {
	v, err := m.OperandPop()
	if err != nil {
		return nil, err
	}
	p, ok := v.(*instruction.Procedure)
	if !ok {
		return nil, &ErrTypeCheck{Builtin: builtin, Reason: "expected a Procedure"}
	}
	return p, nil
}

func arith(name string, f func(a, b float64) float64) BuiltinFunc {
	return func(m instruction.Machine) error {
		b, err := popNumber(m, name)
		if err != nil {
			return err
		}
		a, err := popNumber(m, name)
		if err != nil {
			return err
		}
		m.OperandPush(instruction.NewNumber(f(a, b), nil))
		return nil
	}
}

func compare(name string, f func(a, b float64) bool) BuiltinFunc {
	return func(m instruction.Machine) error {
		b, err := popNumber(m, name)
		if err != nil {
			return err
		}
		a, err := popNumber(m, name)
		if err != nil {
			return err
		}
		m.OperandPush(instruction.NewBoolean(f(a, b), nil))
		return nil
	}
}

func logical(name string, f func(a, b bool) bool) BuiltinFunc {
	return func(m instruction.Machine) error {
		b, err := popBoolean(m, name)
		if err != nil {
			return err
		}
		a, err := popBoolean(m, name)
		if err != nil {
			return err
		}
		m.OperandPush(instruction.NewBoolean(f(a, b), nil))
		return nil
	}
}

func opNot(m instruction.Machine) error {
	a, err := popBoolean(m, "not")
	if err != nil {
		return err
	}
	m.OperandPush(instruction.NewBoolean(!a, nil))
	return nil
}

func opDup(m instruction.Machine) error {
	v, err := m.OperandPop()
	if err != nil {
		return err
	}
	m.OperandPush(v)
	m.OperandPush(v)
	return nil
}

func opPop(m instruction.Machine) error {
	_, err := m.OperandPop()
	return err
}

func opExch(m instruction.Machine) error {
	b, err := m.OperandPop()
	if err != nil {
		return err
	}
	a, err := m.OperandPop()
	if err != nil {
		return err
	}
	m.OperandPush(b)
	m.OperandPush(a)
	return nil
}

// opExec invokes a procedure value taken from the operand stack: its
// body is pushed onto the execution stack, not run immediately, so
// program order is preserved with whatever already sits on that stack.
func opExec(m instruction.Machine) error {
	p, err := popProcedure(m, "exec")
	if err != nil {
		return err
	}
	m.ExecutionPushProc(p.Instructions())
	return nil
}

func opIf(m instruction.Machine) error {
	body, err := popProcedure(m, "if")
	if err != nil {
		return err
	}
	cond, err := popBoolean(m, "if")
	if err != nil {
		return err
	}
	if cond {
		m.ExecutionPushProc(body.Instructions())
	}
	return nil
}

func opIfElse(m instruction.Machine) error {
	elseBody, err := popProcedure(m, "ifelse")
	if err != nil {
		return err
	}
	thenBody, err := popProcedure(m, "ifelse")
	if err != nil {
		return err
	}
	cond, err := popBoolean(m, "ifelse")
	if err != nil {
		return err
	}
	if cond {
		m.ExecutionPushProc(thenBody.Instructions())
	} else {
		m.ExecutionPushProc(elseBody.Instructions())
	}
	return nil
}

// opFor implements a counted loop: start, limit, step, then a body
// procedure. Each iteration pushes the loop counter, then the body, then
// a BuiltinState continuation that decides whether to push another
// iteration — the same trap-instruction pattern the debugger uses for
// stepping, rather than a Go-level recursive call.
func opFor(m instruction.Machine) error {
	body, err := popProcedure(m, "for")
	if err != nil {
		return err
	}
	step, err := popNumber(m, "for")
	if err != nil {
		return err
	}
	limit, err := popNumber(m, "for")
	if err != nil {
		return err
	}
	start, err := popNumber(m, "for")
	if err != nil {
		return err
	}

	var iterate func(current float64) func(m instruction.Machine) error
	iterate = func(current float64) func(m instruction.Machine) error {
		return func(m instruction.Machine) error {
			done := (step > 0 && current > limit) || (step < 0 && current < limit) || step == 0
			if done {
				return nil
			}
			m.OperandPush(instruction.NewNumber(current, nil))
			cont := instruction.NewBuiltinState(iterate(current + step))
			m.ExecutionPushProc(append(append([]instruction.Instruction{}, body.Instructions()...), cont))
			return nil
		}
	}
	return iterate(start)(m)
}

func opPrint(m instruction.Machine) error {
	v, err := m.OperandPop()
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case *instruction.Number:
		fmt.Println(t.V)
	case *instruction.String:
		fmt.Println(t.V)
	case *instruction.Boolean:
		fmt.Println(t.V)
	default:
		fmt.Println(v)
	}
	return nil
}
