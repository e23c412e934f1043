package debugger

import (
	"fmt"

	"github.com/SNSystems/toy-tools/internal/instruction"
	"github.com/SNSystems/toy-tools/internal/vm"
)

// interruptTrap returns a one-shot instruction that halts the machine
// when it executes. The closure captures m directly rather than going
// through the instruction.Machine parameter: a trap only ever runs
// under the very machine the debugger is driving.
func interruptTrap(m *vm.Machine) *instruction.BuiltinState {
	return instruction.NewBuiltinState(func(instruction.Machine) error {
		m.Interrupt()
		return nil
	})
}

// interruptAndRemoveTrap returns a trap that halts the machine and then
// deletes itself from proc's body, so the procedure is left exactly as
// it was before step-into patched it.
func interruptAndRemoveTrap(m *vm.Machine, proc *instruction.Procedure) *instruction.BuiltinState {
	return instruction.NewBuiltinState(func(instruction.Machine) error {
		m.Interrupt()
		proc.Body = proc.Body[1:]
		return nil
	})
}

// step runs exactly one instruction. With over false (step-into), if
// that instruction is an Operator naming a user-defined procedure, a
// trap is spliced into the front of the procedure's body so execution
// stops at the procedure's first real instruction rather than running
// it to completion. With over true (step-over), or for any instruction
// that isn't such an Operator, a trap is simply queued to fire right
// after the instruction's own effects (including any body it pushes)
// have finished.
func step(d *Debugger, over bool) error {
	instr, err := d.Machine.ExecutionPop()
	if err != nil {
		return fmt.Errorf("no instruction to execute")
	}

	patched := false
	if !over {
		if op, ok := instr.(*instruction.Operator); ok {
			if callable := d.Machine.FindOperator(op.V); callable != nil {
				if proc, ok := vm.UnwrapProcedure(callable); ok {
					proc.Body = append([]instruction.Instruction{interruptAndRemoveTrap(d.Machine, proc)}, proc.Body...)
					patched = true
				}
			}
		}
	}

	if !patched {
		d.Machine.ExecutionPush(interruptTrap(d.Machine))
	}
	d.Machine.ExecutionPush(instr)

	if err := d.Machine.RunAll(); err != nil {
		return err
	}

	if stack := d.Machine.ExecutionStack(); len(stack) > 0 {
		d.showLocation(stack[0].Location())
	}
	return nil
}

// StepHandler steps into the next instruction, entering a user-defined
// procedure's body rather than running it to completion.
func StepHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	return step(d, false)
}

// NextHandler steps over the next instruction: a called procedure runs
// to completion before execution stops again.
func NextHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	return step(d, true)
}
