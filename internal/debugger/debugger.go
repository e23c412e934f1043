// Package debugger implements an interactive, command-driven debugger
// for a loaded Toy program: stack inspection, source listing, and
// step-into/step-over execution built on the VM's own interrupt and
// BuiltinState-trap mechanisms.
package debugger

import (
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/vm"
)

// Debugger holds the state a debugging session accumulates across
// commands: the machine being inspected, whether a program has been
// loaded into it yet (continue warns if not), and the source line
// cache "list" reads through.
type Debugger struct {
	Machine *vm.Machine

	loaded bool

	src *sourceCache
	log *logrus.Logger
}

// New returns a Debugger with a fresh machine and no program loaded.
func New(log *logrus.Logger) *Debugger {
	return &Debugger{
		Machine: vm.New(),
		src:     newSourceCache(),
		log:     log,
	}
}

// Table returns the full command table: stack inspection
// (dictstack/opstack/execstack), program control (load, continue, list),
// stepping (step, next), and session commands (help, quit).
func (d *Debugger) Table() CommandTable {
	return CommandTable{
		"dictstack": DictStackHandler,
		"opstack":   OperandStackHandler,
		"execstack": ExecutionStackHandler,

		"load":     LoadHandler,
		"continue": ContinueHandler,
		"list":     ListHandler,

		"step": StepHandler,
		"next": NextHandler,

		"help": HelpHandler,
		"quit": QuitHandler,
	}
}
