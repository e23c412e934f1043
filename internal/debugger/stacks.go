package debugger

import (
	"fmt"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

// maxStackDumpRows bounds how many entries a single dump prints.
const maxStackDumpRows = 20

// TODO: a blank repeat of opstack/execstack should resume from where
// the last page of output left off instead of restarting from the top;
// command dispatch has no way to carry that state between
// Processor.Command calls yet, so a dump beyond maxStackDumpRows just
// reports how many entries were elided.
func dumpInstructions(d *Debugger, items []instruction.Instruction) {
	if len(items) == 0 {
		d.log.Info("<empty>")
		return
	}
	limit := len(items)
	if limit > maxStackDumpRows {
		limit = maxStackDumpRows
	}
	for i := 0; i < limit; i++ {
		d.log.Infof("%d: %s", i+1, describeInstruction(items[i]))
	}
	if len(items) > limit {
		d.log.Infof("... (%d more)", len(items)-limit)
	}
}

func describeInstruction(inst instruction.Instruction) string {
	switch v := inst.(type) {
	case *instruction.Boolean:
		return fmt.Sprintf("Boolean(%v)", v.V)
	case *instruction.Number:
		return fmt.Sprintf("Number(%g)", v.V)
	case *instruction.String:
		return fmt.Sprintf("String(%q)", v.V)
	case *instruction.Operator:
		return fmt.Sprintf("Operator(%s)", v.V)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", inst)
	}
}

// OperandStackHandler dumps the machine's operand stack.
func OperandStackHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	dumpInstructions(d, d.Machine.OperandStack())
	return nil
}

// ExecutionStackHandler dumps the machine's execution stack.
func ExecutionStackHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	dumpInstructions(d, d.Machine.ExecutionStack())
	return nil
}

// DictStackHandler reports the depth of the machine's dictionary stack.
// Unlike opstack/execstack, dictionary entries are builtins or whole
// procedures rather than individual instructions, so there's nothing
// useful to enumerate row-by-row beyond the depth itself.
func DictStackHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	d.log.Infof("%d dictionaries on the stack", d.Machine.DictionaryDepth())
	return nil
}
