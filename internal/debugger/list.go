package debugger

import (
	"fmt"
	"strings"

	"github.com/SNSystems/toy-tools/internal/instruction"
	"github.com/SNSystems/toy-tools/internal/vm"
)

// listWindow is how many source lines surround the target line that
// showLocation displays (5 before, the line itself, 4 after).
const listWindow = 5

// showLocation prints a window of source around locn, with a '^'
// marker under the located column. A nil location (no debug info, or
// not built with -g) is reported rather than treated as empty output.
func (d *Debugger) showLocation(locn *instruction.SourceLocation) {
	if locn == nil {
		d.log.Warn("no source information")
		return
	}

	start := locn.Line - listWindow
	if start < 1 {
		start = 1
	}
	for line := start; line < locn.Line+listWindow; line++ {
		source := d.src.Line(locn.SrcFile, line)
		d.log.Info(source)
		if line == locn.Line {
			d.log.Info(strings.Repeat(" ", locn.Column-1) + "^")
		}
	}
}

// ListHandler shows the source around an operator's definition, or
// (with no argument, or the argument ".") around the next instruction
// due to execute.
func ListHandler(d *Debugger, tokens []string) error {
	if len(tokens) == 0 {
		tokens = []string{"."}
	}
	if len(tokens) > 1 {
		d.log.Warn("extra arguments ignored")
	}

	var inst instruction.Instruction
	if tokens[0] == "." {
		stack := d.Machine.ExecutionStack()
		if len(stack) == 0 {
			return fmt.Errorf("execution stack is empty")
		}
		inst = stack[0]
	} else {
		callable := d.Machine.FindOperator(tokens[0])
		if callable == nil {
			return fmt.Errorf("operator %q was not found", tokens[0])
		}
		found, ok := vm.UnwrapInstruction(callable)
		if !ok {
			return fmt.Errorf("no location for %q", tokens[0])
		}
		inst = found
	}

	d.showLocation(inst.Location())
	return nil
}
