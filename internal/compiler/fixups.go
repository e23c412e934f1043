package compiler

import (
	"sort"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

// referencedNames returns, in sorted order, every name a procedure's
// operators reference anywhere in its body (including nested
// procedures), excluding whatever is in builtins: the set the linker
// must resolve against other fragments at link time.
func referencedNames(proc *instruction.Procedure, builtins map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var walk func(inst instruction.Instruction)
	walk = func(inst instruction.Instruction) {
		if name := inst.Name(); name != "" {
			seen[name] = struct{}{}
		}
		for _, child := range inst.Instructions() {
			walk(child)
		}
	}
	walk(proc)

	names := make([]string, 0, len(seen))
	for name := range seen {
		if _, isBuiltin := builtins[name]; isBuiltin {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
