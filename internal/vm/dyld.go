package vm

import (
	"bytes"
	"fmt"

	"github.com/SNSystems/toy-tools/internal/instruction"
	"github.com/SNSystems/toy-tools/internal/store"
)

// Load decodes every symbol in exe into a name->Instruction map: for
// each Symbol, the text bytes in [address, address+size) are decoded as
// exactly one instruction via the codec. Locations are not attached —
// call AttachDebugInfo afterward if source-level debugging is needed.
func Load(exe *store.Executable) (map[string]instruction.Instruction, error) {
	text := exe.Data[store.SectionText]
	program := make(map[string]instruction.Instruction, len(exe.Symbols))
	for _, sym := range exe.Symbols {
		if sym.Address < 0 || sym.Address+sym.Size > len(text) {
			return nil, fmt.Errorf("vm: symbol %q address range out of bounds", sym.Name)
		}
		slice := text[sym.Address : sym.Address+sym.Size]
		sections := map[store.SectionType]*bytes.Reader{
			store.SectionText: bytes.NewReader(slice),
		}
		inst, err := instruction.Read(sections)
		if err != nil {
			return nil, fmt.Errorf("vm: decoding symbol %q: %w", sym.Name, err)
		}
		program[sym.Name] = inst
	}
	return program, nil
}

// AttachDebugInfo reattaches source locations to every instruction
// Load produced, using exe's debug records to find which fragment's
// debug_line bytes (held in repo, since debug_line is a stay-at-home
// section never copied into the executable) apply to which loaded
// instruction. A fragment whose digest is missing, or whose debug_line
// section is absent, is skipped rather than treated as an error: a
// program built without -g simply has no debug records to attach.
func AttachDebugInfo(program map[string]instruction.Instruction, exe *store.Executable, repo *store.Repository) error {
	addressToName := make(map[int]string, len(exe.Symbols))
	for _, sym := range exe.Symbols {
		addressToName[sym.Address] = sym.Name
	}

	for _, rec := range exe.Debug {
		name, ok := addressToName[rec.Address]
		if !ok {
			continue
		}
		inst, ok := program[name]
		if !ok {
			continue
		}
		fragment := repo.Fragments[rec.FragmentHash]
		if fragment == nil {
			continue
		}
		debugSection := fragment.Sections[store.SectionDebugLine]
		if debugSection == nil {
			continue
		}
		r := bytes.NewReader(debugSection.Data)
		if err := inst.ReadDebug(r, rec.LineBase); err != nil {
			return fmt.Errorf("vm: reattaching debug info for %q: %w", name, err)
		}
	}
	return nil
}

// ProgramDictionary wraps a loaded program's top-level instructions as a
// Dictionary: operators are invoked by name, and a Procedure invoked by
// name pushes its body (see instruction.Procedure.Call) while any other
// instruction type bound to a name executes directly, so any top-level
// value — not just a Procedure — is callable.
func ProgramDictionary(program map[string]instruction.Instruction) Dictionary {
	d := make(Dictionary, len(program))
	for name, inst := range program {
		d[name] = instructionCallable{inst}
	}
	return d
}

type instructionCallable struct {
	inst instruction.Instruction
}

func (c instructionCallable) Call(m instruction.Machine) error {
	if proc, ok := c.inst.(*instruction.Procedure); ok {
		return proc.Call(m)
	}
	return c.inst.Execute(m)
}

// UnwrapInstruction recovers the instruction a dictionary entry wraps,
// for callers (the debugger) that need to inspect a callable's location
// or body rather than just invoke it. Returns false for a built-in,
// which has no underlying instruction.
func UnwrapInstruction(c Callable) (instruction.Instruction, bool) {
	switch v := c.(type) {
	case instructionCallable:
		return v.inst, true
	case instruction.Instruction:
		return v, true
	default:
		return nil, false
	}
}

// UnwrapProcedure recovers the *instruction.Procedure a dictionary entry
// wraps, for the debugger's step-into trap, which must patch a
// procedure's body directly rather than just call it.
func UnwrapProcedure(c Callable) (*instruction.Procedure, bool) {
	inst, ok := UnwrapInstruction(c)
	if !ok {
		return nil, false
	}
	proc, ok := inst.(*instruction.Procedure)
	return proc, ok
}
