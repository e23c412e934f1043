package debugger

import (
	"fmt"

	"github.com/SNSystems/toy-tools/internal/store"
	"github.com/SNSystems/toy-tools/internal/vm"
)

// LoadHandler loads the named executable file, reattaches its source
// debug info (if any), resets the machine, pushes the program as a
// dictionary, and schedules — without yet running — its "main"
// procedure.
func LoadHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 1 {
		return fmt.Errorf("usage: load <executable>")
	}
	path := tokens[0]

	exe, err := store.ReadExecutable(path)
	if err != nil {
		return fmt.Errorf("executable %q was not found: %w", path, err)
	}

	program, err := vm.Load(exe)
	if err != nil {
		return fmt.Errorf("loading %q: %w", path, err)
	}

	var repo *store.Repository
	if exe.RepositoryRecord.Path == "" {
		d.log.Info("executable was not associated with a program repository")
	} else {
		repo, err = store.Read(exe.RepositoryRecord.Path, false)
		if err != nil {
			return fmt.Errorf("reading repository %q: %w", exe.RepositoryRecord.Path, err)
		}
		if repo.UUID != exe.RepositoryRecord.UUID {
			return &store.ErrRepositoryUUIDMismatch{Want: exe.RepositoryRecord.UUID, Got: repo.UUID}
		}
		if err := vm.AttachDebugInfo(program, exe, repo); err != nil {
			return fmt.Errorf("attaching debug info: %w", err)
		}
	}

	d.Machine.Reset()
	d.Machine.PushDictionary(vm.ProgramDictionary(program))
	if err := d.Machine.ExecuteOperator("main"); err != nil {
		return fmt.Errorf("scheduling main: %w", err)
	}

	d.loaded = true
	d.log.Infof("executable %q is ready", path)
	return nil
}

// ContinueHandler resumes execution of whatever is on the execution
// stack until it is exhausted or a step trap interrupts it.
func ContinueHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("unexpected arguments")
	}
	if !d.loaded {
		d.log.Warn("no loaded program")
	}
	return d.Machine.RunAll()
}
