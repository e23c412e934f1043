package instruction

import (
	"bytes"
	"errors"
	"hash"

	"github.com/SNSystems/toy-tools/internal/store"
)

// ErrNotSerializable is returned by BuiltinState's Write/Read methods,
// and Digest panics with it: a BuiltinState is a runtime-only value that
// never appears in a fragment.
var ErrNotSerializable = errors.New("instruction: BuiltinState is runtime-only and cannot be serialized or digested")

// BuiltinState wraps a Go closure as a one-shot instruction: the
// debugger's step-into/step-over traps (internal/debugger) and the for
// built-in's loop continuation (internal/vm) push a BuiltinState to run a
// bit of host logic at a specific point in the execution stack.
type BuiltinState struct {
	base
	Fn func(m Machine) error
}

// NewBuiltinState wraps fn as an executable, non-serializable
// instruction.
func NewBuiltinState(fn func(m Machine) error) *BuiltinState {
	return &BuiltinState{Fn: fn}
}

func (b *BuiltinState) Execute(m Machine) error {
	return b.Fn(m)
}

func (b *BuiltinState) Digest(h hash.Hash) {
	panic(ErrNotSerializable)
}

func (b *BuiltinState) Write(sections map[store.SectionType]*bytes.Buffer) error {
	return ErrNotSerializable
}

func (b *BuiltinState) readPayload(r *bytes.Reader) error {
	return ErrNotSerializable
}

func (b *BuiltinState) ReadDebug(r *bytes.Reader, lineBase int) error {
	return ErrNotSerializable
}
