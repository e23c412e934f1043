// Package rebase normalizes a procedure's absolute source line numbers
// to be relative to its first located instruction, so that moving a
// function within a file (or reindenting it) does not change its
// content digest.
package rebase

import (
	"fmt"

	"github.com/SNSystems/toy-tools/internal/instruction"
)

// Result is a rebased procedure paired with the absolute line number its
// instructions are now relative to. LineBase is nil if the procedure
// contains no located instruction at all.
type Result struct {
	Procedure *instruction.Procedure
	LineBase  *int
}

// Rebase walks p depth-first, establishing base as the line number of
// the first located instruction it encounters, then subtracting base
// from every located instruction's line (including nested procedures).
// Every subsequent located instruction's absolute line must be >= base;
// violating this panics, since it indicates the walk order does not
// match source order, a precondition this package assumes the caller
// (the frontend) already guarantees.
//
// Rebasing an already-rebased procedure is a no-op: base is the first
// line, which is already 0, so every line's delta is 0.
func Rebase(p *instruction.Procedure) Result {
	r := &rebaser{}
	r.walk(p)
	return Result{Procedure: p, LineBase: r.base}
}

type rebaser struct {
	base *int
}

func (r *rebaser) walk(inst instruction.Instruction) {
	r.rebaseOne(inst)
	for _, child := range inst.Instructions() {
		r.walk(child)
	}
}

func (r *rebaser) rebaseOne(inst instruction.Instruction) {
	locn := inst.Location()
	if locn == nil {
		return
	}
	if r.base == nil {
		base := locn.Line
		r.base = &base
	}
	if locn.Line < *r.base {
		panic(fmt.Sprintf("rebase: instruction at line %d precedes established base %d — walk order must match source order", locn.Line, *r.base))
	}
	locn.Line -= *r.base
}
