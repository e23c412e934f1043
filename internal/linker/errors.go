package linker

import "fmt"

// ErrTicketMissing is returned when a ticket file names a compile UUID
// the repository has no record of.
type ErrTicketMissing struct{ Ticket string }

func (e *ErrTicketMissing) Error() string {
	return fmt.Sprintf("ticket %q was not found in the repository", e.Ticket)
}

// ErrFragmentMissing is returned when a digest names no repository
// fragment at all, or names one whose body has been stripped and is
// being used somewhere this linker requires a live body: an entry
// point, or an xfixup referent.
type ErrFragmentMissing struct{ Digest, Name string }

func (e *ErrFragmentMissing) Error() string {
	return fmt.Sprintf("fragment %q (for %q) was not found, or has been stripped", e.Digest, e.Name)
}

// ErrDuplicateDefinition is returned when two tickets bind the same
// name.
type ErrDuplicateDefinition struct{ Name string }

func (e *ErrDuplicateDefinition) Error() string {
	return fmt.Sprintf("multiple definitions of %q", e.Name)
}

// ErrUndefinedEntryPoint is returned when a requested entry point is
// not among the eligible names collected from the link's tickets.
type ErrUndefinedEntryPoint struct{ Name string }

func (e *ErrUndefinedEntryPoint) Error() string {
	return fmt.Sprintf("entry point %q was not defined", e.Name)
}

// ErrUndefinedReference is returned when a fragment's xfixup names
// something outside the eligible set.
type ErrUndefinedReference struct{ To, By string }

func (e *ErrUndefinedReference) Error() string {
	return fmt.Sprintf("undefined reference to %q from %q", e.To, e.By)
}
