// Package store models the persistent repository: the content-addressed
// fragment map plus the tickets and links that keep it consistent, and
// its round-trippable on-disk encoding.
package store

import (
	"fmt"

	"github.com/google/uuid"
)

// SectionType identifies one of the three byte streams a Fragment may
// carry. Section types are compared by their string value wherever the
// linker needs a deterministic order (base-address assignment sorts
// lexicographically by this name).
type SectionType string

const (
	SectionText      SectionType = "text"
	SectionData      SectionType = "data"
	SectionDebugLine SectionType = "debug_line"
)

// StayAtHome reports whether section must never be assigned a layout
// address; its bytes travel with the executable keyed by fragment digest
// instead.
func (s SectionType) StayAtHome() bool {
	return s == SectionDebugLine
}

// XFixup is a reference, by symbolic name, to another fragment. Offset
// is a byte offset into the owning section's data, or -1 as a sentinel
// meaning "no byte patch — the reference is a whole-fragment pointer
// relationship only" (Toy has no byte-level encoding for a named
// reference yet).
type XFixup struct {
	Offset int    `yaml:"offset"`
	Name   string `yaml:"name"`
}

// IFixup is a reference to another section of the same fragment, by
// section name.
type IFixup struct {
	Offset  int         `yaml:"offset"`
	Section SectionType `yaml:"section"`
}

// FSection is one fragment's byte stream plus the fixups that must be
// applied to it at link time. Immutable once the compiler emits it.
type FSection struct {
	Data    []byte   `yaml:"data"`
	XFixups []XFixup `yaml:"xfixups,omitempty"`
	IFixups []IFixup `yaml:"ifixups,omitempty"`
}

// Fragment is the unit of caching and linking: one named code unit's
// sections, plus which section is the primary one (the one whose address
// names the fragment's symbol). A nil *Fragment in Repository.Fragments
// represents a stripped body — the digest is still present, but there is
// nothing left to link against.
type Fragment struct {
	Sections map[SectionType]*FSection `yaml:"sections"`
	Primary  SectionType               `yaml:"primary"`
}

// SectionNames returns the fragment's section types, in a stable,
// lexicographically sorted order.
func (f *Fragment) SectionNames() []SectionType {
	names := make([]SectionType, 0, len(f.Sections))
	for name := range f.Sections {
		names = append(names, name)
	}
	sortSectionTypes(names)
	return names
}

// TicketMember binds one compiled name to the digest and line_base it
// produced in a single compilation.
type TicketMember struct {
	Name     string `yaml:"name"`
	Digest   string `yaml:"digest"`
	LineBase *int   `yaml:"line_base"`
}

// TicketFileEntry records one compilation: the external ticket file the
// compiler wrote (whose sole content is the compile UUID that keys this
// entry in the repository) and the names it bound.
type TicketFileEntry struct {
	Path    string         `yaml:"path"`
	Members []TicketMember `yaml:"members"`
}

// LinksRecord notes that a previously emitted executable, identified by
// path and the UUID stamped into it, depends on a subset of the
// repository's fragments.
type LinksRecord struct {
	File string    `yaml:"file"`
	UUID uuid.UUID `yaml:"uuid"`
}

// Repository is the persistent, content-addressed fragment store plus
// the tickets and links that reference it. Fragments maps a digest to
// its Fragment, or to nil if the body has been stripped.
type Repository struct {
	Fragments map[string]*Fragment          `yaml:"fragments"`
	Tickets   map[uuid.UUID]*TicketFileEntry `yaml:"tickets"`
	Links     []LinksRecord                  `yaml:"links"`
	UUID      uuid.UUID                      `yaml:"uuid"`
}

// New returns a fresh, empty repository with a randomly generated UUID.
func New() *Repository {
	return &Repository{
		Fragments: make(map[string]*Fragment),
		Tickets:   make(map[uuid.UUID]*TicketFileEntry),
		Links:     nil,
		UUID:      uuid.New(),
	}
}

// HasFragmentBody reports whether digest names a fragment with a
// non-stripped body in this repository.
func (r *Repository) HasFragmentBody(digest string) bool {
	f, ok := r.Fragments[digest]
	return ok && f != nil
}

// ErrRepositoryInvalid is returned when a persisted repository could not
// be decoded, or decoded to something other than a Repository.
type ErrRepositoryInvalid struct {
	Path   string
	Reason string
}

func (e *ErrRepositoryInvalid) Error() string {
	return fmt.Sprintf("repository %q is invalid: %s", e.Path, e.Reason)
}

// ErrRepositoryUUIDMismatch is returned when an executable names a
// repository UUID that does not match the repository actually loaded.
type ErrRepositoryUUIDMismatch struct {
	Want, Got uuid.UUID
}

func (e *ErrRepositoryUUIDMismatch) Error() string {
	return fmt.Sprintf("repository UUID mismatch: want %s, got %s", e.Want, e.Got)
}

func sortSectionTypes(names []SectionType) {
	// insertion sort: the slice is always tiny (at most 3 entries), and
	// avoiding an import of "sort" here keeps this file dependency-free
	// for the one place it's used outside the linker package.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
}
