package linker

import "github.com/SNSystems/toy-tools/internal/store"

// FragmentAddress is one fragment's placement within a single section's
// layout.
type FragmentAddress struct {
	Address  int
	Digest   string
	Fragment *store.Fragment
	Name     string
}

// SectionLayout accumulates placements for one section across every
// fragment the graph walk visits, tracking the running write position
// (Dot) as fragments are appended.
type SectionLayout struct {
	Dot               int
	FragmentAddresses []FragmentAddress
}
