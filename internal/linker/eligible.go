// Package linker resolves a set of compiler tickets against a
// repository, lays out the reachable fragment graph, applies fixups,
// and emits a single linked Executable.
package linker

import (
	"github.com/google/uuid"

	"github.com/SNSystems/toy-tools/internal/store"
)

// ReverseFixup records that fragment From referenced this fragment at
// byte Offset — bookkeeping kept for a possible future incremental
// link, not consulted by this linker's own single-pass output stage.
type ReverseFixup struct {
	From   string
	Offset int
}

// EligibleFragment is one name's binding, for the duration of a single
// link, to the digest and body a compilation produced for it.
// Fragment is nil when the repository holds the digest but its body
// has been stripped: valid under ticket closure, but this linker
// refuses to use it as an entry point or xfixup referent.
type EligibleFragment struct {
	Digest        string
	Fragment      *store.Fragment
	LineBase      *int
	ReverseFixups []ReverseFixup
}

// CollectEligible resolves every ticket to the names it bound, merging
// them into one name -> EligibleFragment map. A name bound by more than
// one ticket, or a digest the repository has never heard of, is a link
// error.
func CollectEligible(tickets []uuid.UUID, repo *store.Repository) (map[string]*EligibleFragment, error) {
	eligible := make(map[string]*EligibleFragment)
	for _, ticket := range tickets {
		entry, ok := repo.Tickets[ticket]
		if !ok {
			return nil, &ErrTicketMissing{Ticket: ticket.String()}
		}
		for _, member := range entry.Members {
			fragment, ok := repo.Fragments[member.Digest]
			if !ok {
				return nil, &ErrFragmentMissing{Digest: member.Digest, Name: member.Name}
			}
			if _, dup := eligible[member.Name]; dup {
				return nil, &ErrDuplicateDefinition{Name: member.Name}
			}
			eligible[member.Name] = &EligibleFragment{
				Digest:   member.Digest,
				Fragment: fragment,
				LineBase: member.LineBase,
			}
		}
	}
	return eligible, nil
}
