// Package gc implements the program repository garbage collector: it
// discovers every fragment still reachable from the repository's own
// on-disk roots (extant tickets and links) and copies only those into
// a fresh repository, dropping everything else.
package gc

import (
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Collect copies every fragment, ticket, and link still reachable from
// src's on-disk roots into dest. dest inherits src's UUID, since the
// collected repository still answers to the same identity executables
// were linked against.
func Collect(src, dest *store.Repository, log *logrus.Logger) {
	dest.UUID = src.UUID

	preserveStrippedFragments(src, dest, log)
	preserveExtantTickets(src, dest, log)
	preserveExtantLinks(src, dest, log)
}

// preserveStrippedFragments copies every already-stripped (nil) entry
// across untouched, so a prior strip is never silently undone by a
// later collection.
func preserveStrippedFragments(src, dest *store.Repository, log *logrus.Logger) {
	for digest, fragment := range src.Fragments {
		if fragment == nil {
			log.WithField("digest", digest).Debug("collecting stripped fragment")
			dest.Fragments[digest] = nil
		}
	}
}

// preserveExtantTickets keeps a ticket only if the ticket file on disk
// still names the compile UUID the repository recorded for it. A
// ticket file a user deleted or overwrote is dropped, along with the
// root it would otherwise have given its fragments.
func preserveExtantTickets(src, dest *store.Repository, log *logrus.Logger) {
	for ticket, entry := range src.Tickets {
		id, err := store.ReadTicket(entry.Path)
		if err != nil || id != ticket {
			log.WithField("ticket", entry.Path).Info("removing ticket: no longer matches the repository")
			continue
		}

		for _, member := range entry.Members {
			if _, ok := dest.Fragments[member.Digest]; !ok {
				log.WithField("digest", member.Digest).Debug("collecting fragment")
				dest.Fragments[member.Digest] = src.Fragments[member.Digest]
			}
		}
		dest.Tickets[ticket] = entry
	}
}

// preserveExtantLinks keeps a link only if the executable it names
// still exists and still carries the matching link UUID. Fragments a
// surviving executable's debug records reference are preserved too, so
// a linked program can still be source-level debugged after its object
// files themselves are gone.
func preserveExtantLinks(src, dest *store.Repository, log *logrus.Logger) {
	for _, link := range src.Links {
		exe, err := store.ReadExecutable(link.File)
		if err != nil || exe.UUID != link.UUID {
			log.WithField("file", link.File).Info("removing link: executable missing or stale")
			continue
		}

		dest.Links = append(dest.Links, link)

		for _, d := range exe.Debug {
			fragment, ok := src.Fragments[d.FragmentHash]
			if !ok || fragment == nil {
				continue
			}
			if _, exists := dest.Fragments[d.FragmentHash]; !exists {
				log.WithField("digest", d.FragmentHash).Debug("collecting fragment")
				dest.Fragments[d.FragmentHash] = fragment
			}
		}
	}
}
