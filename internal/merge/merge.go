// Package merge combines several program repositories into one,
// copying in whatever fragments and tickets a destination repository
// doesn't already hold.
package merge

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Options controls a single merge.
type Options struct {
	Inputs  []string
	Output  string
	Verbose int
	Debug   bool
}

// Run merges every repository named in opt.Inputs into opt.Output,
// creating it if it doesn't already exist.
func Run(opt Options, log *logrus.Logger) error {
	repo, err := store.Read(opt.Output, true)
	if err != nil {
		return err
	}
	log.WithField("output", opt.Output).Debug("merging into repository")

	for _, path := range opt.Inputs {
		in, err := store.Read(path, false)
		if err != nil {
			return fmt.Errorf("merge: reading %s: %w", path, err)
		}
		log.WithField("input", path).Info("merging")

		mergeFragments(repo, in, path, log)
		mergeTickets(repo, in, path, log)
		// Links are not merged: a link record only makes sense paired
		// with the executable UUID it names, and this repository's own
		// links were not produced by any of the inputs being folded in.
	}

	return repo.WriteAtomic(opt.Output)
}

func mergeFragments(dest, src *store.Repository, path string, log *logrus.Logger) {
	for digest, fragment := range src.Fragments {
		if fragment == nil {
			continue
		}
		if _, dup := dest.Fragments[digest]; dup {
			log.WithFields(logrus.Fields{"digest": digest, "input": path}).Warn("duplicate fragment, keeping existing")
			continue
		}
		dest.Fragments[digest] = fragment
	}
}

func mergeTickets(dest, src *store.Repository, path string, log *logrus.Logger) {
	for ticket, entry := range src.Tickets {
		if _, dup := dest.Tickets[ticket]; dup {
			log.WithFields(logrus.Fields{"ticket": ticket, "input": path}).Warn("duplicate ticket")
			continue
		}
		dest.Tickets[ticket] = entry
	}
}
