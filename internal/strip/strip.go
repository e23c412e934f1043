// Package strip produces a distributable repository with every
// fragment body blanked out, retaining only the digests a linker needs
// to verify a closure is complete.
package strip

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Options controls a single strip.
type Options struct {
	Input   string
	Output  string
	Verbose int
	Debug   bool
}

// Run blanks every fragment body in the repository at opt.Input, drops
// its tickets and links (neither refers to anything a stripped
// repository can still honor), stamps a fresh UUID, and writes the
// result to opt.Output.
func Run(opt Options, log *logrus.Logger) error {
	repo, err := store.Read(opt.Input, false)
	if err != nil {
		return err
	}

	for digest := range repo.Fragments {
		log.WithField("digest", digest).Debug("clearing fragment")
		repo.Fragments[digest] = nil
	}
	repo.Links = nil
	repo.Tickets = make(map[uuid.UUID]*store.TicketFileEntry)
	repo.UUID = uuid.New()

	return repo.WriteAtomic(opt.Output)
}
