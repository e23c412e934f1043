package gc

import (
	"github.com/sirupsen/logrus"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Options controls a single collection run.
type Options struct {
	Repository string
	Verbose    int
	Debug      bool
}

// Run reads the repository at opt.Repository, collects it into a fresh
// Repository, and writes the result back atomically: anything that
// replaces the repository wholesale goes through a temp-file-then-rename,
// never a plain in-place write.
func Run(opt Options, log *logrus.Logger) error {
	src, err := store.Read(opt.Repository, false)
	if err != nil {
		return err
	}
	log.WithField("repository", opt.Repository).Info("collecting")

	dest := store.New()
	Collect(src, dest, log)

	return dest.WriteAtomic(opt.Repository)
}
