// Package logging configures the single shared structured logger every
// Toy tool uses, so verbosity and the error/debug-trace contract are
// handled identically across compile, link, vm, debugger, gc, merge,
// and strip.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stderr, with its level set from a
// repeated -v flag: 0 -> warn, 1 -> info, 2 or more -> debug.
func New(verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})

	switch {
	case verbosity >= 2:
		log.SetLevel(logrus.DebugLevel)
	case verbosity == 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// Fail logs err at Error level tagged with tool, then — unless debug is
// set, in which case the caller should instead let the error propagate
// with its stack — returns the process exit code every tool's main()
// returns on a handled failure.
func Fail(log *logrus.Logger, tool string, err error) int {
	log.WithField("tool", tool).Error(err)
	return 1
}
