package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/store"
	"github.com/SNSystems/toy-tools/internal/vm"
)

type vmOptions struct {
	Trace   bool
	Debug   bool
	Verbose int
}

var vmOpt vmOptions

var vmCmd = &cobra.Command{
	Use:     "vm <executable>",
	GroupID: "pipeline",
	Short:   "Run a linked Toy executable to completion",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(vmOpt.Verbose)
		if err := runExecutable(args[0], log); err != nil {
			if vmOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "vm", err))
		}
		return nil
	},
}

func runExecutable(path string, log *logrus.Logger) error {
	exe, err := store.ReadExecutable(path)
	if err != nil {
		return err
	}
	program, err := vm.Load(exe)
	if err != nil {
		return err
	}

	m := vm.New()
	m.Trace(vmOpt.Trace)
	log.WithField("file", path).Info("running")
	return m.Run(vm.ProgramDictionary(program))
}

func init() {
	flags := vmCmd.Flags()
	flags.BoolVarP(&vmOpt.Trace, "trace", "t", false, "Print each instruction before executing it")
	flags.BoolVar(&vmOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&vmOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
