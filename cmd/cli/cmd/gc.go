package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/gc"
	"github.com/SNSystems/toy-tools/internal/logging"
)

var gcOpt gc.Options

var gcCmd = &cobra.Command{
	Use:     "gc <repository>",
	GroupID: "maintenance",
	Short:   "Collect unreachable fragments out of a program repository",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gcOpt.Repository = args[0]
		log := logging.New(gcOpt.Verbose)
		if err := gc.Run(gcOpt, log); err != nil {
			if gcOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "gc", err))
		}
		return nil
	},
}

func init() {
	flags := gcCmd.Flags()
	flags.BoolVar(&gcOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&gcOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
