package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/merge"
)

var mergeOpt merge.Options

var mergeCmd = &cobra.Command{
	Use:     "merge <repository...>",
	GroupID: "maintenance",
	Short:   "Merge fragments and tickets from several repositories into one",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mergeOpt.Inputs = args
		log := logging.New(mergeOpt.Verbose)
		if err := merge.Run(mergeOpt, log); err != nil {
			if mergeOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "merge", err))
		}
		return nil
	},
}

func init() {
	flags := mergeCmd.Flags()
	flags.StringVarP(&mergeOpt.Output, "output", "o", "repository.yaml", "Output repository path")
	flags.BoolVar(&mergeOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&mergeOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
