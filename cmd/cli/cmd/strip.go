package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/logging"
	"github.com/SNSystems/toy-tools/internal/strip"
)

var stripOpt strip.Options

var stripCmd = &cobra.Command{
	Use:     "strip <repository>",
	GroupID: "maintenance",
	Short:   "Produce a distributable repository with fragment bodies blanked out",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stripOpt.Input = args[0]
		if stripOpt.Output == "" {
			stripOpt.Output = stripOpt.Input
		}
		log := logging.New(stripOpt.Verbose)
		if err := strip.Run(stripOpt, log); err != nil {
			if stripOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "strip", err))
		}
		return nil
	},
}

func init() {
	flags := stripCmd.Flags()
	flags.StringVarP(&stripOpt.Output, "output", "o", "", "Output repository path (default: overwrite the input)")
	flags.BoolVar(&stripOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&stripOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
