package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/debugger"
	"github.com/SNSystems/toy-tools/internal/logging"
)

var debugOpt debugger.Options

var debuggerCmd = &cobra.Command{
	Use:     "debug [executable]",
	GroupID: "pipeline",
	Short:   "Interactively debug a loaded Toy program",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			debugOpt.Program = args[0]
		}
		log := logging.New(debugOpt.Verbose)
		if err := debugger.Run(debugOpt, cmd.InOrStdin(), cmd.OutOrStdout(), log); err != nil {
			if debugOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "debug", err))
		}
		return nil
	},
}

func init() {
	flags := debuggerCmd.Flags()
	flags.StringArrayVarP(&debugOpt.Commands, "command", "c", nil, "Execute a command; specify once for each command")
	flags.BoolVar(&debugOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&debugOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
