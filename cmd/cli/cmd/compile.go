package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/compiler"
	"github.com/SNSystems/toy-tools/internal/logging"
)

var compileOpt compiler.Options

var compileCmd = &cobra.Command{
	Use:     "compile <source.toy>",
	GroupID: "pipeline",
	Short:   "Compile a Toy source file into a fragment ticket",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compileOpt.SourceFile = args[0]
		log := logging.New(compileOpt.Verbose)
		if err := compiler.Compile(compileOpt, log); err != nil {
			if compileOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "compile", err))
		}
		return nil
	},
}

func init() {
	flags := compileCmd.Flags()
	flags.StringVarP(&compileOpt.Output, "output", "o", "", "Output ticket file (default: source with .o extension)")
	flags.StringVarP(&compileOpt.Repository, "repository", "r", "repo.yaml", "Program repository path")
	flags.BoolVarP(&compileOpt.DebugInfo, "debug-info", "g", false, "Emit source debug info")
	flags.BoolVar(&compileOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.BoolVar(&compileOpt.DebugParse, "debug-parse", false, "Log each parsed procedure's name and instruction count at debug level")
	flags.CountVarP(&compileOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
