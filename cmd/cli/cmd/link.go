package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/SNSystems/toy-tools/internal/linker"
	"github.com/SNSystems/toy-tools/internal/logging"
)

var linkOpt linker.Options

var linkCmd = &cobra.Command{
	Use:     "link <ticket...>",
	GroupID: "pipeline",
	Short:   "Link fragment tickets into an executable",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		linkOpt.InFiles = args
		log := logging.New(linkOpt.Verbose)
		_, err := linker.Link(linkOpt, log)
		if err != nil {
			if linkOpt.Debug {
				return err
			}
			os.Exit(logging.Fail(log, "link", err))
		}
		return nil
	},
}

func init() {
	flags := linkCmd.Flags()
	flags.StringVarP(&linkOpt.Repository, "repository", "r", "repo.yaml", "Program repository path")
	flags.StringVarP(&linkOpt.OutFile, "output", "o", "a.out", "Output executable path")
	flags.StringSliceVarP(&linkOpt.EntryPoints, "entry", "E", nil, "Entry point name (repeatable; default: main)")
	flags.BoolVar(&linkOpt.Debug, "debug", false, "Let internal errors propagate instead of being reported and swallowed")
	flags.CountVarP(&linkOpt.Verbose, "verbose", "v", "Increase log verbosity (repeatable)")
}
