package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toy",
	Short: "Toy build pipeline",
	Long:  `toy drives the content-addressed Toy build pipeline: compile, link, run, debug, and maintain program repositories.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "pipeline",
		Title: "Build pipeline",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "maintenance",
		Title: "Repository maintenance",
	})

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(vmCmd)
	rootCmd.AddCommand(debuggerCmd)
	rootCmd.AddCommand(gcCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(stripCmd)
}
