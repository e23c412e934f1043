// Command toy is the entry point for the Toy build pipeline CLI.
package main

import "github.com/SNSystems/toy-tools/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
