package debugger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// help is the one-line description shown for each command. Kept
// alongside Debugger.Table rather than merged into CommandTable
// itself: a Handler has no natural place to carry its own blurb.
var help = map[string]string{
	"dictstack": "Displays the contents of the VM's dictionary stack",
	"opstack":   "Displays the contents of the VM's operand stack",
	"execstack": "Displays the contents of the VM's execution stack",
	"load":      "Loads the named executable file into the VM and prepares it for execution",
	"continue":  "Executes the contents of the execution stack until it is exhausted",
	"list":      "Shows the source around an operator, or the next instruction to execute",
	"step":      "Executes the next instruction, stepping into a called procedure",
	"next":      "Executes the next instruction, stepping over a called procedure",
	"help":      "This help text.",
	"quit":      "Exits the debugger.",
}

// HelpHandler prints the command table.
func HelpHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("ignored unexpected arguments")
	}

	names := make([]string, 0, len(help))
	longest := 0
	for name := range help {
		names = append(names, name)
		if len(name) > longest {
			longest = len(name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s%s%s\n", name, strings.Repeat(" ", longest-len(name)+1), help[name])
	}
	return nil
}

// ErrQuit is returned by QuitHandler to signal that the session driver
// (Run) should end the command loop. Returning a sentinel rather than
// calling os.Exit directly keeps the debugger package usable as a
// library, not just as a standalone process.
var ErrQuit = errors.New("quit")

// QuitHandler ends the debugging session.
func QuitHandler(d *Debugger, tokens []string) error {
	if len(tokens) != 0 {
		d.log.Warn("ignored unexpected arguments")
	}
	d.log.Info("bye")
	return ErrQuit
}
