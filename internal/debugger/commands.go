package debugger

import (
	"fmt"
	"sort"
	"strings"
)

// Handler implements one debugger command. tokens holds everything
// after the command word itself.
type Handler func(d *Debugger, tokens []string) error

// CommandTable maps a command's full name to its handler.
type CommandTable map[string]Handler

// Candidates returns the subset of table whose names have input as a
// prefix, so a user can type "cont" for "continue". An empty input
// returns an empty table rather than every command: "nothing typed" is
// not treated as "everything matches".
func Candidates(input string, table CommandTable) CommandTable {
	result := make(CommandTable)
	if input == "" {
		return result
	}
	for name, handler := range table {
		if strings.HasPrefix(name, input) {
			result[name] = handler
		}
	}
	return result
}

// ErrUnknownCommand is returned when no command name starts with input.
type ErrUnknownCommand struct {
	Command string
}

func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", e.Command)
}

// ErrAmbiguousCommand is returned when more than one command name
// starts with input.
type ErrAmbiguousCommand struct {
	Command    string
	Candidates []string
}

func (e *ErrAmbiguousCommand) Error() string {
	sorted := append([]string(nil), e.Candidates...)
	sort.Strings(sorted)
	return fmt.Sprintf("unknown command %q. Did you mean one of:\n  %s", e.Command, strings.Join(sorted, "\n  "))
}

// Resolve matches input against table by prefix. A single match
// returns its name and handler; zero or many is an error.
func Resolve(input string, table CommandTable) (string, Handler, error) {
	candidates := Candidates(input, table)
	switch len(candidates) {
	case 0:
		return "", nil, &ErrUnknownCommand{Command: input}
	case 1:
		for name, handler := range candidates {
			return name, handler, nil
		}
	}
	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	return "", nil, &ErrAmbiguousCommand{Command: input, Candidates: names}
}
