package debugger

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Prompt is printed before reading each interactive command line.
const Prompt = "(toydb) "

// Options controls a single debugger session.
type Options struct {
	// Program, if set, is an executable file loaded before the first
	// command runs.
	Program string
	// Commands, if non-empty, are run in order as a scripted session
	// instead of an interactive REPL — the -c flag, repeatable.
	Commands []string
	Verbose  int
	Debug    bool
}

// Run drives a debugging session against in and out: with opt.Commands
// set it runs them non-interactively and returns; otherwise it reads a
// line at a time from in until EOF or a "quit" command, printing Prompt
// before each read.
func Run(opt Options, in io.Reader, out io.Writer, log *logrus.Logger) error {
	log.Info("toy debugger. remember, it's just a toy.")

	d := New(log)
	if opt.Program != "" {
		if err := LoadHandler(d, []string{opt.Program}); err != nil {
			log.Errorf("error: %s", err)
		}
	}

	proc := NewProcessor(d, d.Table(), log)

	if len(opt.Commands) != 0 {
		for _, c := range opt.Commands {
			if err := proc.Command(c); err != nil && !errors.Is(err, ErrQuit) {
				log.Errorf("error: %s", err)
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			// EOF (^D) behaves like an explicit quit.
			proc.Command("quit")
			return scanner.Err()
		}
		if err := proc.Command(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			log.Errorf("error: %s", err)
		}
	}
}
