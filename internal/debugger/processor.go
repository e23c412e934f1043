package debugger

import "github.com/sirupsen/logrus"

// Processor tokenizes a raw command line and dispatches it to a
// CommandTable entry, repeating the previous command verbatim when
// given a blank line.
type Processor struct {
	debugger   *Debugger
	table      CommandTable
	prevTokens []string
	log        *logrus.Logger
}

// NewProcessor returns a Processor that dispatches against table on
// behalf of d.
func NewProcessor(d *Debugger, table CommandTable, log *logrus.Logger) *Processor {
	return &Processor{debugger: d, table: table, log: log}
}

// Command tokenizes and dispatches s. Tokenizing errors and unresolved
// command names are logged and swallowed — one bad command should
// never end a debugging session. A handler's own error is returned
// uninterpreted so the caller can tell ErrQuit (a clean end of session)
// apart from a real failure worth logging.
func (p *Processor) Command(s string) error {
	tokens, err := tokenize(s)
	if err != nil {
		p.log.Errorf("error: %s", err)
		return nil
	}
	if len(tokens) == 0 {
		tokens = p.prevTokens
	}
	if len(tokens) == 0 {
		return nil
	}

	_, handler, err := Resolve(tokens[0], p.table)
	if err != nil {
		p.log.Errorf("error: %s", err)
		return nil
	}
	p.prevTokens = tokens

	return handler(p.debugger, tokens[1:])
}
