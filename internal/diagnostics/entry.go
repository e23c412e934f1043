package diagnostics

import "fmt"

// Severity levels for recorded entries.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
	SeverityTrace   = "trace"
)

// Entry is a single diagnostic event: what happened, where, and how
// severe. Core fields are immutable once recorded; Snippet and Hint may
// be attached afterward via the With* chaining methods.
type Entry struct {
	severity string
	phase    string
	message  string
	location Location
	snippet  string
	hint     string
}

func (e *Entry) Severity() string   { return e.severity }
func (e *Entry) Phase() string      { return e.phase }
func (e *Entry) Message() string    { return e.message }
func (e *Entry) Location() Location { return e.location }
func (e *Entry) Snippet() string    { return e.snippet }
func (e *Entry) Hint() string       { return e.hint }

// WithSnippet attaches the source line text and returns e for chaining.
func (e *Entry) WithSnippet(text string) *Entry {
	e.snippet = text
	return e
}

// WithHint attaches a fix suggestion and returns e for chaining.
func (e *Entry) WithHint(text string) *Entry {
	e.hint = text
	return e
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", e.severity, e.phase, e.location.String(), e.message)
}
