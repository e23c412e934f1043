package diagnostics

import "sync"

// Context accumulates diagnostic entries as parsing progresses. Safe for
// concurrent writes, though the frontend is itself single-threaded — the
// lock costs nothing and removes a future caller's need to think about it.
type Context struct {
	filePath string
	phase    string
	entries  []*Entry
	mu       sync.Mutex
}

// New returns a Context for the given primary source file, with an
// empty entry list and no current phase.
func New(filePath string) *Context {
	return &Context{filePath: filePath, entries: make([]*Entry, 0)}
}

func (c *Context) SetPhase(name string) {
	c.mu.Lock()
	c.phase = name
	c.mu.Unlock()
}

func (c *Context) Phase() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Context) Loc(line, column int) Location {
	return Loc(c.filePath, line, column)
}

func (c *Context) LocIn(filePath string, line, column int) Location {
	return Loc(filePath, line, column)
}

func (c *Context) record(severity string, location Location, message string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := &Entry{severity: severity, phase: c.phase, message: message, location: location}
	c.entries = append(c.entries, entry)
	return entry
}

func (c *Context) Error(location Location, message string) *Entry {
	return c.record(SeverityError, location, message)
}

func (c *Context) Warning(location Location, message string) *Entry {
	return c.record(SeverityWarning, location, message)
}

func (c *Context) Info(location Location, message string) *Entry {
	return c.record(SeverityInfo, location, message)
}

func (c *Context) Trace(location Location, message string) *Entry {
	return c.record(SeverityTrace, location, message)
}

func (c *Context) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Context) Errors() []*Entry { return c.filter(SeverityError) }

func (c *Context) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.severity == SeverityError {
			return true
		}
	}
	return false
}

func (c *Context) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Context) FilePath() string { return c.filePath }

func (c *Context) filter(severity string) []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Entry
	for _, e := range c.entries {
		if e.severity == severity {
			out = append(out, e)
		}
	}
	return out
}
