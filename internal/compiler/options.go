package compiler

import (
	"path/filepath"
	"strings"
)

// Options controls a single compilation: one source file in, one ticket
// file and an updated repository out.
type Options struct {
	SourceFile string
	// Output is the ticket file path (-o/--output). Left blank, it
	// defaults to SourceFile with its extension replaced by .o.
	Output     string
	Repository string
	// DebugInfo enables generation of debugging information (-g):
	// source locations are attached to every instruction and carried
	// through to the repository's debug_line sections.
	DebugInfo bool
	// Debug, when true, lets a compilation error propagate with its
	// full Go error chain instead of being logged and turned into a
	// plain exit code — the CLI layer's equivalent of toycc's "raise
	// instead of log" debug mode.
	Debug bool
	// DebugParse logs each parsed procedure's name and instruction count
	// at debug level.
	DebugParse bool
	Verbose    int
}

// OutFile returns Output, or SourceFile with its extension replaced by
// .o if Output was left blank.
func (o Options) OutFile() string {
	if o.Output != "" {
		return o.Output
	}
	ext := filepath.Ext(o.SourceFile)
	return strings.TrimSuffix(o.SourceFile, ext) + ".o"
}
