// Package diagnostics is a passive, append-only sink for parser
// diagnostics: it records lexer/parser problems with file/line/column
// context and an optional source snippet, instead of a single formatted
// error string. The compiler does not use it; its --debug-parse flag
// only logs each parsed procedure.
package diagnostics

import "fmt"

// Location identifies a position in Toy source. A value type — safe to
// copy and compare.
type Location struct {
	filePath string
	line     int
	column   int
}

// Loc creates a Location.
func Loc(filePath string, line, column int) Location {
	return Location{filePath: filePath, line: line, column: column}
}

func (l Location) FilePath() string { return l.filePath }
func (l Location) Line() int        { return l.line }
func (l Location) Column() int      { return l.column }

func (l Location) String() string {
	if l.column == 0 {
		return fmt.Sprintf("%s:%d", l.filePath, l.line)
	}
	return fmt.Sprintf("%s:%d:%d", l.filePath, l.line, l.column)
}
