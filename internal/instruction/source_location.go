package instruction

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
)

// SourceLocation is a position in a source file. Line numbers stored on
// an in-memory, unrebased instruction are absolute; once a Procedure has
// been rebased (see the rebase package) they are relative to the
// Procedure's line_base, and the absolute line is recovered by adding it
// back during ReadDebug.
type SourceLocation struct {
	SrcFile string
	Line    int
	Column  int
}

// Write appends this location's encoding to debugLine: the byte offset
// (within the owning section's text encoding) of the instruction this
// location belongs to, the line and column, and the length-prefixed
// UTF-8 source file path.
func (l *SourceLocation) Write(debugLine *bytes.Buffer, textOffset int) error {
	srcfile := []byte(l.SrcFile)
	header := [4]uint32{uint32(textOffset), uint32(l.Line), uint32(l.Column), uint32(len(srcfile))}
	for _, v := range header {
		if err := binary.Write(debugLine, binary.BigEndian, v); err != nil {
			return err
		}
	}
	_, err := debugLine.Write(srcfile)
	return err
}

// ConstructSourceLocation decodes one SourceLocation from r. The decoded
// text-offset field is consumed (it exists so a reader walking the
// debug_line stream independently of the instruction tree could pair
// records back up with text offsets) but is not retained on the
// returned value — callers that already hold the instruction tree know
// which instruction this location belongs to from traversal order, not
// from the offset.
func ConstructSourceLocation(r *bytes.Reader) (*SourceLocation, error) {
	var offset, line, column, length uint32
	for _, v := range []*uint32{&offset, &line, &column, &length} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return nil, fmt.Errorf("source location: truncated header: %w", err)
		}
	}
	srcfile := make([]byte, length)
	if _, err := readFull(r, srcfile); err != nil {
		return nil, fmt.Errorf("source location: truncated srcfile: %w", err)
	}
	return &SourceLocation{SrcFile: string(srcfile), Line: int(line), Column: int(column)}, nil
}

// Digest writes this location's deterministic contribution to h: the
// source file path, then the absolute-at-digest-time line and column as
// fixed-width big-endian integers. Two instructions that differ only in
// source position must therefore hash differently, and two otherwise
// identical instructions at the same position must hash the same.
func (l *SourceLocation) Digest(h hash.Hash) {
	h.Write([]byte(l.SrcFile))
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(l.Line))
	h.Write(buf[:])
	binary.BigEndian.PutUint32(buf[:], uint32(l.Column))
	h.Write(buf[:])
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
		if m == 0 {
			return n, fmt.Errorf("short read")
		}
	}
	return n, nil
}
