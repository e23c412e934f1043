// Package instruction models Toy's instruction set as a tagged union: a
// closed set of concrete types behind the Instruction interface, each
// knowing how to execute itself, contribute to a content digest, and
// encode/decode itself into per-section byte streams.
package instruction

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/crc32"

	"github.com/SNSystems/toy-tools/internal/store"
)

// Magic precedes every instruction's header in the text section, to
// catch stream desynchronization loudly rather than silently
// misinterpreting bytes as a different instruction.
const Magic uint16 = 0xc0de

// Machine is the subset of VM behavior an instruction needs to execute
// itself. Defined here, rather than importing the vm package, to avoid
// an import cycle (vm depends on instruction, not the reverse).
type Machine interface {
	OperandPush(Instruction)
	OperandPop() (Instruction, error)
	ExecutionPushProc(body []Instruction)
	ExecuteOperator(name string) error
	Interrupted() bool
}

// Instruction is the common interface every instruction variant
// implements.
type Instruction interface {
	// Execute runs this instruction's VM semantics against m.
	Execute(m Machine) error
	// Location returns the instruction's source location, or nil if it
	// was compiled without debug info.
	Location() *SourceLocation
	// SetLocation attaches a source location, used when reattaching
	// debug info at load time.
	SetLocation(*SourceLocation)
	// Name returns the instruction's symbolic name if it is an
	// Operator, or "" for every other variant — the sentinel the
	// compiler's fixup scan filters out.
	Name() string
	// Instructions returns a Procedure's body, or nil for every other
	// variant.
	Instructions() []Instruction
	// Digest writes this instruction's deterministic contribution to h:
	// the variant's class name, its payload, then a location marker.
	Digest(h hash.Hash)
	// Write appends this instruction's encoding to sections[text] and its
	// record to sections[debug_line]: the class-id and a presence flag,
	// followed by the location when there is one.
	Write(sections map[store.SectionType]*bytes.Buffer) error
	// ReadDebug consumes this instruction's (and, for a Procedure, its
	// children's) debug_line record(s) from r in the same post-order
	// the encoder wrote them, restoring source locations with absolute
	// lines recovered via lineBase.
	ReadDebug(r *bytes.Reader, lineBase int) error
}

// classInfo pairs a variant's registered name with the constructor Read
// uses to build a zero-value instance before decoding its payload.
type classInfo struct {
	name        string
	id          uint32
	constructor func() Instruction
}

var (
	byID   = make(map[uint32]classInfo)
	byName = make(map[string]classInfo)
)

// registerClass assigns a deterministic class-id (CRC32 of the variant's
// name) to a variant and records its constructor. Called once per
// variant from an init() in that variant's file. Panics on a name or id
// collision, since that indicates two variants whose tags hash to the
// same codec identity — a programming error, not a runtime condition.
func registerClass(name string, constructor func() Instruction) uint32 {
	id := crc32.ChecksumIEEE([]byte(name))
	if existing, ok := byID[id]; ok {
		panic(fmt.Sprintf("instruction: class id collision between %q and %q", existing.name, name))
	}
	info := classInfo{name: name, id: id, constructor: constructor}
	byID[id] = info
	byName[name] = info
	return id
}

// ErrInstructionFormat reports a codec desynchronization: a bad magic
// number or an unknown class-id.
type ErrInstructionFormat struct {
	Reason string
}

func (e *ErrInstructionFormat) Error() string {
	return fmt.Sprintf("instruction format error: %s", e.Reason)
}

// Read decodes exactly one instruction from sections[text], advancing
// its read position past the instruction (and, for a Procedure,
// recursively past its entire body).
func Read(sections map[store.SectionType]*bytes.Reader) (Instruction, error) {
	text, ok := sections[store.SectionText]
	if !ok {
		return nil, &ErrInstructionFormat{Reason: "no text section to read from"}
	}
	var magic uint16
	if err := binary.Read(text, binary.BigEndian, &magic); err != nil {
		return nil, &ErrInstructionFormat{Reason: "truncated header: " + err.Error()}
	}
	if magic != Magic {
		return nil, &ErrInstructionFormat{Reason: fmt.Sprintf("bad magic 0x%04x", magic)}
	}
	var classID uint32
	if err := binary.Read(text, binary.BigEndian, &classID); err != nil {
		return nil, &ErrInstructionFormat{Reason: "truncated class id: " + err.Error()}
	}
	info, ok := byID[classID]
	if !ok {
		return nil, &ErrInstructionFormat{Reason: fmt.Sprintf("unknown class id %d", classID)}
	}
	inst := info.constructor()
	if err := inst.(interface {
		readPayload(*bytes.Reader) error
	}).readPayload(text); err != nil {
		return nil, err
	}
	return inst, nil
}

// writeHeader appends the magic number and class-id for name to
// sections[text] and returns the offset at which this instruction's
// encoding starts (used as the debug record's text offset).
func writeHeader(sections map[store.SectionType]*bytes.Buffer, name string) (int, error) {
	text := sectionBuffer(sections, store.SectionText)
	offset := text.Len()
	info, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("instruction: class %q was never registered", name)
	}
	if err := binary.Write(text, binary.BigEndian, Magic); err != nil {
		return 0, err
	}
	if err := binary.Write(text, binary.BigEndian, info.id); err != nil {
		return 0, err
	}
	return offset, nil
}

// writeSelfDebug appends this instruction's own debug_line record:
// always a class-id header, optionally followed by the location payload
// when locn is non-nil. Writing the header unconditionally keeps the
// debug_line stream in lockstep with the instruction tree during
// ReadDebug, regardless of which instructions happen to carry location
// info.
func writeSelfDebug(sections map[store.SectionType]*bytes.Buffer, name string, textOffset int, locn *SourceLocation) error {
	debug := sectionBuffer(sections, store.SectionDebugLine)
	info := byName[name]
	if err := binary.Write(debug, binary.BigEndian, info.id); err != nil {
		return err
	}
	present := byte(0)
	if locn != nil {
		present = 1
	}
	if err := debug.WriteByte(present); err != nil {
		return err
	}
	if locn == nil {
		return nil
	}
	return locn.Write(debug, textOffset)
}

// readSelfDebug consumes this instruction's own debug_line record from
// r, asserting the class-id matches name, and returns the decoded
// location (nil if the instruction was compiled without one).
func readSelfDebug(r *bytes.Reader, name string) (*SourceLocation, error) {
	var classID uint32
	if err := binary.Read(r, binary.BigEndian, &classID); err != nil {
		return nil, fmt.Errorf("instruction: truncated debug record for %s: %w", name, err)
	}
	info, ok := byName[name]
	if !ok || info.id != classID {
		return nil, &ErrInstructionFormat{Reason: fmt.Sprintf("debug record class id %d does not match %s", classID, name)}
	}
	present, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("instruction: truncated debug presence flag for %s: %w", name, err)
	}
	if present == 0 {
		return nil, nil
	}
	return ConstructSourceLocation(r)
}

func sectionBuffer(sections map[store.SectionType]*bytes.Buffer, t store.SectionType) *bytes.Buffer {
	buf, ok := sections[t]
	if !ok {
		buf = &bytes.Buffer{}
		sections[t] = buf
	}
	return buf
}

// base is embedded by every instruction variant to share location
// storage and the default Name/Instructions behavior.
type base struct {
	locn *SourceLocation
}

func (b *base) Location() *SourceLocation     { return b.locn }
func (b *base) SetLocation(l *SourceLocation) { b.locn = l }
func (b *base) Name() string                  { return "" }
func (b *base) Instructions() []Instruction   { return nil }

// digestLocation writes the base's location marker byte(s) to h:
// 'n' if there is no location, or 'd' followed by the location's own
// digest contribution.
func (b *base) digestLocation(h hash.Hash) {
	if b.locn == nil {
		h.Write([]byte{'n'})
		return
	}
	h.Write([]byte{'d'})
	b.locn.Digest(h)
}
