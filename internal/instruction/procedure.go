package instruction

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/SNSystems/toy-tools/internal/store"
)

const procedureClassName = "Procedure"

func init() {
	registerClass(procedureClassName, func() Instruction { return &Procedure{} })
}

// maxPreviewLength caps the length of the string String returns; String
// shows the body's instruction count, not the instructions themselves.
const maxPreviewLength = 60

// Procedure is a nested, ordered sequence of instructions: a first-class
// value until invoked. Executing it (as a literal) pushes the procedure
// itself onto the operand stack; invoking it (by name, or via exec, if,
// ifelse, for) pushes its body onto the execution stack instead.
type Procedure struct {
	base
	Body []Instruction
}

// NewProcedure returns a located Procedure wrapping body.
func NewProcedure(body []Instruction, locn *SourceLocation) *Procedure {
	return &Procedure{base: base{locn: locn}, Body: body}
}

func (p *Procedure) Execute(m Machine) error {
	m.OperandPush(p)
	return nil
}

// Call invokes the procedure: its body is pushed onto the execution
// stack as a unit, preserving program order on pop. This is how a
// procedure called by name (through vm.ProgramDictionary) runs; the exec,
// if, ifelse, and for built-ins push a procedure value's body the same
// way directly. Execute only ever makes the procedure itself a value.
func (p *Procedure) Call(m Machine) error {
	m.ExecutionPushProc(p.Body)
	return nil
}

func (p *Procedure) Instructions() []Instruction { return p.Body }

func (p *Procedure) Digest(h hash.Hash) {
	h.Write([]byte(procedureClassName))
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(len(p.Body)))
	h.Write(buf[:])
	for _, child := range p.Body {
		child.Digest(h)
	}
	p.digestLocation(h)
}

func (p *Procedure) Write(sections map[store.SectionType]*bytes.Buffer) error {
	offset, err := writeHeader(sections, procedureClassName)
	if err != nil {
		return err
	}
	text := sectionBuffer(sections, store.SectionText)
	if err := binary.Write(text, binary.BigEndian, uint32(len(p.Body))); err != nil {
		return err
	}
	for _, child := range p.Body {
		if err := child.Write(sections); err != nil {
			return err
		}
	}
	return writeSelfDebug(sections, procedureClassName, offset, p.locn)
}

func (p *Procedure) readPayload(r *bytes.Reader) error {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return err
	}
	body := make([]Instruction, 0, length)
	sections := map[store.SectionType]*bytes.Reader{store.SectionText: r}
	for i := uint32(0); i < length; i++ {
		child, err := Read(sections)
		if err != nil {
			return fmt.Errorf("procedure: decoding child %d: %w", i, err)
		}
		body = append(body, child)
	}
	p.Body = body
	return nil
}

// ReadDebug restores source locations onto every child, depth-first,
// before restoring its own — mirroring the post-order in which Write
// appended debug_line records (every child's subtree is fully written,
// including its own record, before the parent appends its own).
func (p *Procedure) ReadDebug(r *bytes.Reader, lineBase int) error {
	for _, child := range p.Body {
		if err := child.ReadDebug(r, lineBase); err != nil {
			return err
		}
	}
	locn, err := readSelfDebug(r, procedureClassName)
	if err != nil {
		return err
	}
	if locn != nil {
		locn.Line += lineBase
	}
	p.locn = locn
	return nil
}

func (p *Procedure) String() string {
	s := fmt.Sprintf("Procedure(%d instructions)", len(p.Body))
	if len(s) > maxPreviewLength {
		s = s[:maxPreviewLength]
	}
	return s
}
