package instruction

import (
	"bytes"
	"encoding/binary"
	"hash"

	"github.com/SNSystems/toy-tools/internal/store"
)

const stringClassName = "String"

func init() {
	registerClass(stringClassName, func() Instruction { return &String{} })
}

// String is a string literal. Executing it pushes itself onto the
// operand stack.
type String struct {
	base
	V string
}

// NewString returns a located String literal.
func NewString(v string, locn *SourceLocation) *String {
	return &String{base: base{locn: locn}, V: v}
}

func (s *String) Execute(m Machine) error {
	m.OperandPush(s)
	return nil
}

func (s *String) Digest(h hash.Hash) {
	h.Write([]byte(stringClassName))
	h.Write([]byte(s.V))
	s.digestLocation(h)
}

func (s *String) Write(sections map[store.SectionType]*bytes.Buffer) error {
	offset, err := writeHeader(sections, stringClassName)
	if err != nil {
		return err
	}
	text := sectionBuffer(sections, store.SectionText)
	payload := []byte(s.V)
	if err := binary.Write(text, binary.BigEndian, uint32(len(payload))); err != nil {
		return err
	}
	if _, err := text.Write(payload); err != nil {
		return err
	}
	return writeSelfDebug(sections, stringClassName, offset, s.locn)
}

func (s *String) readPayload(r *bytes.Reader) error {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return err
	}
	buf := make([]byte, length)
	if _, err := readFull(r, buf); err != nil {
		return err
	}
	s.V = string(buf)
	return nil
}

func (s *String) ReadDebug(r *bytes.Reader, lineBase int) error {
	locn, err := readSelfDebug(r, stringClassName)
	if err != nil {
		return err
	}
	if locn != nil {
		locn.Line += lineBase
	}
	s.locn = locn
	return nil
}
