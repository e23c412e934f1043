package instruction

import (
	"bytes"
	"hash"

	"github.com/SNSystems/toy-tools/internal/store"
)

const booleanClassName = "Boolean"

func init() {
	registerClass(booleanClassName, func() Instruction { return &Boolean{} })
}

// Boolean is a literal true/false value. Executing it pushes itself onto
// the operand stack.
type Boolean struct {
	base
	V bool
}

// NewBoolean returns a located Boolean literal.
func NewBoolean(v bool, locn *SourceLocation) *Boolean {
	return &Boolean{base: base{locn: locn}, V: v}
}

func (b *Boolean) Execute(m Machine) error {
	m.OperandPush(b)
	return nil
}

func (b *Boolean) Digest(h hash.Hash) {
	h.Write([]byte(booleanClassName))
	if b.V {
		h.Write([]byte{'t'})
	} else {
		h.Write([]byte{'f'})
	}
	b.digestLocation(h)
}

func (b *Boolean) Write(sections map[store.SectionType]*bytes.Buffer) error {
	offset, err := writeHeader(sections, booleanClassName)
	if err != nil {
		return err
	}
	text := sectionBuffer(sections, store.SectionText)
	v := byte(0)
	if b.V {
		v = 1
	}
	if err := text.WriteByte(v); err != nil {
		return err
	}
	return writeSelfDebug(sections, booleanClassName, offset, b.locn)
}

func (b *Boolean) readPayload(r *bytes.Reader) error {
	v, err := r.ReadByte()
	if err != nil {
		return err
	}
	b.V = v != 0
	return nil
}

func (b *Boolean) ReadDebug(r *bytes.Reader, lineBase int) error {
	locn, err := readSelfDebug(r, booleanClassName)
	if err != nil {
		return err
	}
	if locn != nil {
		locn.Line += lineBase
	}
	b.locn = locn
	return nil
}
