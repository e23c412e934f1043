package instruction

import (
	"bytes"
	"encoding/binary"
	"hash"

	"github.com/SNSystems/toy-tools/internal/store"
)

const operatorClassName = "Operator"

func init() {
	registerClass(operatorClassName, func() Instruction { return &Operator{} })
}

// Operator is a reference by symbol: a built-in or a named procedure.
// Executing it looks the name up on the dictionary stack and calls
// whatever it finds.
type Operator struct {
	base
	V string
}

// NewOperator returns a located Operator reference.
func NewOperator(name string, locn *SourceLocation) *Operator {
	return &Operator{base: base{locn: locn}, V: name}
}

func (o *Operator) Execute(m Machine) error {
	return m.ExecuteOperator(o.V)
}

// Name returns the operator's symbolic name — the one variant for which
// Name is not the base's "" sentinel. The compiler's external-reference
// scan (internal/compiler) relies on this to discover fixup names.
func (o *Operator) Name() string { return o.V }

func (o *Operator) Digest(h hash.Hash) {
	h.Write([]byte(operatorClassName))
	h.Write([]byte(o.V))
	o.digestLocation(h)
}

func (o *Operator) Write(sections map[store.SectionType]*bytes.Buffer) error {
	offset, err := writeHeader(sections, operatorClassName)
	if err != nil {
		return err
	}
	text := sectionBuffer(sections, store.SectionText)
	payload := []byte(o.V)
	if err := binary.Write(text, binary.BigEndian, uint32(len(payload))); err != nil {
		return err
	}
	if _, err := text.Write(payload); err != nil {
		return err
	}
	return writeSelfDebug(sections, operatorClassName, offset, o.locn)
}

func (o *Operator) readPayload(r *bytes.Reader) error {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return err
	}
	buf := make([]byte, length)
	if _, err := readFull(r, buf); err != nil {
		return err
	}
	o.V = string(buf)
	return nil
}

func (o *Operator) ReadDebug(r *bytes.Reader, lineBase int) error {
	locn, err := readSelfDebug(r, operatorClassName)
	if err != nil {
		return err
	}
	if locn != nil {
		locn.Line += lineBase
	}
	o.locn = locn
	return nil
}
