package instruction

import (
	"bytes"
	"encoding/binary"
	"hash"
	"math"

	"github.com/SNSystems/toy-tools/internal/store"
)

const numberClassName = "Number"

func init() {
	registerClass(numberClassName, func() Instruction { return &Number{} })
}

// Number is a floating-point literal. Executing it pushes itself onto
// the operand stack.
type Number struct {
	base
	V float64
}

// NewNumber returns a located Number literal.
func NewNumber(v float64, locn *SourceLocation) *Number {
	return &Number{base: base{locn: locn}, V: v}
}

func (n *Number) Execute(m Machine) error {
	m.OperandPush(n)
	return nil
}

// Digest hashes the double's raw IEEE-754 bits, big-endian, rather than
// a decimal or hex-float string rendering: bit-exact and
// platform-independent, and it sidesteps reproducing a hex-float
// grammar entirely (see DESIGN.md).
func (n *Number) Digest(h hash.Hash) {
	h.Write([]byte(numberClassName))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(n.V))
	h.Write(buf[:])
	n.digestLocation(h)
}

func (n *Number) Write(sections map[store.SectionType]*bytes.Buffer) error {
	offset, err := writeHeader(sections, numberClassName)
	if err != nil {
		return err
	}
	text := sectionBuffer(sections, store.SectionText)
	if err := binary.Write(text, binary.BigEndian, n.V); err != nil {
		return err
	}
	return writeSelfDebug(sections, numberClassName, offset, n.locn)
}

func (n *Number) readPayload(r *bytes.Reader) error {
	return binary.Read(r, binary.BigEndian, &n.V)
}

func (n *Number) ReadDebug(r *bytes.Reader, lineBase int) error {
	locn, err := readSelfDebug(r, numberClassName)
	if err != nil {
		return err
	}
	if locn != nil {
		locn.Line += lineBase
	}
	n.locn = locn
	return nil
}
