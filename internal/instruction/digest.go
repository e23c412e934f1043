package instruction

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the stable hex-encoded content hash of inst: the
// repository key a Fragment is stored under. Two instructions with
// identical Digest output are, by the content-addressing invariant,
// interchangeable.
func Digest(inst Instruction) string {
	h := sha256.New()
	inst.Digest(h)
	return hex.EncodeToString(h.Sum(nil))
}
