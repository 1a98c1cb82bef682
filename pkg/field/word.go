// Copyright 2025 Certen Protocol

package field

import (
	"encoding/hex"
	"fmt"
)

// Word is the protocol's 32-byte commitment/hash/node type: four field
// elements, encoded big-endian element-by-element on the wire.
type Word [4]Element

// EmptyWord is the all-zero word used as the default/empty leaf and
// empty-subtree value throughout the sparse Merkle trees.
var EmptyWord = Word{Zero, Zero, Zero, Zero}

// IsEmpty reports whether w is the all-zero word.
func (w Word) IsEmpty() bool {
	return w == EmptyWord
}

// Equal reports element-wise equality.
func (w Word) Equal(o Word) bool {
	return w == o
}

// Bytes encodes the word as 32 big-endian bytes, one element after another.
func (w Word) Bytes() [32]byte {
	var out [32]byte
	for i, e := range w {
		b := e.Bytes()
		copy(out[i*8:(i+1)*8], b[:])
	}
	return out
}

// Hex renders the word as a 0x-prefixed hex string.
func (w Word) Hex() string {
	b := w.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// WordFromBytes decodes 32 big-endian bytes into a Word, rejecting any
// 8-byte limb that is not a canonical field element.
func WordFromBytes(b []byte) (Word, error) {
	if len(b) != 32 {
		return Word{}, fmt.Errorf("field: expected 32 bytes, got %d", len(b))
	}
	var w Word
	for i := 0; i < 4; i++ {
		e, err := SetBytes(b[i*8 : (i+1)*8])
		if err != nil {
			return Word{}, fmt.Errorf("field: word limb %d: %w", i, err)
		}
		w[i] = e
	}
	return w, nil
}

// WordFromUint64s packs four raw uint64s into a Word, reducing each
// modulo the field's modulus.
func WordFromUint64s(a, b, c, d uint64) Word {
	return Word{New(a), New(b), New(c), New(d)}
}
